package dto

// ListQuery - параметры пагинации из запроса
type ListQuery struct {
	Page  int
	Limit int
}

// PageResult - страница результатов для конверта {items, total, page, limit, totalPages}
type PageResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

func (p PageResult[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// MapPage переносит страницу моделей в страницу DTO
func MapPage[M any, T any](items []M, total int64, q ListQuery, fn func(*M) T) PageResult[T] {
	out := make([]T, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return PageResult[T]{Items: out, Total: total, Page: q.Page, Limit: q.Limit}
}

// StatusRequest - смена статуса без дополнительных полей
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
