package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination - номер страницы с 1 и размер
type Pagination struct {
	Page  int
	Limit int
}

// Normalize подставляет значения по умолчанию и режет слишком большой limit
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// paginate - scope для Find
func paginate(p Pagination) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p = p.Normalize()
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// findPage считает total и выбирает одну страницу, новые сначала
func findPage[T any](query *gorm.DB, p Pagination, out *[]T) (int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		*out = []T{}
		return 0, nil
	}
	if err := query.Scopes(paginate(p)).Order("created_at DESC").Find(out).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// isUniqueViolation - нарушение уникального индекса (gorm или postgres 23505)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// notFound переводит gorm.ErrRecordNotFound в sentinel-ошибку репозитория
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern - шаблон ILIKE "содержит"; %, _ и \ из ввода ищутся буквально
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
