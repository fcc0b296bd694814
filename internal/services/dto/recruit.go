package dto

import (
	"time"

	"hostmarket_backend/internal/models"
)

// --- Recruit Requests ---

type RecruitDetailsInput struct {
	Location     string   `json:"location" validate:"omitempty,max=200"`
	ShootDate    string   `json:"shootDate" validate:"omitempty,max=50"`
	ShootTime    string   `json:"shootTime" validate:"omitempty,max=50"`
	Requirements string   `json:"requirements" validate:"omitempty,max=5000"`
	Pay          *float64 `json:"pay" validate:"omitempty,min=0"`
}

type CreateRecruitRequest struct {
	Title         string               `json:"title" validate:"required,min=2,max=200"`
	BrandName     string               `json:"brandName" validate:"omitempty,max=100"` // пусто - берется из профиля бренда
	Category      string               `json:"category" validate:"omitempty,max=50"`
	Status        string               `json:"status" validate:"omitempty,is-recruit-status"`
	CoverImageURL string               `json:"coverImageUrl" validate:"omitempty,url"`
	ThumbnailURL  string               `json:"thumbnailUrl" validate:"omitempty,url"`
	CloseAt       *time.Time           `json:"closeAt"`
	Fee           *float64             `json:"fee" validate:"omitempty,min=0"`
	FeeNegotiable bool                 `json:"feeNegotiable"`
	Recruit       *RecruitDetailsInput `json:"recruit"`
}

type UpdateRecruitRequest struct {
	Title         *string              `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	BrandName     *string              `json:"brandName,omitempty" validate:"omitempty,max=100"`
	Category      *string              `json:"category,omitempty" validate:"omitempty,max=50"`
	Status        *string              `json:"status,omitempty" validate:"omitempty,is-recruit-status"`
	CoverImageURL *string              `json:"coverImageUrl,omitempty" validate:"omitempty,url"`
	ThumbnailURL  *string              `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	CloseAt       *time.Time           `json:"closeAt,omitempty"`
	Fee           *float64             `json:"fee,omitempty" validate:"omitempty,min=0"`
	FeeNegotiable *bool                `json:"feeNegotiable,omitempty"`
	Recruit       *RecruitDetailsInput `json:"recruit,omitempty"`
}

type RecruitStatusRequest struct {
	Status string `json:"status" validate:"required,is-recruit-status"`
}

type RecruitFilter struct {
	Category string
	Query    string
}

// --- Recruit Responses ---

type RecruitDetailsDTO struct {
	Location     string   `json:"location"`
	ShootDate    string   `json:"shootDate"`
	ShootTime    string   `json:"shootTime"`
	Requirements string   `json:"requirements"`
	Pay          *float64 `json:"pay"`
}

type RecruitDTO struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	BrandName     string            `json:"brandName"`
	Category      string            `json:"category"`
	Status        string            `json:"status"`
	CoverImageURL string            `json:"coverImageUrl"`
	ThumbnailURL  string            `json:"thumbnailUrl"`
	CloseAt       string            `json:"closeAt,omitempty"`
	Fee           Money             `json:"fee"`
	Recruit       RecruitDetailsDTO `json:"recruit"`
	CreatedBy     string            `json:"createdBy"`
	Views         int64             `json:"views"`
	Clicks        int64             `json:"clicks"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

func NewRecruitDTO(d Doc) RecruitDTO {
	fee := d.Money(FeeValuePaths, FeeNegotiablePaths)
	cover := d.String("coverImageUrl", "coverImage", "imageUrl")
	thumb := d.String("thumbnailUrl", "thumbnail")
	if thumb == "" && cover != "" {
		thumb = ThumbnailURL(cover)
	}
	return RecruitDTO{
		ID:            d.String("id", "_id"),
		Title:         d.String("title"),
		BrandName:     d.String("brandName", "brand.name", "brand"),
		Category:      d.String("category"),
		Status:        d.StringOr(string(models.RecruitStatusDraft), "status"),
		CoverImageURL: cover,
		ThumbnailURL:  thumb,
		CloseAt:       d.String("closeAt", "deadline"),
		Fee:           fee,
		Recruit: RecruitDetailsDTO{
			Location:     d.String("recruit.location", "location"),
			ShootDate:    d.String("recruit.shootDate", "shootDate"),
			ShootTime:    d.String("recruit.shootTime", "shootTime"),
			Requirements: d.String("recruit.requirements", "requirements"),
			Pay:          fee.Value,
		},
		CreatedBy: d.Owner(),
		Views:     d.Int("views"),
		Clicks:    d.Int("clicks"),
		CreatedAt: d.String("createdAt"),
		UpdatedAt: d.String("updatedAt"),
	}
}

func RecruitFromModel(r *models.Recruit) RecruitDTO {
	return NewRecruitDTO(DocOf(r, r.LegacyBytes()))
}
