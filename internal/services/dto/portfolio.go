package dto

import "hostmarket_backend/internal/models"

// --- Portfolio Requests ---

type CreatePortfolioRequest struct {
	Nickname         string   `json:"nickname" validate:"omitempty,max=50"`
	Headline         string   `json:"headline" validate:"omitempty,max=120"`
	Bio              string   `json:"bio" validate:"omitempty,max=5000"`
	Status           string   `json:"status" validate:"omitempty,is-portfolio-status"`
	Visibility       string   `json:"visibility" validate:"omitempty,is-visibility"`
	MainThumbnailURL string   `json:"mainThumbnailUrl" validate:"omitempty,url"`
	SubThumbnails    []string `json:"subThumbnails" validate:"omitempty,max=20,dive,url"`
	Tags             []string `json:"tags" validate:"omitempty,max=20,dive,max=30"`
}

type UpdatePortfolioRequest struct {
	Nickname         *string  `json:"nickname,omitempty" validate:"omitempty,max=50"`
	Headline         *string  `json:"headline,omitempty" validate:"omitempty,max=120"`
	Bio              *string  `json:"bio,omitempty" validate:"omitempty,max=5000"`
	Status           *string  `json:"status,omitempty" validate:"omitempty,is-portfolio-status"`
	Visibility       *string  `json:"visibility,omitempty" validate:"omitempty,is-visibility"`
	MainThumbnailURL *string  `json:"mainThumbnailUrl,omitempty" validate:"omitempty,url"`
	SubThumbnails    []string `json:"subThumbnails,omitempty" validate:"omitempty,max=20,dive,url"`
	Tags             []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=30"`
}

// --- Portfolio Responses ---

type PortfolioDTO struct {
	ID               string   `json:"id"`
	Nickname         string   `json:"nickname"`
	Headline         string   `json:"headline"`
	Bio              string   `json:"bio"`
	Status           string   `json:"status"`
	Visibility       string   `json:"visibility"`
	MainThumbnailURL string   `json:"mainThumbnailUrl"`
	SubThumbnails    []string `json:"subThumbnails"`
	Tags             []string `json:"tags"`
	CreatedBy        string   `json:"createdBy"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

func NewPortfolioDTO(d Doc) PortfolioDTO {
	return PortfolioDTO{
		ID:               d.String("id", "_id"),
		Nickname:         d.String("nickname", "name"),
		Headline:         d.String("headline"),
		Bio:              d.String("bio", "introduction"),
		Status:           d.StringOr(string(models.PortfolioStatusDraft), "status"),
		Visibility:       d.StringOr(string(models.VisibilityPublic), "visibility"),
		MainThumbnailURL: d.String("mainThumbnailUrl", "mainThumbnail"),
		SubThumbnails:    d.Strings("subThumbnails", "subImages"),
		Tags:             d.Strings("tags"),
		CreatedBy:        d.Owner(),
		CreatedAt:        d.String("createdAt"),
		UpdatedAt:        d.String("updatedAt"),
	}
}

func PortfolioFromModel(p *models.Portfolio) PortfolioDTO {
	return NewPortfolioDTO(DocOf(p, p.LegacyBytes()))
}
