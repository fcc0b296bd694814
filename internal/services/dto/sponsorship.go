package dto

import (
	"time"

	"hostmarket_backend/internal/models"
)

// --- Sponsorship Requests ---

type CreateSponsorshipRequest struct {
	Title           string     `json:"title" validate:"required,min=2,max=200"`
	BrandName       string     `json:"brandName" validate:"omitempty,max=100"`
	Description     string     `json:"description" validate:"omitempty,max=5000"`
	Type            string     `json:"type" validate:"required,is-sponsorship-type"`
	Status          string     `json:"status" validate:"omitempty,is-sponsorship-status"`
	ProductName     string     `json:"productName" validate:"omitempty,max=200"`
	ProductURL      string     `json:"productUrl" validate:"omitempty,url"`
	ProductImageURL string     `json:"productImageUrl" validate:"omitempty,url"`
	ProductPrice    *float64   `json:"productPrice" validate:"omitempty,min=0"`
	Fee             *float64   `json:"fee" validate:"omitempty,min=0"`
	FeeNegotiable   bool       `json:"feeNegotiable"`
	ProductOnly     bool       `json:"productOnly"`
	CloseAt         *time.Time `json:"closeAt"`
}

type UpdateSponsorshipRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	BrandName       *string    `json:"brandName,omitempty" validate:"omitempty,max=100"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Type            *string    `json:"type,omitempty" validate:"omitempty,is-sponsorship-type"`
	ProductName     *string    `json:"productName,omitempty" validate:"omitempty,max=200"`
	ProductURL      *string    `json:"productUrl,omitempty" validate:"omitempty,url"`
	ProductImageURL *string    `json:"productImageUrl,omitempty" validate:"omitempty,url"`
	ProductPrice    *float64   `json:"productPrice,omitempty" validate:"omitempty,min=0"`
	Fee             *float64   `json:"fee,omitempty" validate:"omitempty,min=0"`
	FeeNegotiable   *bool      `json:"feeNegotiable,omitempty"`
	ProductOnly     *bool      `json:"productOnly,omitempty"`
	CloseAt         *time.Time `json:"closeAt,omitempty"`
}

type SponsorshipStatusRequest struct {
	Status string `json:"status" validate:"required,is-sponsorship-status"`
}

type PreviewRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// --- Sponsorship Responses ---

type SponsorshipDTO struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	BrandName       string   `json:"brandName"`
	Description     string   `json:"description"`
	Type            string   `json:"type"`
	Status          string   `json:"status"`
	ProductName     string   `json:"productName"`
	ProductURL      string   `json:"productUrl"`
	ProductImageURL string   `json:"productImageUrl"`
	ThumbnailURL    string   `json:"thumbnailUrl"`
	ProductPrice    *float64 `json:"productPrice"`
	Fee             Money    `json:"fee"`
	ProductOnly     bool     `json:"productOnly"`
	CloseAt         string   `json:"closeAt,omitempty"`
	CreatedBy       string   `json:"createdBy"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

func NewSponsorshipDTO(d Doc) SponsorshipDTO {
	image := d.String("productImageUrl", "product.imageUrl", "imageUrl")
	thumb := d.String("thumbnailUrl")
	if thumb == "" && image != "" {
		thumb = ThumbnailURL(image)
	}
	return SponsorshipDTO{
		ID:              d.String("id", "_id"),
		Title:           d.String("title"),
		BrandName:       d.String("brandName", "brand.name", "brand"),
		Description:     d.String("description"),
		Type:            d.String("type"),
		Status:          d.StringOr(string(models.SponsorshipStatusOpen), "status"),
		ProductName:     d.String("productName", "product.name"),
		ProductURL:      d.String("productUrl", "product.url"),
		ProductImageURL: image,
		ThumbnailURL:    thumb,
		ProductPrice:    d.Number("productPrice", "product.price"),
		Fee:             d.Money(FeeValuePaths, FeeNegotiablePaths),
		ProductOnly:     d.Bool("productOnly"),
		CloseAt:         d.String("closeAt", "deadline"),
		CreatedBy:       d.Owner(),
		CreatedAt:       d.String("createdAt"),
		UpdatedAt:       d.String("updatedAt"),
	}
}

func SponsorshipFromModel(s *models.Sponsorship) SponsorshipDTO {
	return NewSponsorshipDTO(DocOf(s, s.LegacyBytes()))
}

// ProductPreviewDTO - результат разбора страницы товара
type ProductPreviewDTO struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	ImageURL     string   `json:"imageUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Price        *float64 `json:"price"`
	Currency     string   `json:"currency,omitempty"`
}
