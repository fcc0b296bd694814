package dto

import "hostmarket_backend/internal/models"

// --- Brand Profile ---

type BrandProfileRequest struct {
	CompanyName string `json:"companyName" validate:"required,min=1,max=100"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type BrandProfileDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	CompanyName string `json:"companyName"`
	LogoURL     string `json:"logoUrl"`
	Website     string `json:"website"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func NewBrandProfileDTO(d Doc) BrandProfileDTO {
	return BrandProfileDTO{
		ID:          d.String("id", "_id"),
		UserID:      d.String("userId", "ownerId", "createdBy"),
		CompanyName: d.String("companyName", "brandName", "name"),
		LogoURL:     d.String("logoUrl", "logo"),
		Website:     d.String("website", "homepage"),
		Description: d.String("description"),
		CreatedAt:   d.String("createdAt"),
		UpdatedAt:   d.String("updatedAt"),
	}
}

func BrandProfileFromModel(b *models.BrandProfile) BrandProfileDTO {
	return NewBrandProfileDTO(DocOf(b, b.LegacyBytes()))
}

// --- News ---

type CreateNewsRequest struct {
	Title        string `json:"title" validate:"required,min=2,max=200"`
	Body         string `json:"body" validate:"required"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Status       string `json:"status" validate:"omitempty,is-publish-status"`
}

type UpdateNewsRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Body         *string `json:"body,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	Status       *string `json:"status,omitempty" validate:"omitempty,is-publish-status"`
}

type NewsDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Status       string `json:"status"`
	CreatedBy    string `json:"createdBy"`
	Views        int64  `json:"views"`
	Clicks       int64  `json:"clicks"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func NewNewsDTO(d Doc) NewsDTO {
	return NewsDTO{
		ID:           d.String("id", "_id"),
		Title:        d.String("title"),
		Body:         d.String("body", "content"),
		ThumbnailURL: d.String("thumbnailUrl", "thumbnail"),
		Status:       d.StringOr(string(models.PublishStatusDraft), "status"),
		CreatedBy:    d.Owner(),
		Views:        d.Int("views"),
		Clicks:       d.Int("clicks"),
		CreatedAt:    d.String("createdAt"),
		UpdatedAt:    d.String("updatedAt"),
	}
}

func NewsFromModel(n *models.News) NewsDTO {
	return NewNewsDTO(DocOf(n, n.LegacyBytes()))
}

// --- Shorts ---

type CreateShortRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	SourceURL    string `json:"sourceUrl" validate:"required,url"`
	Provider     string `json:"provider" validate:"omitempty,is-short-provider"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Status       string `json:"status" validate:"omitempty,is-publish-status"`
}

type ShortDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	SourceURL    string `json:"sourceUrl"`
	Provider     string `json:"provider"`
	EmbedURL     string `json:"embedUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Status       string `json:"status"`
	CreatedBy    string `json:"createdBy"`
	Views        int64  `json:"views"`
	Clicks       int64  `json:"clicks"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func NewShortDTO(d Doc) ShortDTO {
	source := d.String("sourceUrl", "url", "videoUrl")
	provider := models.ShortProvider(d.String("provider", "platform"))
	if provider == "" {
		provider = DetectProvider(source)
	}
	return ShortDTO{
		ID:           d.String("id", "_id"),
		Title:        d.String("title"),
		SourceURL:    source,
		Provider:     string(provider),
		EmbedURL:     EmbedURL(provider, source),
		ThumbnailURL: d.String("thumbnailUrl", "thumbnail"),
		Status:       d.StringOr(string(models.PublishStatusPublished), "status"),
		CreatedBy:    d.Owner(),
		Views:        d.Int("views"),
		Clicks:       d.Int("clicks"),
		CreatedAt:    d.String("createdAt"),
		UpdatedAt:    d.String("updatedAt"),
	}
}

func ShortFromModel(s *models.Short) ShortDTO {
	return NewShortDTO(DocOf(s, s.LegacyBytes()))
}
