package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

type ShortService interface {
	CreateShort(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateShortRequest) (*dto.ShortDTO, error)
	GetShort(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.ShortDTO, error)
	ListShorts(ctx context.Context, db *gorm.DB, provider string, q dto.ListQuery) (*dto.PageResult[dto.ShortDTO], error)
	DeleteShort(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
}

type shortService struct {
	shortRepo repositories.ShortRepository
}

func NewShortService(shortRepo repositories.ShortRepository) ShortService {
	return &shortService{shortRepo: shortRepo}
}

// CreateShort: провайдер определяется по ссылке, если не передан
func (s *shortService) CreateShort(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateShortRequest) (*dto.ShortDTO, error) {
	if err := requirePermission(actor, auth.PermShortWrite); err != nil {
		return nil, err
	}

	source := strings.TrimSpace(req.SourceURL)
	provider := models.ShortProvider(req.Provider)
	if provider == "" {
		provider = dto.DetectProvider(source)
	}
	if !provider.Valid() {
		return nil, apperrors.FieldValidationError("sourceUrl", "must be a YouTube, Instagram or TikTok link")
	}

	short := &models.Short{
		Title:        strings.TrimSpace(req.Title),
		SourceURL:    source,
		Provider:     provider,
		ThumbnailURL: req.ThumbnailURL,
		Status:       models.PublishStatus(req.Status),
		CreatedBy:    actor.ID,
	}
	if short.Status == "" {
		short.Status = models.PublishStatusPublished
	}
	if err := s.shortRepo.Create(withCtx(ctx, db), short); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.ShortFromModel(short)
	return &out, nil
}

func (s *shortService) GetShort(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.ShortDTO, error) {
	short, err := s.shortRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if short.Status != models.PublishStatusPublished && !auth.CanActOn(actor, short) {
		return nil, apperrors.ErrNotFound("short")
	}
	out := dto.ShortFromModel(short)
	return &out, nil
}

func (s *shortService) ListShorts(ctx context.Context, db *gorm.DB, provider string, q dto.ListQuery) (*dto.PageResult[dto.ShortDTO], error) {
	p := pageOf(q)
	items, total, err := s.shortRepo.List(withCtx(ctx, db), repositories.ShortFilter{
		Status:     models.PublishStatusPublished,
		Provider:   models.ShortProvider(provider),
		Pagination: p,
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.ShortFromModel)
	return &page, nil
}

func (s *shortService) DeleteShort(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	tx := withCtx(ctx, db)
	short, err := s.shortRepo.FindByID(tx, id)
	if err != nil {
		return handleRepoError(err)
	}
	if !auth.CanActOn(actor, short) {
		return apperrors.ErrInsufficientPermissions
	}
	return handleRepoError(s.shortRepo.Delete(tx, id))
}
