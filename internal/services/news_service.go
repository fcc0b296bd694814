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

// NewsService - новости пишет только admin, читают все (черновики - только admin)
type NewsService interface {
	CreateNews(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateNewsRequest) (*dto.NewsDTO, error)
	GetNews(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.NewsDTO, error)
	ListNews(ctx context.Context, db *gorm.DB, actor auth.Actor, q dto.ListQuery) (*dto.PageResult[dto.NewsDTO], error)
	UpdateNews(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateNewsRequest) (*dto.NewsDTO, error)
	DeleteNews(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
}

type newsService struct {
	newsRepo repositories.NewsRepository
}

func NewNewsService(newsRepo repositories.NewsRepository) NewsService {
	return &newsService{newsRepo: newsRepo}
}

func (s *newsService) CreateNews(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateNewsRequest) (*dto.NewsDTO, error) {
	if err := requirePermission(actor, auth.PermNewsWrite); err != nil {
		return nil, err
	}
	news := &models.News{
		Title:        strings.TrimSpace(req.Title),
		Body:         req.Body,
		ThumbnailURL: req.ThumbnailURL,
		Status:       models.PublishStatus(req.Status),
		CreatedBy:    actor.ID,
	}
	if news.Status == "" {
		news.Status = models.PublishStatusDraft
	}
	if err := s.newsRepo.Create(withCtx(ctx, db), news); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.NewsFromModel(news)
	return &out, nil
}

func (s *newsService) GetNews(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.NewsDTO, error) {
	news, err := s.newsRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if news.Status != models.PublishStatusPublished && !actor.IsAdmin() {
		return nil, apperrors.ErrNotFound("news")
	}
	out := dto.NewsFromModel(news)
	return &out, nil
}

func (s *newsService) ListNews(ctx context.Context, db *gorm.DB, actor auth.Actor, q dto.ListQuery) (*dto.PageResult[dto.NewsDTO], error) {
	p := pageOf(q)
	filter := repositories.NewsFilter{Pagination: p}
	if !actor.IsAdmin() {
		filter.Status = models.PublishStatusPublished
	}
	items, total, err := s.newsRepo.List(withCtx(ctx, db), filter)
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.NewsFromModel)
	return &page, nil
}

func (s *newsService) UpdateNews(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateNewsRequest) (*dto.NewsDTO, error) {
	if err := requirePermission(actor, auth.PermNewsWrite); err != nil {
		return nil, err
	}
	tx := withCtx(ctx, db)
	news, err := s.newsRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if req.Title != nil {
		news.Title = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		news.Body = *req.Body
	}
	if req.ThumbnailURL != nil {
		news.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Status != nil {
		news.Status = models.PublishStatus(*req.Status)
	}

	if err := s.newsRepo.Update(tx, news); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.NewsFromModel(news)
	return &out, nil
}

func (s *newsService) DeleteNews(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	if err := requirePermission(actor, auth.PermNewsWrite); err != nil {
		return err
	}
	return handleRepoError(s.newsRepo.Delete(withCtx(ctx, db), id))
}
