package services

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

type PortfolioService interface {
	CreatePortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreatePortfolioRequest) (*dto.PortfolioDTO, error)
	GetPortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.PortfolioDTO, error)
	ListPublic(ctx context.Context, db *gorm.DB, tag string, q dto.ListQuery) (*dto.PageResult[dto.PortfolioDTO], error)
	ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, q dto.ListQuery) (*dto.PageResult[dto.PortfolioDTO], error)
	UpdatePortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdatePortfolioRequest) (*dto.PortfolioDTO, error)
	DeletePortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
}

func NewPortfolioService(portfolioRepo repositories.PortfolioRepository) PortfolioService {
	return &portfolioService{portfolioRepo: portfolioRepo}
}

func (s *portfolioService) CreatePortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreatePortfolioRequest) (*dto.PortfolioDTO, error) {
	if err := requirePermission(actor, auth.PermPortfolioWrite); err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{
		Nickname:         strings.TrimSpace(req.Nickname),
		Headline:         strings.TrimSpace(req.Headline),
		Bio:              req.Bio,
		Status:           models.PortfolioStatus(req.Status),
		Visibility:       models.Visibility(req.Visibility),
		MainThumbnailURL: req.MainThumbnailURL,
		SubThumbnails:    pq.StringArray(nonNil(req.SubThumbnails)),
		Tags:             pq.StringArray(normalizeTags(req.Tags)),
		CreatedBy:        actor.ID,
	}
	if portfolio.Status == "" {
		portfolio.Status = models.PortfolioStatusDraft
	}
	if portfolio.Visibility == "" {
		portfolio.Visibility = models.VisibilityPublic
	}
	if err := checkPublishGate(portfolio); err != nil {
		return nil, err
	}

	if err := s.portfolioRepo.Create(withCtx(ctx, db), portfolio); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.PortfolioFromModel(portfolio)
	return &out, nil
}

// GetPortfolio: private и черновики видят только владелец и admin, остальным 404
func (s *portfolioService) GetPortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.PortfolioDTO, error) {
	portfolio, err := s.portfolioRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !portfolio.IsReadable() && !auth.CanActOn(actor, portfolio) {
		return nil, apperrors.ErrNotFound("portfolio")
	}
	out := dto.PortfolioFromModel(portfolio)
	return &out, nil
}

func (s *portfolioService) ListPublic(ctx context.Context, db *gorm.DB, tag string, q dto.ListQuery) (*dto.PageResult[dto.PortfolioDTO], error) {
	p := pageOf(q)
	items, total, err := s.portfolioRepo.List(withCtx(ctx, db), repositories.PortfolioFilter{
		Status:     models.PortfolioStatusPublished,
		Visibility: models.VisibilityPublic,
		Tag:        strings.ToLower(strings.TrimSpace(tag)),
		Pagination: p,
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.PortfolioFromModel)
	return &page, nil
}

func (s *portfolioService) ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, q dto.ListQuery) (*dto.PageResult[dto.PortfolioDTO], error) {
	p := pageOf(q)
	items, total, err := s.portfolioRepo.List(withCtx(ctx, db), repositories.PortfolioFilter{CreatedBy: actor.ID, Pagination: p})
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.PortfolioFromModel)
	return &page, nil
}

func (s *portfolioService) UpdatePortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdatePortfolioRequest) (*dto.PortfolioDTO, error) {
	tx := withCtx(ctx, db)
	portfolio, err := s.ownedPortfolio(tx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		portfolio.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if req.Headline != nil {
		portfolio.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.Bio != nil {
		portfolio.Bio = *req.Bio
	}
	if req.Status != nil {
		portfolio.Status = models.PortfolioStatus(*req.Status)
	}
	if req.Visibility != nil {
		portfolio.Visibility = models.Visibility(*req.Visibility)
	}
	if req.MainThumbnailURL != nil {
		portfolio.MainThumbnailURL = *req.MainThumbnailURL
	}
	if req.SubThumbnails != nil {
		portfolio.SubThumbnails = pq.StringArray(req.SubThumbnails)
	}
	if req.Tags != nil {
		portfolio.Tags = pq.StringArray(normalizeTags(req.Tags))
	}
	if err := checkPublishGate(portfolio); err != nil {
		return nil, err
	}

	if err := s.portfolioRepo.Update(tx, portfolio); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.PortfolioFromModel(portfolio)
	return &out, nil
}

func (s *portfolioService) DeletePortfolio(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	tx := withCtx(ctx, db)
	if _, err := s.ownedPortfolio(tx, actor, id); err != nil {
		return err
	}
	return handleRepoError(s.portfolioRepo.Delete(tx, id))
}

// ownedPortfolio: чужое портфолио неотличимо от несуществующего (404)
func (s *portfolioService) ownedPortfolio(db *gorm.DB, actor auth.Actor, id string) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanActOn(actor, portfolio) {
		return nil, apperrors.ErrNotFound("portfolio")
	}
	return portfolio, nil
}

// checkPublishGate: published требует nickname, headline и mainThumbnailUrl.
// Поля читаются так же, как их видит клиент, с учетом legacy-алиасов.
func checkPublishGate(p *models.Portfolio) error {
	if p.Status != models.PortfolioStatusPublished {
		return nil
	}
	missing := missingForPublish(dto.PortfolioFromModel(p))
	if len(missing) == 0 {
		return nil
	}
	details := make([]apperrors.FieldError, 0, len(missing))
	for _, field := range missing {
		details = append(details, apperrors.FieldError{Field: field, Message: field + " is required to publish"})
	}
	return apperrors.ValidationError(details)
}

func missingForPublish(p dto.PortfolioDTO) []string {
	var missing []string
	if p.Nickname == "" {
		missing = append(missing, "nickname")
	}
	if p.Headline == "" {
		missing = append(missing, "headline")
	}
	if p.MainThumbnailURL == "" {
		missing = append(missing, "mainThumbnailUrl")
	}
	return missing
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
