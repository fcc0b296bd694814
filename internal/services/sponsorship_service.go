package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

type SponsorshipListQuery struct {
	Status string
	Type   string
}

type SponsorshipService interface {
	CreateSponsorship(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateSponsorshipRequest) (*dto.SponsorshipDTO, error)
	GetSponsorship(ctx context.Context, db *gorm.DB, id string) (*dto.SponsorshipDTO, error)
	ListSponsorships(ctx context.Context, db *gorm.DB, query SponsorshipListQuery, q dto.ListQuery) (*dto.PageResult[dto.SponsorshipDTO], error)
	UpdateSponsorship(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateSponsorshipRequest) (*dto.SponsorshipDTO, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.SponsorshipStatus) (*dto.SponsorshipDTO, error)
	DeleteSponsorship(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
	PreviewProduct(ctx context.Context, rawURL string) (*dto.ProductPreviewDTO, error)
}

type sponsorshipService struct {
	sponsorshipRepo repositories.SponsorshipRepository
	profileRepo     repositories.BrandProfileRepository
	previewer       Previewer
}

func NewSponsorshipService(
	sponsorshipRepo repositories.SponsorshipRepository,
	profileRepo repositories.BrandProfileRepository,
	previewer Previewer,
) SponsorshipService {
	return &sponsorshipService{sponsorshipRepo: sponsorshipRepo, profileRepo: profileRepo, previewer: previewer}
}

func (s *sponsorshipService) CreateSponsorship(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateSponsorshipRequest) (*dto.SponsorshipDTO, error) {
	if err := requirePermission(actor, auth.PermSponsorshipWrite); err != nil {
		return nil, err
	}
	tx := withCtx(ctx, db)

	sponsorship := &models.Sponsorship{
		Title:           strings.TrimSpace(req.Title),
		BrandName:       strings.TrimSpace(req.BrandName),
		Description:     req.Description,
		Type:            models.SponsorshipType(req.Type),
		Status:          models.SponsorshipStatus(req.Status),
		ProductName:     req.ProductName,
		ProductURL:      req.ProductURL,
		ProductImageURL: req.ProductImageURL,
		ProductPrice:    req.ProductPrice,
		Fee:             req.Fee,
		FeeNegotiable:   models.BoolPtr(req.FeeNegotiable),
		ProductOnly:     models.BoolPtr(req.ProductOnly),
		CloseAt:         req.CloseAt,
		CreatedBy:       actor.ID,
	}
	if sponsorship.Status == "" {
		sponsorship.Status = models.SponsorshipStatusOpen
	}
	if sponsorship.BrandName == "" {
		sponsorship.BrandName = defaultBrandName(tx, s.profileRepo, actor.ID)
	}
	if err := checkRewardModes(sponsorship); err != nil {
		return nil, err
	}

	if err := s.sponsorshipRepo.Create(tx, sponsorship); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.SponsorshipFromModel(sponsorship)
	return &out, nil
}

func (s *sponsorshipService) GetSponsorship(ctx context.Context, db *gorm.DB, id string) (*dto.SponsorshipDTO, error) {
	sponsorship, err := s.sponsorshipRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.SponsorshipFromModel(sponsorship)
	return &out, nil
}

// ListSponsorships: по умолчанию только open
func (s *sponsorshipService) ListSponsorships(ctx context.Context, db *gorm.DB, query SponsorshipListQuery, q dto.ListQuery) (*dto.PageResult[dto.SponsorshipDTO], error) {
	status := models.SponsorshipStatus(query.Status)
	if status == "" {
		status = models.SponsorshipStatusOpen
	}
	if !status.Valid() {
		return nil, apperrors.FieldValidationError("status", "must be one of: open, in_progress, closed, completed")
	}
	typ := models.SponsorshipType(query.Type)
	if typ != "" && !typ.Valid() {
		return nil, apperrors.FieldValidationError("type", "must be one of: delivery_keep, delivery_return, experience_review")
	}

	p := pageOf(q)
	items, total, err := s.sponsorshipRepo.List(withCtx(ctx, db), repositories.SponsorshipFilter{Status: status, Type: typ, Pagination: p})
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.SponsorshipFromModel)
	return &page, nil
}

func (s *sponsorshipService) UpdateSponsorship(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateSponsorshipRequest) (*dto.SponsorshipDTO, error) {
	tx := withCtx(ctx, db)
	sponsorship, err := s.ownedSponsorship(tx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sponsorship.Title = strings.TrimSpace(*req.Title)
	}
	if req.BrandName != nil {
		sponsorship.BrandName = strings.TrimSpace(*req.BrandName)
	}
	if req.Description != nil {
		sponsorship.Description = *req.Description
	}
	if req.Type != nil {
		sponsorship.Type = models.SponsorshipType(*req.Type)
	}
	if req.ProductName != nil {
		sponsorship.ProductName = *req.ProductName
	}
	if req.ProductURL != nil {
		sponsorship.ProductURL = *req.ProductURL
	}
	if req.ProductImageURL != nil {
		sponsorship.ProductImageURL = *req.ProductImageURL
	}
	if req.ProductPrice != nil {
		sponsorship.ProductPrice = req.ProductPrice
	}
	if req.CloseAt != nil {
		sponsorship.CloseAt = req.CloseAt
	}
	if err := applyRewardUpdate(sponsorship, req); err != nil {
		return nil, err
	}

	if err := s.sponsorshipRepo.Update(tx, sponsorship); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.SponsorshipFromModel(sponsorship)
	return &out, nil
}

func (s *sponsorshipService) UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.SponsorshipStatus) (*dto.SponsorshipDTO, error) {
	if !status.Valid() {
		return nil, apperrors.FieldValidationError("status", "must be one of: open, in_progress, closed, completed")
	}
	tx := withCtx(ctx, db)
	sponsorship, err := s.ownedSponsorship(tx, actor, id)
	if err != nil {
		return nil, err
	}
	sponsorship.Status = status
	if err := s.sponsorshipRepo.Update(tx, sponsorship); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.SponsorshipFromModel(sponsorship)
	return &out, nil
}

func (s *sponsorshipService) DeleteSponsorship(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	tx := withCtx(ctx, db)
	if _, err := s.ownedSponsorship(tx, actor, id); err != nil {
		return err
	}
	return handleRepoError(s.sponsorshipRepo.Delete(tx, id))
}

// PreviewProduct - любая ошибка страницы товара отдается как SCRAPE_FAILED
func (s *sponsorshipService) PreviewProduct(ctx context.Context, rawURL string) (*dto.ProductPreviewDTO, error) {
	if s.previewer == nil {
		return nil, apperrors.ErrScrapeFailed(nil)
	}
	product, err := s.previewer.Fetch(ctx, rawURL)
	if err != nil {
		logger.CtxWarn(ctx, "product preview failed", "url", rawURL, "error", err)
		return nil, apperrors.ErrScrapeFailed(err)
	}
	return &dto.ProductPreviewDTO{
		URL:          product.URL,
		Title:        product.Title,
		ImageURL:     product.ImageURL,
		ThumbnailURL: dto.ThumbnailURL(product.ImageURL),
		Price:        product.Price,
		Currency:     product.Currency,
	}, nil
}

func (s *sponsorshipService) ownedSponsorship(db *gorm.DB, actor auth.Actor, id string) (*models.Sponsorship, error) {
	sponsorship, err := s.sponsorshipRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanActOn(actor, sponsorship) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return sponsorship, nil
}

// checkRewardModes: fee, feeNegotiable и productOnly взаимоисключающие
func checkRewardModes(s *models.Sponsorship) error {
	if s.RewardModes() > 1 {
		return errRewardModes()
	}
	return nil
}

func errRewardModes() error {
	return apperrors.FieldValidationError("reward", "only one of fee, feeNegotiable, productOnly may be set")
}

// applyRewardUpdate переключает способ вознаграждения: выбранный в запросе режим
// сбрасывает остальные. Два режима в одном запросе - ошибка.
func applyRewardUpdate(s *models.Sponsorship, req *dto.UpdateSponsorshipRequest) error {
	selected := 0
	if req.Fee != nil {
		selected++
	}
	if models.Flag(req.FeeNegotiable) {
		selected++
	}
	if models.Flag(req.ProductOnly) {
		selected++
	}
	if selected > 1 {
		return errRewardModes()
	}

	switch {
	case req.Fee != nil:
		s.Fee = req.Fee
		s.FeeNegotiable = models.BoolPtr(false)
		s.ProductOnly = models.BoolPtr(false)
	case models.Flag(req.FeeNegotiable):
		s.Fee = nil
		s.FeeNegotiable = models.BoolPtr(true)
		s.ProductOnly = models.BoolPtr(false)
	case models.Flag(req.ProductOnly):
		s.Fee = nil
		s.FeeNegotiable = models.BoolPtr(false)
		s.ProductOnly = models.BoolPtr(true)
	}
	// явный false просто снимает флаг
	if req.FeeNegotiable != nil && !*req.FeeNegotiable {
		s.FeeNegotiable = models.BoolPtr(false)
	}
	if req.ProductOnly != nil && !*req.ProductOnly {
		s.ProductOnly = models.BoolPtr(false)
	}
	return checkRewardModes(s)
}
