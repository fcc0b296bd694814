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

type RecruitService interface {
	CreateRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateRecruitRequest) (*dto.RecruitDTO, error)
	GetRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.RecruitDTO, error)
	ListPublished(ctx context.Context, db *gorm.DB, filter dto.RecruitFilter, q dto.ListQuery) (*dto.PageResult[dto.RecruitDTO], error)
	ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, q dto.ListQuery) (*dto.PageResult[dto.RecruitDTO], error)
	UpdateRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateRecruitRequest) (*dto.RecruitDTO, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.RecruitStatus) (*dto.RecruitDTO, error)
	DeleteRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
}

type recruitService struct {
	recruitRepo repositories.RecruitRepository
	profileRepo repositories.BrandProfileRepository
	tracker     Tracker
}

func NewRecruitService(recruitRepo repositories.RecruitRepository, profileRepo repositories.BrandProfileRepository, tracker Tracker) RecruitService {
	return &recruitService{recruitRepo: recruitRepo, profileRepo: profileRepo, tracker: tracker}
}

func (s *recruitService) CreateRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateRecruitRequest) (*dto.RecruitDTO, error) {
	if err := requirePermission(actor, auth.PermRecruitWrite); err != nil {
		return nil, err
	}
	tx := withCtx(ctx, db)

	recruit := &models.Recruit{
		Title:         strings.TrimSpace(req.Title),
		BrandName:     strings.TrimSpace(req.BrandName),
		Category:      req.Category,
		Status:        models.RecruitStatus(req.Status),
		CoverImageURL: req.CoverImageURL,
		ThumbnailURL:  req.ThumbnailURL,
		CloseAt:       req.CloseAt,
		Fee:           req.Fee,
		FeeNegotiable: models.BoolPtr(req.FeeNegotiable),
		CreatedBy:     actor.ID,
	}
	if recruit.Status == "" {
		recruit.Status = models.RecruitStatusDraft
	}
	if recruit.BrandName == "" {
		recruit.BrandName = defaultBrandName(tx, s.profileRepo, actor.ID)
	}
	if req.Recruit != nil {
		applyRecruitDetails(recruit, req.Recruit)
	}
	if req.Fee != nil {
		recruit.Fee = req.Fee
	}

	if err := s.recruitRepo.Create(tx, recruit); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.RecruitFromModel(recruit)
	return &out, nil
}

// GetRecruit: неопубликованный рекрут видят только владелец и admin, остальным 404.
// Просмотр не-владельцем учитывается асинхронно.
func (s *recruitService) GetRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.RecruitDTO, error) {
	recruit, err := s.recruitRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	isOwner := auth.CanActOn(actor, recruit)
	if !recruit.IsPublic() && !isOwner {
		return nil, apperrors.ErrNotFound("recruit")
	}
	if !isOwner && s.tracker != nil {
		s.tracker.Track(repositories.KindRecruit, recruit.ID, repositories.MetricView)
	}
	out := dto.RecruitFromModel(recruit)
	return &out, nil
}

func (s *recruitService) ListPublished(ctx context.Context, db *gorm.DB, filter dto.RecruitFilter, q dto.ListQuery) (*dto.PageResult[dto.RecruitDTO], error) {
	p := pageOf(q)
	items, total, err := s.recruitRepo.List(withCtx(ctx, db), repositories.RecruitFilter{
		Status:     models.RecruitStatusPublished,
		Category:   filter.Category,
		Query:      strings.TrimSpace(filter.Query),
		Pagination: p,
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.RecruitFromModel)
	return &page, nil
}

func (s *recruitService) ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, q dto.ListQuery) (*dto.PageResult[dto.RecruitDTO], error) {
	p := pageOf(q)
	items, total, err := s.recruitRepo.List(withCtx(ctx, db), repositories.RecruitFilter{CreatedBy: actor.ID, Pagination: p})
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.RecruitFromModel)
	return &page, nil
}

func (s *recruitService) UpdateRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateRecruitRequest) (*dto.RecruitDTO, error) {
	tx := withCtx(ctx, db)
	recruit, err := s.ownedRecruit(tx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recruit.Title = strings.TrimSpace(*req.Title)
	}
	if req.BrandName != nil {
		recruit.BrandName = strings.TrimSpace(*req.BrandName)
	}
	if req.Category != nil {
		recruit.Category = *req.Category
	}
	if req.Status != nil {
		recruit.Status = models.RecruitStatus(*req.Status)
	}
	if req.CoverImageURL != nil {
		recruit.CoverImageURL = *req.CoverImageURL
	}
	if req.ThumbnailURL != nil {
		recruit.ThumbnailURL = *req.ThumbnailURL
	}
	if req.CloseAt != nil {
		recruit.CloseAt = req.CloseAt
	}
	if req.FeeNegotiable != nil {
		recruit.FeeNegotiable = models.BoolPtr(*req.FeeNegotiable)
	}
	if req.Recruit != nil {
		applyRecruitDetails(recruit, req.Recruit)
	}
	if req.Fee != nil {
		recruit.Fee = req.Fee
	}

	if err := s.recruitRepo.Update(tx, recruit); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.RecruitFromModel(recruit)
	return &out, nil
}

// UpdateStatus - closed используется как мягкое удаление
func (s *recruitService) UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.RecruitStatus) (*dto.RecruitDTO, error) {
	if !status.Valid() {
		return nil, apperrors.FieldValidationError("status", "must be one of: draft, scheduled, published, closed")
	}
	tx := withCtx(ctx, db)
	recruit, err := s.ownedRecruit(tx, actor, id)
	if err != nil {
		return nil, err
	}
	recruit.Status = status
	if err := s.recruitRepo.Update(tx, recruit); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.RecruitFromModel(recruit)
	return &out, nil
}

func (s *recruitService) DeleteRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	tx := withCtx(ctx, db)
	if _, err := s.ownedRecruit(tx, actor, id); err != nil {
		return err
	}
	return handleRepoError(s.recruitRepo.Delete(tx, id))
}

// ownedRecruit - правка чужого рекрута дает FORBIDDEN_EDIT
func (s *recruitService) ownedRecruit(db *gorm.DB, actor auth.Actor, id string) (*models.Recruit, error) {
	recruit, err := s.recruitRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanActOn(actor, recruit) {
		return nil, apperrors.ErrForbiddenEdit
	}
	return recruit, nil
}

// applyRecruitDetails переносит recruit.* из запроса. recruit.pay - старое имя fee.
func applyRecruitDetails(r *models.Recruit, in *dto.RecruitDetailsInput) {
	r.Details.Location = in.Location
	r.Details.ShootDate = in.ShootDate
	r.Details.ShootTime = in.ShootTime
	r.Details.Requirements = in.Requirements
	if in.Pay != nil {
		pay := *in.Pay
		r.Details.Pay = &pay
		r.Fee = &pay
	}
}
