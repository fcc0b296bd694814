package services

import (
	"context"

	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/email"
	"hostmarket_backend/internal/lifecycle"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateApplicationRequest) (*dto.ApplicationDTO, error)
	GetApplication(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.ApplicationDTO, error)
	ListApplications(ctx context.Context, db *gorm.DB, actor auth.Actor, query dto.ApplicationListQuery, q dto.ListQuery) (*dto.PageResult[dto.ApplicationDTO], error)
	ListForRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, recruitID string, q dto.ListQuery) (*dto.PageResult[dto.ApplicationDTO], error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.ApplicationStatus) (*dto.ApplicationDTO, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	recruitRepo     repositories.RecruitRepository
	portfolioRepo   repositories.PortfolioRepository
	notifier        NotificationService
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	recruitRepo repositories.RecruitRepository,
	portfolioRepo repositories.PortfolioRepository,
	notifier NotificationService,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		recruitRepo:     recruitRepo,
		portfolioRepo:   portfolioRepo,
		notifier:        notifier,
	}
}

// Apply: портфолио должно принадлежать заявителю (admin - любое), повтор дает ALREADY_APPLIED
func (s *applicationService) Apply(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateApplicationRequest) (*dto.ApplicationDTO, error) {
	if err := requirePermission(actor, auth.PermApplicationCreate); err != nil {
		return nil, err
	}
	tx := withCtx(ctx, db)

	recruit, err := s.recruitRepo.FindByID(tx, req.RecruitID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	portfolio, err := s.portfolioRepo.FindByID(tx, req.PortfolioID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanActOn(actor, portfolio) {
		return nil, apperrors.NewForbiddenError("You can only apply with your own portfolio")
	}

	application := &models.Application{
		RecruitID:   recruit.ID,
		PortfolioID: portfolio.ID,
		CreatedBy:   actor.ID,
		Message:     req.Message,
		Status:      models.ApplicationStatusSubmitted,
	}
	if err := s.applicationRepo.Create(tx, application); err != nil {
		return nil, handleRepoError(err)
	}

	s.notify(ctx, db, auth.OwnerOf(recruit), email.TemplateApplicationSubmitted, email.TemplateData{
		"RecruitTitle":  recruit.Title,
		"ApplicationID": application.ID,
	})

	out := dto.ApplicationFromModel(application)
	return &out, nil
}

// GetApplication: заявитель, владелец рекрута или admin
func (s *applicationService) GetApplication(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.ApplicationDTO, error) {
	tx := withCtx(ctx, db)
	application, err := s.applicationRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanActOn(actor, application) {
		recruit, err := s.recruitRepo.FindByID(tx, application.RecruitID)
		if err != nil || !auth.CanActOn(actor, recruit) {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}
	out := dto.ApplicationFromModel(application)
	return &out, nil
}

// ListApplications: recruitId - заявки к рекруту (только владелец), mine - свои
func (s *applicationService) ListApplications(ctx context.Context, db *gorm.DB, actor auth.Actor, query dto.ApplicationListQuery, q dto.ListQuery) (*dto.PageResult[dto.ApplicationDTO], error) {
	switch {
	case query.RecruitID != "":
		return s.ListForRecruit(ctx, db, actor, query.RecruitID, q)
	case query.Mine:
		p := pageOf(q)
		items, total, err := s.applicationRepo.List(withCtx(ctx, db), repositories.ApplicationFilter{CreatedBy: actor.ID, Pagination: p})
		if err != nil {
			return nil, handleRepoError(err)
		}
		page := dto.MapPage(items, total, queryOf(p), dto.ApplicationFromModel)
		return &page, nil
	}
	return nil, apperrors.NewBadRequestError("Specify recruitId or mine=1")
}

func (s *applicationService) ListForRecruit(ctx context.Context, db *gorm.DB, actor auth.Actor, recruitID string, q dto.ListQuery) (*dto.PageResult[dto.ApplicationDTO], error) {
	tx := withCtx(ctx, db)
	recruit, err := s.recruitRepo.FindByID(tx, recruitID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanActOn(actor, recruit) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	p := pageOf(q)
	items, total, err := s.applicationRepo.List(tx, repositories.ApplicationFilter{RecruitID: recruit.ID, Pagination: p})
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.ApplicationFromModel)
	return &page, nil
}

// UpdateStatus - только владелец рекрута или admin
func (s *applicationService) UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.ApplicationStatus) (*dto.ApplicationDTO, error) {
	tx := withCtx(ctx, db)
	application, err := s.applicationRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	recruit, err := s.recruitRepo.FindByID(tx, application.RecruitID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if !auth.CanActOn(actor, recruit) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	status = status.Canonical()
	if err := lifecycle.CheckApplicationTransition(application.Status, status); err != nil {
		return nil, err
	}
	if application.Status.Canonical() != status {
		if err := s.applicationRepo.UpdateStatus(tx, application.ID, status); err != nil {
			return nil, handleRepoError(err)
		}
		application.Status = status
		s.notify(ctx, db, auth.OwnerOf(application), email.TemplateApplicationStatusChanged, email.TemplateData{
			"RecruitTitle": recruit.Title,
			"Status":       string(status),
		})
	}

	out := dto.ApplicationFromModel(application)
	return &out, nil
}

func (s *applicationService) notify(ctx context.Context, db *gorm.DB, userID, template string, data email.TemplateData) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, db, userID, template, data)
	}
}
