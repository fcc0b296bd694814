package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/email"
	"hostmarket_backend/internal/lifecycle"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

const (
	BoxSent     = "sent"
	BoxReceived = "received"
)

type OfferService interface {
	CreateOffer(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateOfferRequest) (*dto.OfferDTO, error)
	GetOffer(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.OfferDTO, error)
	ListOffers(ctx context.Context, db *gorm.DB, actor auth.Actor, box string, status models.OfferStatus, q dto.ListQuery) (*dto.PageResult[dto.OfferDTO], error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.OfferStatusRequest) (*dto.OfferDTO, error)
}

type offerService struct {
	offerRepo     repositories.OfferRepository
	portfolioRepo repositories.PortfolioRepository
	profileRepo   repositories.BrandProfileRepository
	notifier      NotificationService
	now           func() time.Time
}

func NewOfferService(
	offerRepo repositories.OfferRepository,
	portfolioRepo repositories.PortfolioRepository,
	profileRepo repositories.BrandProfileRepository,
	notifier NotificationService,
) OfferService {
	return &offerService{
		offerRepo:     offerRepo,
		portfolioRepo: portfolioRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

// CreateOffer: получатель фиксируется один раз - владелец портфолио на момент создания
func (s *offerService) CreateOffer(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateOfferRequest) (*dto.OfferDTO, error) {
	if err := requirePermission(actor, auth.PermOfferSend); err != nil {
		return nil, err
	}
	tx := withCtx(ctx, db)

	portfolio, err := s.portfolioRepo.FindByID(tx, req.ToPortfolioID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	recipient := auth.OwnerOf(portfolio)
	if recipient == "" {
		return nil, apperrors.ErrInvalidOperation("offer", "Portfolio has no owner")
	}
	if recipient == actor.ID {
		return nil, apperrors.ErrOfferToOwnPortfolio
	}

	offer := &models.Offer{
		CreatedBy:     actor.ID,
		ToPortfolioID: portfolio.ID,
		ToUser:        recipient,
		BrandName:     strings.TrimSpace(req.BrandName),
		Message:       req.Message,
		Fee:           req.Fee,
		FeeNegotiable: models.BoolPtr(req.FeeNegotiable),
		ShootDate:     req.ShootDate,
		ShootTime:     req.ShootTime,
		ReplyDeadline: req.ReplyDeadline,
		Status:        models.OfferStatusPending,
	}
	if offer.BrandName == "" {
		offer.BrandName = defaultBrandName(tx, s.profileRepo, actor.ID)
	}
	if err := s.offerRepo.Create(tx, offer); err != nil {
		return nil, handleRepoError(err)
	}

	s.notify(ctx, db, recipient, email.TemplateOfferReceived, email.TemplateData{
		"BrandName":     offer.BrandName,
		"ReplyDeadline": formatDeadline(offer.ReplyDeadline),
	})

	out := dto.OfferFromModel(offer)
	return &out, nil
}

// GetOffer: читать могут только участники и admin (403 остальным)
func (s *offerService) GetOffer(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.OfferDTO, error) {
	offer, err := s.offerRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if lifecycle.PartyOf(actor, auth.OwnerOf(offer), offer.ToUser) == lifecycle.PartyNone {
		return nil, apperrors.ErrInsufficientPermissions
	}
	out := dto.OfferFromModel(offer)
	return &out, nil
}

func (s *offerService) ListOffers(ctx context.Context, db *gorm.DB, actor auth.Actor, box string, status models.OfferStatus, q dto.ListQuery) (*dto.PageResult[dto.OfferDTO], error) {
	p := pageOf(q)
	filter := repositories.OfferFilter{Status: status, Pagination: p}
	switch box {
	case BoxSent:
		filter.CreatedBy = actor.ID
	case BoxReceived, "":
		filter.ToUser = actor.ID
	default:
		return nil, apperrors.NewBadRequestError("box must be sent or received")
	}

	items, total, err := s.offerRepo.List(withCtx(ctx, db), filter)
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.OfferFromModel)
	return &page, nil
}

func (s *offerService) UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.OfferStatusRequest) (*dto.OfferDTO, error) {
	tx := withCtx(ctx, db)
	offer, err := s.offerRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleRepoError(err)
	}

	sender := auth.OwnerOf(offer)
	party := lifecycle.PartyOf(actor, sender, offer.ToUser)
	to := models.OfferStatus(req.Status)
	decision, err := lifecycle.CheckOfferTransition(party, offer.Status, to)
	if err != nil {
		return nil, err
	}

	offer.Status = to
	notifyUser := offer.ToUser
	if decision.ByRecipient {
		now := s.now().UTC()
		offer.RespondedAt = &now
		if req.ResponseMessage != "" {
			offer.ResponseMessage = req.ResponseMessage
		}
		notifyUser = sender
	}
	if err := s.offerRepo.Update(tx, offer); err != nil {
		return nil, handleRepoError(err)
	}

	if notifyUser != actor.ID {
		s.notify(ctx, db, notifyUser, email.TemplateOfferStatusChanged, email.TemplateData{
			"OfferID":         offer.ID,
			"Status":          string(offer.Status),
			"ResponseMessage": offer.ResponseMessage,
		})
	}

	out := dto.OfferFromModel(offer)
	return &out, nil
}

func (s *offerService) notify(ctx context.Context, db *gorm.DB, userID, template string, data email.TemplateData) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, db, userID, template, data)
	}
}

func formatDeadline(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
