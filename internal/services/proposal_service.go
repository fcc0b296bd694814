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

// ProposalService - старая форма предложения, та же машина состояний что у Offer
type ProposalService interface {
	CreateProposal(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateProposalRequest) (*dto.ProposalDTO, error)
	GetProposal(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.ProposalDTO, error)
	ListProposals(ctx context.Context, db *gorm.DB, actor auth.Actor, box string, q dto.ListQuery) (*dto.PageResult[dto.ProposalDTO], error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.ProposalStatusRequest) (*dto.ProposalDTO, error)
}

type proposalService struct {
	proposalRepo  repositories.ProposalRepository
	portfolioRepo repositories.PortfolioRepository
	profileRepo   repositories.BrandProfileRepository
	notifier      NotificationService
	now           func() time.Time
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	portfolioRepo repositories.PortfolioRepository,
	profileRepo repositories.BrandProfileRepository,
	notifier NotificationService,
) ProposalService {
	return &proposalService{
		proposalRepo:  proposalRepo,
		portfolioRepo: portfolioRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

func (s *proposalService) CreateProposal(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateProposalRequest) (*dto.ProposalDTO, error) {
	if err := requirePermission(actor, auth.PermOfferSend); err != nil {
		return nil, err
	}
	tx := withCtx(ctx, db)

	portfolio, err := s.portfolioRepo.FindByID(tx, req.TargetPortfolioID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	target := auth.OwnerOf(portfolio)
	if target == "" {
		return nil, apperrors.ErrInvalidOperation("proposal", "Portfolio has no owner")
	}
	if target == actor.ID {
		return nil, apperrors.ErrInvalidOperation("proposal", "Cannot send a proposal to your own portfolio")
	}

	proposal := &models.Proposal{
		TargetPortfolioID: portfolio.ID,
		ProposerID:        actor.ID,
		TargetShowhostID:  target,
		BrandName:         strings.TrimSpace(req.BrandName),
		ShootingDate:      req.ShootingDate,
		ReplyDeadline:     req.ReplyDeadline,
		Fee:               req.Fee,
		FeeNegotiable:     models.BoolPtr(req.FeeNegotiable),
		Message:           req.Message,
		Status:            models.ProposalStatusPending,
	}
	if proposal.BrandName == "" {
		proposal.BrandName = defaultBrandName(tx, s.profileRepo, actor.ID)
	}
	if err := s.proposalRepo.Create(tx, proposal); err != nil {
		return nil, handleRepoError(err)
	}

	s.notify(ctx, db, target, email.TemplateProposalReceived, email.TemplateData{"BrandName": proposal.BrandName})

	out := dto.ProposalFromModel(proposal)
	return &out, nil
}

func (s *proposalService) GetProposal(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.ProposalDTO, error) {
	proposal, err := s.proposalRepo.FindByID(withCtx(ctx, db), id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if lifecycle.PartyOf(actor, auth.OwnerOf(proposal), proposal.TargetShowhostID) == lifecycle.PartyNone {
		return nil, apperrors.ErrInsufficientPermissions
	}
	out := dto.ProposalFromModel(proposal)
	return &out, nil
}

func (s *proposalService) ListProposals(ctx context.Context, db *gorm.DB, actor auth.Actor, box string, q dto.ListQuery) (*dto.PageResult[dto.ProposalDTO], error) {
	p := pageOf(q)
	filter := repositories.ProposalFilter{Pagination: p}
	switch box {
	case BoxSent:
		filter.ProposerID = actor.ID
	case BoxReceived, "":
		filter.TargetShowhostID = actor.ID
	default:
		return nil, apperrors.NewBadRequestError("box must be sent or received")
	}

	items, total, err := s.proposalRepo.List(withCtx(ctx, db), filter)
	if err != nil {
		return nil, handleRepoError(err)
	}
	page := dto.MapPage(items, total, queryOf(p), dto.ProposalFromModel)
	return &page, nil
}

// UpdateStatus: hold <-> on_hold, canceled принимается как withdrawn и сохраняется как прислали
func (s *proposalService) UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.ProposalStatusRequest) (*dto.ProposalDTO, error) {
	tx := withCtx(ctx, db)
	proposal, err := s.proposalRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleRepoError(err)
	}

	proposer := auth.OwnerOf(proposal)
	party := lifecycle.PartyOf(actor, proposer, proposal.TargetShowhostID)
	to := models.ProposalStatus(req.Status)
	decision, err := lifecycle.CheckProposalTransition(party, proposal.Status, to)
	if err != nil {
		return nil, err
	}

	proposal.Status = to
	notifyUser := proposal.TargetShowhostID
	if decision.ByRecipient {
		now := s.now().UTC()
		proposal.RespondedAt = &now
		if req.ResponseMessage != "" {
			proposal.ResponseMessage = req.ResponseMessage
		}
		notifyUser = proposer
	}
	if err := s.proposalRepo.Update(tx, proposal); err != nil {
		return nil, handleRepoError(err)
	}

	if notifyUser != actor.ID {
		s.notify(ctx, db, notifyUser, email.TemplateProposalStatusChanged, email.TemplateData{
			"ProposalID": proposal.ID,
			"Status":     string(proposal.Status),
		})
	}

	out := dto.ProposalFromModel(proposal)
	return &out, nil
}

func (s *proposalService) notify(ctx context.Context, db *gorm.DB, userID, template string, data email.TemplateData) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, db, userID, template, data)
	}
}
