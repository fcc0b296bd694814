package dto

import (
	"time"

	"hostmarket_backend/internal/models"
)

// --- Proposal Requests ---

type CreateProposalRequest struct {
	TargetPortfolioID string     `json:"targetPortfolioId" validate:"required,uuid"`
	BrandName         string     `json:"brandName" validate:"omitempty,max=100"`
	ShootingDate      string     `json:"shootingDate" validate:"omitempty,max=50"`
	ReplyDeadline     *time.Time `json:"replyDeadline"`
	Fee               *float64   `json:"fee" validate:"omitempty,min=0"`
	FeeNegotiable     bool       `json:"feeNegotiable"`
	Message           string     `json:"message" validate:"omitempty,max=2000"`
}

type ProposalStatusRequest struct {
	Status          string `json:"status" validate:"required,is-proposal-status"`
	ResponseMessage string `json:"responseMessage" validate:"omitempty,max=2000"`
}

// --- Proposal Responses ---

type ProposalDTO struct {
	ID                string `json:"id"`
	TargetPortfolioID string `json:"targetPortfolioId"`
	ProposerID        string `json:"proposerId"`
	TargetShowhostID  string `json:"targetShowhostId"`
	BrandName         string `json:"brandName"`
	ShootingDate      string `json:"shootingDate"`
	ReplyDeadline     string `json:"replyDeadline,omitempty"`
	Fee               Money  `json:"fee"`
	Message           string `json:"message"`
	Status            string `json:"status"`
	ResponseMessage   string `json:"responseMessage"`
	RespondedAt       string `json:"respondedAt,omitempty"`
	HeldAt            string `json:"heldAt,omitempty"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

func NewProposalDTO(d Doc) ProposalDTO {
	return ProposalDTO{
		ID:                d.String("id", "_id"),
		TargetPortfolioID: d.String("targetPortfolioId", "toPortfolioId", "portfolioId"),
		ProposerID:        d.String(append([]string{"proposerId"}, OwnerPaths...)...),
		TargetShowhostID:  d.String("targetShowhostId", "toUser"),
		BrandName:         d.String("brandName", "brand.name", "brand"),
		ShootingDate:      d.String("shootingDate", "shootDate"),
		ReplyDeadline:     d.String("replyDeadline"),
		Fee:               d.Money(FeeValuePaths, FeeNegotiablePaths),
		Message:           d.String("message"),
		Status:            d.StringOr(string(models.ProposalStatusPending), "status"),
		ResponseMessage:   d.String("responseMessage"),
		RespondedAt:       d.String("respondedAt"),
		HeldAt:            d.String("heldAt"),
		CreatedAt:         d.String("createdAt"),
		UpdatedAt:         d.String("updatedAt"),
	}
}

func ProposalFromModel(p *models.Proposal) ProposalDTO {
	return NewProposalDTO(DocOf(p, p.LegacyBytes()))
}
