package dto

import (
	"time"

	"hostmarket_backend/internal/models"
)

// --- Offer Requests ---

type CreateOfferRequest struct {
	ToPortfolioID string     `json:"toPortfolioId" validate:"required,uuid"`
	BrandName     string     `json:"brandName" validate:"omitempty,max=100"`
	Message       string     `json:"message" validate:"omitempty,max=2000"`
	Fee           *float64   `json:"fee" validate:"omitempty,min=0"`
	FeeNegotiable bool       `json:"feeNegotiable"`
	ShootDate     string     `json:"shootDate" validate:"omitempty,max=50"`
	ShootTime     string     `json:"shootTime" validate:"omitempty,max=50"`
	ReplyDeadline *time.Time `json:"replyDeadline"`
}

type OfferStatusRequest struct {
	Status          string `json:"status" validate:"required,is-offer-status"`
	ResponseMessage string `json:"responseMessage" validate:"omitempty,max=2000"`
}

// --- Offer Responses ---

type OfferDTO struct {
	ID              string `json:"id"`
	CreatedBy       string `json:"createdBy"`
	ToPortfolioID   string `json:"toPortfolioId"`
	ToUser          string `json:"toUser"`
	BrandName       string `json:"brandName"`
	Message         string `json:"message"`
	Fee             Money  `json:"fee"`
	ShootDate       string `json:"shootDate"`
	ShootTime       string `json:"shootTime"`
	ReplyDeadline   string `json:"replyDeadline,omitempty"`
	Status          string `json:"status"`
	ResponseMessage string `json:"responseMessage"`
	RespondedAt     string `json:"respondedAt,omitempty"`
	HeldAt          string `json:"heldAt,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func NewOfferDTO(d Doc) OfferDTO {
	return OfferDTO{
		ID:              d.String("id", "_id"),
		CreatedBy:       d.Owner(),
		ToPortfolioID:   d.String("toPortfolioId", "portfolioId", "targetPortfolioId"),
		ToUser:          d.String("toUser", "targetShowhostId"),
		BrandName:       d.String("brandName", "brand.name", "brand"),
		Message:         d.String("message"),
		Fee:             d.Money(FeeValuePaths, FeeNegotiablePaths),
		ShootDate:       d.String("shootDate", "shootingDate"),
		ShootTime:       d.String("shootTime"),
		ReplyDeadline:   d.String("replyDeadline"),
		Status:          d.StringOr(string(models.OfferStatusPending), "status"),
		ResponseMessage: d.String("responseMessage"),
		RespondedAt:     d.String("respondedAt"),
		HeldAt:          d.String("heldAt"),
		CreatedAt:       d.String("createdAt"),
		UpdatedAt:       d.String("updatedAt"),
	}
}

func OfferFromModel(o *models.Offer) OfferDTO {
	return NewOfferDTO(DocOf(o, o.LegacyBytes()))
}
