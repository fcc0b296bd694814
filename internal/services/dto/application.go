package dto

import "hostmarket_backend/internal/models"

// --- Application Requests ---

type CreateApplicationRequest struct {
	RecruitID   string `json:"recruitId" validate:"required,uuid"`
	PortfolioID string `json:"portfolioId" validate:"required,uuid"`
	Message     string `json:"message" validate:"omitempty,max=2000"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,is-application-status"`
}

// ApplicationListQuery - ровно один из режимов: по рекруту или свои
type ApplicationListQuery struct {
	RecruitID string `form:"recruitId" validate:"omitempty,uuid"`
	Mine      bool   `form:"mine"`
}

// --- Application Responses ---

type ApplicationDTO struct {
	ID          string `json:"id"`
	RecruitID   string `json:"recruitId"`
	PortfolioID string `json:"portfolioId"`
	CreatedBy   string `json:"createdBy"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func NewApplicationDTO(d Doc) ApplicationDTO {
	status := models.ApplicationStatus(d.StringOr(string(models.ApplicationStatusSubmitted), "status"))
	return ApplicationDTO{
		ID:          d.String("id", "_id"),
		RecruitID:   d.String("recruitId", "recruit.id"),
		PortfolioID: d.String("portfolioId", "portfolio.id"),
		CreatedBy:   d.Owner(),
		Message:     d.String("message", "coverLetter"),
		Status:      string(status.Canonical()),
		CreatedAt:   d.String("createdAt"),
		UpdatedAt:   d.String("updatedAt"),
	}
}

func ApplicationFromModel(a *models.Application) ApplicationDTO {
	return NewApplicationDTO(DocOf(a, a.LegacyBytes()))
}
