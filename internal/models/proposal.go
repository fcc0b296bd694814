package models

import "time"

// Proposal - предшественник Offer, своя таблица и свои имена полей
type Proposal struct {
	BaseModel
	Legacy
	TargetPortfolioID string         `gorm:"type:uuid;not null;index" json:"targetPortfolioId"`
	ProposerID        string         `gorm:"type:uuid;not null;index" json:"proposerId"`
	TargetShowhostID  string         `gorm:"type:uuid;not null;index" json:"targetShowhostId"`
	BrandName         string         `json:"brandName"`
	ShootingDate      string         `json:"shootingDate"`
	ReplyDeadline     *time.Time     `gorm:"index" json:"replyDeadline"`
	Fee               *float64       `json:"fee"`
	FeeNegotiable     *bool          `json:"feeNegotiable"`
	Message           string         `gorm:"type:text" json:"message"`
	Status            ProposalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ResponseMessage   string         `gorm:"type:text" json:"responseMessage"`
	RespondedAt       *time.Time     `json:"respondedAt"`
	HeldAt            *time.Time     `json:"heldAt"`
}

func (p *Proposal) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(p.ProposerID, p.Legacy)
}
