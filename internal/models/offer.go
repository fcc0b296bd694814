package models

import "time"

// Offer - прямое предложение бренда владельцу портфолио
type Offer struct {
	BaseModel
	Legacy
	CreatedBy       string      `gorm:"type:uuid;not null;index" json:"createdBy"`
	ToPortfolioID   string      `gorm:"type:uuid;not null;index" json:"toPortfolioId"`
	ToUser          string      `gorm:"type:uuid;not null;index" json:"toUser"` // фиксируется при создании
	BrandName       string      `json:"brandName"`
	Message         string      `gorm:"type:text" json:"message"`
	Fee             *float64    `json:"fee"`
	FeeNegotiable   *bool       `json:"feeNegotiable"`
	ShootDate       string      `json:"shootDate"`
	ShootTime       string      `json:"shootTime"`
	ReplyDeadline   *time.Time  `gorm:"index" json:"replyDeadline"`
	Status          OfferStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ResponseMessage string      `gorm:"type:text" json:"responseMessage"`
	RespondedAt     *time.Time  `json:"respondedAt"`
	HeldAt          *time.Time  `json:"heldAt"` // проставляет только sweep
}

func (o *Offer) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(o.CreatedBy, o.Legacy)
}
