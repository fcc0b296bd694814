package models

import "time"

// Sponsorship - открытое предложение бренда для любого шоу-хоста
type Sponsorship struct {
	BaseModel
	Legacy
	Title           string            `gorm:"not null" json:"title"`
	BrandName       string            `json:"brandName"`
	Description     string            `gorm:"type:text" json:"description"`
	Type            SponsorshipType   `gorm:"type:varchar(30);not null" json:"type"`
	Status          SponsorshipStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	ProductName     string            `json:"productName"`
	ProductURL      string            `json:"productUrl"`
	ProductImageURL string            `json:"productImageUrl"`
	ProductPrice    *float64          `json:"productPrice"`
	Fee             *float64          `json:"fee"`
	FeeNegotiable   *bool             `json:"feeNegotiable"`
	ProductOnly     *bool             `json:"productOnly"`
	CloseAt         *time.Time        `json:"closeAt"`
	CreatedBy       string            `gorm:"type:uuid;not null;index" json:"createdBy"`
}

func (s *Sponsorship) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(s.CreatedBy, s.Legacy)
}

// RewardModes - сколько способов вознаграждения выбрано одновременно
func (s *Sponsorship) RewardModes() int {
	n := 0
	if s.Fee != nil {
		n++
	}
	if Flag(s.FeeNegotiable) {
		n++
	}
	if Flag(s.ProductOnly) {
		n++
	}
	return n
}
