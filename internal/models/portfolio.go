package models

import "github.com/lib/pq"

// Portfolio - публичная страница шоу-хоста. У пользователя их может быть несколько.
type Portfolio struct {
	BaseModel
	Legacy
	Nickname         string          `json:"nickname"`
	Headline         string          `json:"headline"`
	Bio              string          `gorm:"type:text" json:"bio"`
	Status           PortfolioStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Visibility       Visibility      `gorm:"type:varchar(20);not null;default:'public'" json:"visibility"`
	MainThumbnailURL string          `json:"mainThumbnailUrl"`
	SubThumbnails    pq.StringArray  `gorm:"type:text[]" json:"subThumbnails"`
	Tags             pq.StringArray  `gorm:"type:text[]" json:"tags"`
	CreatedBy        string          `gorm:"type:uuid;not null;index" json:"createdBy"`
}

func (p *Portfolio) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(p.CreatedBy, p.Legacy)
}

// IsListed - попадает ли в публичный каталог
func (p *Portfolio) IsListed() bool {
	return p.Status == PortfolioStatusPublished && p.Visibility == VisibilityPublic
}

// IsReadable - доступно ли по прямой ссылке постороннему
func (p *Portfolio) IsReadable() bool {
	return p.Status == PortfolioStatusPublished && p.Visibility != VisibilityPrivate
}
