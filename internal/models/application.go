package models

// Application - отклик шоу-хоста на Recruit. Один на пару (recruit, автор).
type Application struct {
	BaseModel
	Legacy
	RecruitID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_recruit_creator" json:"recruitId"`
	PortfolioID string            `gorm:"type:uuid;not null;index" json:"portfolioId"`
	CreatedBy   string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_recruit_creator;index" json:"createdBy"`
	Message     string            `gorm:"type:text" json:"message"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
}

func (a *Application) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(a.CreatedBy, a.Legacy)
}
