package models

// BrandProfile - карточка бренда, один на пользователя
type BrandProfile struct {
	BaseModel
	Legacy
	UserID      string `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	CompanyName string `gorm:"not null" json:"companyName"`
	LogoURL     string `json:"logoUrl"`
	Website     string `json:"website"`
	Description string `gorm:"type:text" json:"description"`
}

func (b *BrandProfile) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(b.UserID, b.Legacy)
}
