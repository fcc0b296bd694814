package models

// Short - короткое видео со сторонней площадки; embedUrl вычисляется при чтении
type Short struct {
	BaseModel
	Legacy
	Title        string        `gorm:"not null" json:"title"`
	SourceURL    string        `gorm:"not null" json:"sourceUrl"`
	Provider     ShortProvider `gorm:"type:varchar(20)" json:"provider"`
	ThumbnailURL string        `json:"thumbnailUrl"`
	Status       PublishStatus `gorm:"type:varchar(20);not null;default:'published';index" json:"status"`
	CreatedBy    string        `gorm:"type:uuid;not null;index" json:"createdBy"`
	Views        int64         `gorm:"not null;default:0" json:"views"`
	Clicks       int64         `gorm:"not null;default:0" json:"clicks"`
}

func (s *Short) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(s.CreatedBy, s.Legacy)
}
