package models

type News struct {
	BaseModel
	Legacy
	Title        string        `gorm:"not null" json:"title"`
	Body         string        `gorm:"type:text" json:"body"`
	ThumbnailURL string        `json:"thumbnailUrl"`
	Status       PublishStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CreatedBy    string        `gorm:"type:uuid;not null" json:"createdBy"`
	Views        int64         `gorm:"not null;default:0" json:"views"`
	Clicks       int64         `gorm:"not null;default:0" json:"clicks"`
}

func (n *News) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(n.CreatedBy, n.Legacy)
}
