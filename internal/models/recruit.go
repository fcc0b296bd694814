package models

import "time"

// Recruit - вакансия бренда для шоу-хоста/модели
type Recruit struct {
	BaseModel
	Legacy
	Title         string         `gorm:"not null" json:"title"`
	BrandName     string         `json:"brandName"`
	Category      string         `gorm:"index" json:"category"`
	Status        RecruitStatus  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CoverImageURL string         `json:"coverImageUrl"`
	ThumbnailURL  string         `json:"thumbnailUrl"`
	CloseAt       *time.Time     `json:"closeAt"`
	Fee           *float64       `json:"fee"`
	FeeNegotiable *bool          `json:"feeNegotiable"` // nil - не записан, читается из legacy
	Details       RecruitDetails `gorm:"embedded;embeddedPrefix:recruit_" json:"recruit"`
	CreatedBy     string         `gorm:"type:uuid;not null;index" json:"createdBy"`
	Views         int64          `gorm:"not null;default:0" json:"views"`
	Clicks        int64          `gorm:"not null;default:0" json:"clicks"`
}

type RecruitDetails struct {
	Location     string   `json:"location"`
	ShootDate    string   `json:"shootDate"`
	ShootTime    string   `json:"shootTime"`
	Requirements string   `json:"requirements"`
	Pay          *float64 `json:"pay"` // старое имя fee, синхронизируется при записи
}

func (r *Recruit) OwnerAccessors() []OwnerAccessor {
	return ownerAccessors(r.CreatedBy, r.Legacy)
}

// SyncFee держит fee и recruit.pay одинаковыми. fee главнее; pay используется,
// только если fee не пришел.
func (r *Recruit) SyncFee() {
	switch {
	case r.Fee != nil:
		v := *r.Fee
		r.Details.Pay = &v
	case r.Details.Pay != nil:
		v := *r.Details.Pay
		r.Fee = &v
	}
}

func (r *Recruit) IsPublic() bool {
	return r.Status == RecruitStatusPublished
}
