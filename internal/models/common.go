package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate выдает UUID, если ID не задан вызывающим кодом
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Legacy - jsonb-тело документа из старой схемы (brand, pay, mainThumbnail, ownerId ...).
// Каноничные колонки всегда в приоритете, Legacy читается только как fallback.
type Legacy struct {
	LegacyDoc datatypes.JSON `gorm:"column:legacy;type:jsonb" json:"-"`
}

// LegacyBytes - сырые байты для нормализатора DTO
func (l Legacy) LegacyBytes() []byte {
	return []byte(l.LegacyDoc)
}

// legacyString читает строку по gjson-пути из legacy-тела
func (l Legacy) legacyString(path string) string {
	if len(l.LegacyDoc) == 0 || !gjson.ValidBytes(l.LegacyDoc) {
		return ""
	}
	r := gjson.GetBytes(l.LegacyDoc, path)
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// Flag - значение nullable-флага. NULL (строка из старой схемы) читается как false.
func Flag(b *bool) bool {
	return b != nil && *b
}

func BoolPtr(v bool) *bool {
	return &v
}
