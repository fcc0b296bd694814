package repositories

import (
	"errors"
	"time"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBrandProfileNotFound = errors.New("brand profile not found")

type BrandProfileRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.BrandProfile, error)
	Upsert(db *gorm.DB, profile *models.BrandProfile) error
}

type BrandProfileRepositoryImpl struct{}

func NewBrandProfileRepository() BrandProfileRepository {
	return &BrandProfileRepositoryImpl{}
}

func (r *BrandProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, ErrBrandProfileNotFound)
	}
	return &profile, nil
}

// Upsert - один профиль на пользователя, конфликт по user_id обновляет карточку
func (r *BrandProfileRepositoryImpl) Upsert(db *gorm.DB, profile *models.BrandProfile) error {
	profile.UpdatedAt = time.Now()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_name", "logo_url", "website", "description", "updated_at"}),
	}).Create(profile).Error
}
