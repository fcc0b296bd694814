package repositories

import (
	"errors"
	"time"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOfferNotFound = errors.New("offer not found")

type OfferFilter struct {
	CreatedBy string
	ToUser    string
	Status    models.OfferStatus
	Pagination
}

type OfferRepository interface {
	Create(db *gorm.DB, offer *models.Offer) error
	FindByID(db *gorm.DB, id string) (*models.Offer, error)
	Update(db *gorm.DB, offer *models.Offer) error
	List(db *gorm.DB, filter OfferFilter) ([]models.Offer, int64, error)

	// Для sweep
	FindExpiredPending(db *gorm.DB, before time.Time, limit int) ([]string, error)
	HoldIfPending(db *gorm.DB, id string, at time.Time) (bool, error)
}

type OfferRepositoryImpl struct{}

func NewOfferRepository() OfferRepository {
	return &OfferRepositoryImpl{}
}

func (r *OfferRepositoryImpl) Create(db *gorm.DB, offer *models.Offer) error {
	return db.Create(offer).Error
}

func (r *OfferRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Offer, error) {
	var offer models.Offer
	if err := db.First(&offer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrOfferNotFound)
	}
	return &offer, nil
}

func (r *OfferRepositoryImpl) Update(db *gorm.DB, offer *models.Offer) error {
	result := db.Save(offer)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepositoryImpl) List(db *gorm.DB, filter OfferFilter) ([]models.Offer, int64, error) {
	query := db.Model(&models.Offer{})
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.ToUser != "" {
		query = query.Where("to_user = ?", filter.ToUser)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var offers []models.Offer
	total, err := findPage(query, filter.Pagination, &offers)
	return offers, total, err
}

// FindExpiredPending - id pending-офферов с дедлайном строго раньше before
func (r *OfferRepositoryImpl) FindExpiredPending(db *gorm.DB, before time.Time, limit int) ([]string, error) {
	var ids []string
	err := db.Model(&models.Offer{}).
		Where("status = ? AND reply_deadline IS NOT NULL AND reply_deadline < ?", models.OfferStatusPending, before).
		Order("reply_deadline ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// HoldIfPending переводит оффер в on_hold только если он все еще pending.
// false - строку уже кто-то перевел, это не ошибка.
func (r *OfferRepositoryImpl) HoldIfPending(db *gorm.DB, id string, at time.Time) (bool, error) {
	result := db.Model(&models.Offer{}).
		Where("id = ? AND status = ?", id, models.OfferStatusPending).
		Updates(map[string]interface{}{
			"status":     models.OfferStatusOnHold,
			"held_at":    at,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
