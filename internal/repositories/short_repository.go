package repositories

import (
	"errors"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrShortNotFound = errors.New("short not found")

type ShortFilter struct {
	Status    models.PublishStatus
	Provider  models.ShortProvider
	CreatedBy string
	Pagination
}

type ShortRepository interface {
	Create(db *gorm.DB, short *models.Short) error
	FindByID(db *gorm.DB, id string) (*models.Short, error)
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, filter ShortFilter) ([]models.Short, int64, error)
}

type ShortRepositoryImpl struct{}

func NewShortRepository() ShortRepository {
	return &ShortRepositoryImpl{}
}

func (r *ShortRepositoryImpl) Create(db *gorm.DB, short *models.Short) error {
	return db.Create(short).Error
}

func (r *ShortRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Short, error) {
	var short models.Short
	if err := db.First(&short, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrShortNotFound)
	}
	return &short, nil
}

func (r *ShortRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Short{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShortNotFound
	}
	return nil
}

func (r *ShortRepositoryImpl) List(db *gorm.DB, filter ShortFilter) ([]models.Short, int64, error) {
	query := db.Model(&models.Short{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Provider != "" {
		query = query.Where("provider = ?", filter.Provider)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}

	var shorts []models.Short
	total, err := findPage(query, filter.Pagination, &shorts)
	return shorts, total, err
}
