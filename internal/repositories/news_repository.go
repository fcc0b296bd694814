package repositories

import (
	"errors"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNewsNotFound = errors.New("news not found")

type NewsFilter struct {
	Status models.PublishStatus
	Pagination
}

type NewsRepository interface {
	Create(db *gorm.DB, news *models.News) error
	FindByID(db *gorm.DB, id string) (*models.News, error)
	Update(db *gorm.DB, news *models.News) error
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, filter NewsFilter) ([]models.News, int64, error)
}

type NewsRepositoryImpl struct{}

func NewNewsRepository() NewsRepository {
	return &NewsRepositoryImpl{}
}

func (r *NewsRepositoryImpl) Create(db *gorm.DB, news *models.News) error {
	return db.Create(news).Error
}

func (r *NewsRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.News, error) {
	var news models.News
	if err := db.First(&news, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrNewsNotFound)
	}
	return &news, nil
}

func (r *NewsRepositoryImpl) Update(db *gorm.DB, news *models.News) error {
	result := db.Save(news)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.News{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepositoryImpl) List(db *gorm.DB, filter NewsFilter) ([]models.News, int64, error) {
	query := db.Model(&models.News{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []models.News
	total, err := findPage(query, filter.Pagination, &items)
	return items, total, err
}
