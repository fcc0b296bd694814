package repositories

import (
	"errors"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPortfolioNotFound = errors.New("portfolio not found")

type PortfolioFilter struct {
	Status     models.PortfolioStatus
	Visibility models.Visibility
	CreatedBy  string
	Tag        string
	Pagination
}

type PortfolioRepository interface {
	Create(db *gorm.DB, portfolio *models.Portfolio) error
	FindByID(db *gorm.DB, id string) (*models.Portfolio, error)
	Update(db *gorm.DB, portfolio *models.Portfolio) error
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, filter PortfolioFilter) ([]models.Portfolio, int64, error)
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, portfolio *models.Portfolio) error {
	return db.Create(portfolio).Error
}

func (r *PortfolioRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := db.First(&portfolio, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrPortfolioNotFound)
	}
	return &portfolio, nil
}

func (r *PortfolioRepositoryImpl) Update(db *gorm.DB, portfolio *models.Portfolio) error {
	result := db.Save(portfolio)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Portfolio{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) List(db *gorm.DB, filter PortfolioFilter) ([]models.Portfolio, int64, error) {
	query := db.Model(&models.Portfolio{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Visibility != "" {
		query = query.Where("visibility = ?", filter.Visibility)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(tags)", filter.Tag)
	}

	var portfolios []models.Portfolio
	total, err := findPage(query, filter.Pagination, &portfolios)
	return portfolios, total, err
}
