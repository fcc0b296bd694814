package repositories

import (
	"errors"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSponsorshipNotFound = errors.New("sponsorship not found")

type SponsorshipFilter struct {
	Status    models.SponsorshipStatus
	Type      models.SponsorshipType
	CreatedBy string
	Pagination
}

type SponsorshipRepository interface {
	Create(db *gorm.DB, sponsorship *models.Sponsorship) error
	FindByID(db *gorm.DB, id string) (*models.Sponsorship, error)
	Update(db *gorm.DB, sponsorship *models.Sponsorship) error
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, filter SponsorshipFilter) ([]models.Sponsorship, int64, error)
}

type SponsorshipRepositoryImpl struct{}

func NewSponsorshipRepository() SponsorshipRepository {
	return &SponsorshipRepositoryImpl{}
}

func (r *SponsorshipRepositoryImpl) Create(db *gorm.DB, sponsorship *models.Sponsorship) error {
	return db.Create(sponsorship).Error
}

func (r *SponsorshipRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Sponsorship, error) {
	var sponsorship models.Sponsorship
	if err := db.First(&sponsorship, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrSponsorshipNotFound)
	}
	return &sponsorship, nil
}

func (r *SponsorshipRepositoryImpl) Update(db *gorm.DB, sponsorship *models.Sponsorship) error {
	result := db.Save(sponsorship)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSponsorshipNotFound
	}
	return nil
}

func (r *SponsorshipRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Sponsorship{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSponsorshipNotFound
	}
	return nil
}

func (r *SponsorshipRepositoryImpl) List(db *gorm.DB, filter SponsorshipFilter) ([]models.Sponsorship, int64, error) {
	query := db.Model(&models.Sponsorship{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}

	var sponsorships []models.Sponsorship
	total, err := findPage(query, filter.Pagination, &sponsorships)
	return sponsorships, total, err
}
