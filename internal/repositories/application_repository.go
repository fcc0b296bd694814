package repositories

import (
	"errors"
	"time"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists for this recruit")
)

type ApplicationFilter struct {
	RecruitID string
	CreatedBy string
	Pagination
}

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
	List(db *gorm.DB, filter ApplicationFilter) ([]models.Application, int64, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// Create полагается на уникальный индекс (recruit_id, created_by), а не на
// предварительную проверку: два параллельных отклика не проскочат оба.
func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	application.Status = application.Status.Canonical()
	if err := db.Create(application).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	if err := db.First(&application, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrApplicationNotFound)
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status.Canonical(),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) List(db *gorm.DB, filter ApplicationFilter) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{})
	if filter.RecruitID != "" {
		query = query.Where("recruit_id = ?", filter.RecruitID)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}

	var applications []models.Application
	total, err := findPage(query, filter.Pagination, &applications)
	return applications, total, err
}
