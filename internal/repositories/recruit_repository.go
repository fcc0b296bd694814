package repositories

import (
	"errors"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRecruitNotFound = errors.New("recruit not found")

type RecruitFilter struct {
	Status    models.RecruitStatus
	Category  string
	Query     string
	CreatedBy string
	Pagination
}

type RecruitRepository interface {
	Create(db *gorm.DB, recruit *models.Recruit) error
	FindByID(db *gorm.DB, id string) (*models.Recruit, error)
	Update(db *gorm.DB, recruit *models.Recruit) error
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, filter RecruitFilter) ([]models.Recruit, int64, error)
}

type RecruitRepositoryImpl struct{}

func NewRecruitRepository() RecruitRepository {
	return &RecruitRepositoryImpl{}
}

func (r *RecruitRepositoryImpl) Create(db *gorm.DB, recruit *models.Recruit) error {
	recruit.SyncFee()
	return db.Create(recruit).Error
}

func (r *RecruitRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Recruit, error) {
	var recruit models.Recruit
	if err := db.First(&recruit, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrRecruitNotFound)
	}
	return &recruit, nil
}

func (r *RecruitRepositoryImpl) Update(db *gorm.DB, recruit *models.Recruit) error {
	recruit.SyncFee()
	result := db.Save(recruit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecruitNotFound
	}
	return nil
}

func (r *RecruitRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Recruit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecruitNotFound
	}
	return nil
}

func (r *RecruitRepositoryImpl) List(db *gorm.DB, filter RecruitFilter) ([]models.Recruit, int64, error) {
	query := db.Model(&models.Recruit{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Query != "" {
		like := containsPattern(filter.Query)
		query = query.Where("title ILIKE ? OR brand_name ILIKE ?", like, like)
	}

	var recruits []models.Recruit
	total, err := findPage(query, filter.Pagination, &recruits)
	return recruits, total, err
}
