package repositories

import (
	"errors"
	"time"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProposalNotFound = errors.New("proposal not found")

type ProposalFilter struct {
	ProposerID       string
	TargetShowhostID string
	Status           models.ProposalStatus
	Pagination
}

type ProposalRepository interface {
	Create(db *gorm.DB, proposal *models.Proposal) error
	FindByID(db *gorm.DB, id string) (*models.Proposal, error)
	Update(db *gorm.DB, proposal *models.Proposal) error
	List(db *gorm.DB, filter ProposalFilter) ([]models.Proposal, int64, error)

	FindExpiredPending(db *gorm.DB, before time.Time, limit int) ([]string, error)
	HoldIfPending(db *gorm.DB, id string, at time.Time) (bool, error)
}

type ProposalRepositoryImpl struct{}

func NewProposalRepository() ProposalRepository {
	return &ProposalRepositoryImpl{}
}

func (r *ProposalRepositoryImpl) Create(db *gorm.DB, proposal *models.Proposal) error {
	return db.Create(proposal).Error
}

func (r *ProposalRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := db.First(&proposal, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProposalNotFound)
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) Update(db *gorm.DB, proposal *models.Proposal) error {
	result := db.Save(proposal)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryImpl) List(db *gorm.DB, filter ProposalFilter) ([]models.Proposal, int64, error) {
	query := db.Model(&models.Proposal{})
	if filter.ProposerID != "" {
		query = query.Where("proposer_id = ?", filter.ProposerID)
	}
	if filter.TargetShowhostID != "" {
		query = query.Where("target_showhost_id = ?", filter.TargetShowhostID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var proposals []models.Proposal
	total, err := findPage(query, filter.Pagination, &proposals)
	return proposals, total, err
}

func (r *ProposalRepositoryImpl) FindExpiredPending(db *gorm.DB, before time.Time, limit int) ([]string, error) {
	var ids []string
	err := db.Model(&models.Proposal{}).
		Where("status = ? AND reply_deadline IS NOT NULL AND reply_deadline < ?", models.ProposalStatusPending, before).
		Order("reply_deadline ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// HoldIfPending - как у офферов, но старое имя статуса hold
func (r *ProposalRepositoryImpl) HoldIfPending(db *gorm.DB, id string, at time.Time) (bool, error) {
	result := db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", id, models.ProposalStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ProposalStatusHold,
			"held_at":    at,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
