package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/services/dto"
)

type BrandProfileService interface {
	GetMine(ctx context.Context, db *gorm.DB, actor auth.Actor) (*dto.BrandProfileDTO, error)
	GetByUser(ctx context.Context, db *gorm.DB, userID string) (*dto.BrandProfileDTO, error)
	UpsertMine(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.BrandProfileRequest) (*dto.BrandProfileDTO, error)
}

type brandProfileService struct {
	profileRepo repositories.BrandProfileRepository
}

func NewBrandProfileService(profileRepo repositories.BrandProfileRepository) BrandProfileService {
	return &brandProfileService{profileRepo: profileRepo}
}

func (s *brandProfileService) GetMine(ctx context.Context, db *gorm.DB, actor auth.Actor) (*dto.BrandProfileDTO, error) {
	return s.GetByUser(ctx, db, actor.ID)
}

func (s *brandProfileService) GetByUser(ctx context.Context, db *gorm.DB, userID string) (*dto.BrandProfileDTO, error) {
	profile, err := s.profileRepo.FindByUserID(withCtx(ctx, db), userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.BrandProfileFromModel(profile)
	return &out, nil
}

// UpsertMine - у пользователя не больше одного профиля бренда
func (s *brandProfileService) UpsertMine(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.BrandProfileRequest) (*dto.BrandProfileDTO, error) {
	if err := requirePermission(actor, auth.PermBrandProfileWrite); err != nil {
		return nil, err
	}
	profile := &models.BrandProfile{
		UserID:      actor.ID,
		CompanyName: strings.TrimSpace(req.CompanyName),
		LogoURL:     req.LogoURL,
		Website:     req.Website,
		Description: req.Description,
	}
	if err := s.profileRepo.Upsert(withCtx(ctx, db), profile); err != nil {
		return nil, handleRepoError(err)
	}
	out := dto.BrandProfileFromModel(profile)
	return &out, nil
}
