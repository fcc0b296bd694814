package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, actor auth.Actor) (*dto.UserDTO, error)
	// EnsureAdmin создает первого администратора, если в базе нет ни одного
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, tokens: tokens}
}

// Register - регистрация. Роль admin самостоятельно получить нельзя, host хранится как showhost.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.UserRole(req.Role)
	if !auth.CanRegisterAs(role) {
		return nil, apperrors.FieldValidationError("role", "role must be one of: brand, showhost, host, model")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role.Canonical(),
	}
	if err := s.userRepo.Create(withCtx(ctx, db), user); err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(withCtx(ctx, db), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthServiceImpl) Me(ctx context.Context, db *gorm.DB, actor auth.Actor) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(withCtx(ctx, db), actor.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.UserFromModel(user)
	return &out, nil
}

func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	tx := withCtx(ctx, db)
	count, err := s.userRepo.CountByRole(tx, models.UserRoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{Name: "Administrator", Email: email, PasswordHash: hash, Role: models.UserRoleAdmin}
	if err := s.userRepo.Create(tx, admin); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			logger.Warn("first admin email is taken by a non-admin user", "email", email)
			return nil
		}
		return err
	}
	logger.Info("first admin created", "user_id", admin.ID)
	return nil
}

func (s *AuthServiceImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Role.Canonical())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.TTL()).UTC().Format(time.RFC3339),
		User:      dto.UserFromModel(user),
	}, nil
}
