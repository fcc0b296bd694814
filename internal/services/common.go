package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/scraper"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

// Tracker - fire-and-forget учет просмотров (tracking.Dispatcher)
type Tracker interface {
	Track(kind, id, metric string) bool
}

// Previewer - загрузка страницы товара (scraper.Fetcher)
type Previewer interface {
	Fetch(ctx context.Context, rawURL string) (*scraper.Product, error)
}

// withCtx привязывает контекст запроса к соединению. nil db - in-memory репозитории.
func withCtx(ctx context.Context, db *gorm.DB) *gorm.DB {
	if db == nil {
		return nil
	}
	return db.WithContext(ctx)
}

func pageOf(q dto.ListQuery) repositories.Pagination {
	return repositories.Pagination{Page: q.Page, Limit: q.Limit}.Normalize()
}

func queryOf(p repositories.Pagination) dto.ListQuery {
	return dto.ListQuery{Page: p.Page, Limit: p.Limit}
}

// requirePermission - проверка роли внутри сервиса, маршруты проверяют то же самое
func requirePermission(actor auth.Actor, permission string) error {
	if !actor.Authenticated() {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if !auth.HasPermission(actor.Role, permission) {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

// defaultBrandName - название компании из профиля бренда, если он есть
func defaultBrandName(db *gorm.DB, profiles repositories.BrandProfileRepository, userID string) string {
	profile, err := profiles.FindByUserID(db, userID)
	if err != nil {
		return ""
	}
	return profile.CompanyName
}

// handleRepoError переводит sentinel-ошибки репозиториев в AppError
func handleRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrRecruitNotFound):
		return apperrors.ErrNotFound("recruit")
	case errors.Is(err, repositories.ErrPortfolioNotFound):
		return apperrors.ErrNotFound("portfolio")
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrNotFound("application")
	case errors.Is(err, repositories.ErrApplicationExists):
		return apperrors.ErrAlreadyApplied
	case errors.Is(err, repositories.ErrOfferNotFound):
		return apperrors.ErrNotFound("offer")
	case errors.Is(err, repositories.ErrProposalNotFound):
		return apperrors.ErrNotFound("proposal")
	case errors.Is(err, repositories.ErrSponsorshipNotFound):
		return apperrors.ErrNotFound("sponsorship")
	case errors.Is(err, repositories.ErrBrandProfileNotFound):
		return apperrors.ErrNotFound("brand_profile")
	case errors.Is(err, repositories.ErrNewsNotFound):
		return apperrors.ErrNotFound("news")
	case errors.Is(err, repositories.ErrShortNotFound):
		return apperrors.ErrNotFound("short")
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrNotFound("user")
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
