package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/middleware"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/internal/validator"
	"hostmarket_backend/pkg/apperrors"
	"hostmarket_backend/pkg/contextkeys"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	tokens    *auth.TokenManager
	limiter   *middleware.RateLimiter
}

func NewBaseHandler(v *validator.Validator, tokens *auth.TokenManager, limiter *middleware.RateLimiter) *BaseHandler {
	return &BaseHandler{
		validator: v,
		tokens:    tokens,
		limiter:   limiter,
	}
}

// ============================================================================
// 2. Middleware, общие для всех групп
// ============================================================================

func (h *BaseHandler) Auth() gin.HandlerFunc {
	return middleware.AuthMiddleware(h.tokens)
}

func (h *BaseHandler) OptionalAuth() gin.HandlerFunc {
	return middleware.OptionalAuth(h.tokens)
}

// RateLimit - no-op, если лимитер не настроен
func (h *BaseHandler) RateLimit() gin.HandlerFunc {
	if h.limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h.limiter.Middleware()
}

// ============================================================================
// 3. Извлечение DB и пользователя
// ============================================================================

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context.
// nil допустим: in-memory репозитории его не используют.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		return nil
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

func (h *BaseHandler) Actor(c *gin.Context) auth.Actor {
	return middleware.GetActor(c)
}

// ============================================================================
// 4. Методы привязки и валидации (с контекстным логгированием)
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, vErr.AppError())
	} else {
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

// ============================================================================
// 5. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"code", appErr.Code,
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 6. Функции парсинга
// ============================================================================

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParsePagination читает page и limit (page_size - старое имя).
// Границы нормализует сервисный слой.
func ParsePagination(c *gin.Context) dto.ListQuery {
	limit := ParseQueryInt(c, "limit", 0)
	if limit == 0 {
		limit = ParseQueryInt(c, "page_size", 0)
	}
	return dto.ListQuery{
		Page:  ParseQueryInt(c, "page", 1),
		Limit: limit,
	}
}
