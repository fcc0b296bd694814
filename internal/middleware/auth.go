package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/pkg/apperrors"
	"hostmarket_backend/pkg/contextkeys"
)

// AuthMiddleware - обязательный Bearer JWT
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}
		if !authenticate(c, tokens, tokenStr) {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}
		c.Next()
	}
}

// OptionalAuth прикрепляет пользователя, если токен есть и валиден. Иначе запрос анонимный.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			authenticate(c, tokens, tokenStr)
		}
		c.Next()
	}
}

// RequireRoles - middleware для проверки нескольких возможных ролей.
// Ставится после AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r.Canonical()] = true
	}

	return func(c *gin.Context) {
		actor := GetActor(c)
		if !actor.Authenticated() {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[actor.Role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequirePermission пускает роли, у которых есть разрешение
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireRoles(auth.RolesWith(permission)...)
}

// GetActor извлекает пользователя из контекста. Пустой Actor - аноним.
func GetActor(c *gin.Context) auth.Actor {
	return auth.Actor{ID: GetUserID(c), Role: models.UserRole(c.GetString(contextkeys.RoleKey))}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func authenticate(c *gin.Context, tokens *auth.TokenManager, tokenStr string) bool {
	claims, err := tokens.ParseToken(tokenStr)
	if err != nil {
		logger.CtxDebug(c.Request.Context(), "token rejected", "error", err)
		return false
	}
	c.Set(contextkeys.UserIDKey, claims.UserID)
	c.Set(contextkeys.RoleKey, string(claims.Role.Canonical()))
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
	return true
}
