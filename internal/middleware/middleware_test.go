package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *auth.TokenManager, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	handlers := append(mw, func(c *gin.Context) {
		actor := GetActor(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": string(actor.Role)})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	return resp.Code
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens, AuthMiddleware(tokens))

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.CodeUnauthorized, errorCode(t, w))

	w = do(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.CodeInvalidToken, errorCode(t, w))

	token, err := tokens.GenerateToken("u1", models.UserRoleHost)
	require.NoError(t, err)
	w = do(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"showhost"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOptionalAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens, OptionalAuth(tokens))

	w := do(r, "garbage")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"","role":""}`, w.Body.String())

	token, err := tokens.GenerateToken("b1", models.UserRoleBrand)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b1","role":"brand"}`, do(r, token).Body.String())
}

func TestRequirePermission(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens, AuthMiddleware(tokens), RequirePermission(auth.PermRecruitWrite))

	host, _ := tokens.GenerateToken("h", models.UserRoleShowhost)
	brand, _ := tokens.GenerateToken("b", models.UserRoleBrand)
	admin, _ := tokens.GenerateToken("a", models.UserRoleAdmin)

	w := do(r, host)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.CodeForbidden, errorCode(t, w))
	assert.Equal(t, http.StatusOK, do(r, brand).Code)
	assert.Equal(t, http.StatusOK, do(r, admin).Code)
}

func TestRateLimiter(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	r := newRouter(tokens, OptionalAuth(tokens), limiter.Middleware())

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	w := do(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, apperrors.CodeRateLimited, errorCode(t, w))

	// у пользователя свой бакет
	token, _ := tokens.GenerateToken("u1", models.UserRoleBrand)
	assert.Equal(t, http.StatusOK, do(r, token).Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/x", func(c *gin.Context) { panic("boom") })

	w := do(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.CodeInternalError, errorCode(t, w))
}
