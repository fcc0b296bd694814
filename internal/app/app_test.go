package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostmarket_backend/internal/config"
	"hostmarket_backend/internal/email"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/repositories/memory"
)

type envelope struct {
	OK      bool            `json:"ok"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app    *App
	mailer *email.MockProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", io.Discard)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Tracking.BufferSize = 16
	cfg.Scraper.Timeout = 1
	cfg.RateLimit.RequestsPerSecond = 1000
	cfg.RateLimit.Burst = 1000

	mailer := email.NewMockProvider()
	application := Build(cfg, nil, memory.New().Set(), mailer)
	t.Cleanup(func() {
		application.Tracker.Close()
		application.Services.NotificationService.Wait()
	})
	return &testServer{app: application, mailer: mailer}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (s *testServer) register(t *testing.T, name, mail, role string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": name, "email": mail, "password": "password123", "role": role,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func idOf(t *testing.T, env envelope) string {
	t.Helper()
	var obj struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &obj))
	require.NotEmpty(t, obj.ID)
	return obj.ID
}

func (s *testServer) createRecruit(t *testing.T, token string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/recruits", token, map[string]any{
		"title": "Live commerce host", "status": "published", "fee": 50000,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	return idOf(t, env)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.OK)
}

func TestAuthMe_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.OK)
	assert.Equal(t, "UNAUTHORIZED", env.Code)

	token := s.register(t, "Mina", "mina@example.com", "showhost")
	code, env = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.OK)
}

func TestRegister_ValidationEnvelope(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "x", "email": "not-an-email", "password": "short", "role": "admin",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, env.OK)
	assert.Equal(t, "VALIDATION_FAILED", env.Code)
}

func TestApply_TwiceConflicts(t *testing.T) {
	s := newTestServer(t)
	brand := s.register(t, "Acme", "brand@example.com", "brand")
	host := s.register(t, "Mina", "mina@example.com", "showhost")

	recruitID := s.createRecruit(t, brand)

	code, env := s.do(t, http.MethodPost, "/api/v1/portfolios", host, map[string]any{
		"nickname": "mina", "headline": "beauty host", "status": "published",
		"mainThumbnailUrl": "https://cdn.example.com/mina.jpg",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	portfolioID := idOf(t, env)

	apply := map[string]string{"recruitId": recruitID, "portfolioId": portfolioID, "message": "hi"}
	code, env = s.do(t, http.MethodPost, "/api/v1/applications", host, apply)
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = s.do(t, http.MethodPost, "/api/v1/applications", host, apply)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.OK)
	assert.Equal(t, "ALREADY_APPLIED", env.Code)

	s.app.Services.NotificationService.Wait()
	assert.Len(t, s.mailer.Sent(), 1)
}

func TestUpdateRecruit_ForeignBrandForbidden(t *testing.T) {
	s := newTestServer(t)
	owner := s.register(t, "Acme", "acme@example.com", "brand")
	other := s.register(t, "Other", "other@example.com", "brand")

	recruitID := s.createRecruit(t, owner)

	code, env := s.do(t, http.MethodPut, "/api/v1/recruits/"+recruitID, other, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN_EDIT", env.Code)

	code, env = s.do(t, http.MethodPut, "/api/v1/recruits/"+recruitID, owner, map[string]string{"title": "Renamed"})
	assert.Equal(t, http.StatusOK, code, env.Message)
	assert.True(t, env.OK)
}

func TestShowhostCannotCreateRecruit(t *testing.T) {
	s := newTestServer(t)
	host := s.register(t, "Mina", "mina@example.com", "showhost")

	code, env := s.do(t, http.MethodPost, "/api/v1/recruits", host, map[string]any{"title": "Nope"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, env.OK)
}

func TestTrack_AlwaysAccepted(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/track/recruit/some-id/view", "", nil)
	assert.Equal(t, http.StatusAccepted, code)
	assert.True(t, env.OK)

	code, _ = s.do(t, http.MethodPost, "/api/v1/track/unknown/some-id/like", "", nil)
	assert.Equal(t, http.StatusAccepted, code)
}

func TestPublicList_PageEnvelope(t *testing.T) {
	s := newTestServer(t)
	brand := s.register(t, "Acme", "brand@example.com", "brand")
	s.createRecruit(t, brand)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recruits?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		OK         bool              `json:"ok"`
		Items      []json.RawMessage `json:"items"`
		Total      int64             `json:"total"`
		Page       int               `json:"page"`
		Limit      int               `json:"limit"`
		TotalPages int               `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.True(t, page.OK)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
}
