package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesCopies(t *testing.T) {
	withMsg := ErrForbiddenEdit.WithMessage("not yours")
	wrapped := fmt.Errorf("update recruit: %w", withMsg)

	assert.True(t, Is(wrapped, ErrForbiddenEdit))
	assert.False(t, Is(wrapped, ErrInsufficientPermissions))
	assert.Equal(t, "You can only edit your own resources", ErrForbiddenEdit.Message)
	assert.True(t, Is(ErrNotFound("recruit"), ErrNotFound("recruit")))
	assert.False(t, Is(ErrNotFound("recruit"), ErrNotFound("offer")))
}

func TestErrNotFound_Message(t *testing.T) {
	assert.Equal(t, "Brand profile not found", ErrNotFound("brand_profile").Message)
	assert.Equal(t, http.StatusNotFound, ErrNotFound("news").HTTPCode)
}

func perform(err error) (*httptest.ResponseRecorder, ErrorResponse) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, err)

	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandleError_Envelope(t *testing.T) {
	w, body := perform(FieldValidationError("reward", "Only one reward mode allowed"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, body.OK)
	assert.Equal(t, CodeValidationFailed, body.Code)
	require.NotNil(t, body.Details)
}

func TestHandleError_HidesInternals(t *testing.T) {
	w, body := perform(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeInternalError, body.Code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestErrScrapeFailed_PassesUpstreamMessage(t *testing.T) {
	w, body := perform(ErrScrapeFailed(errors.New("upstream returned 503")))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, CodeScrapeFailed, body.Code)
	assert.Equal(t, "upstream returned 503", body.Message)
}
