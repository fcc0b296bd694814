package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный конверт ошибки
type ErrorResponse struct {
	OK      bool        `json:"ok"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error", "code", appErr.Code, "error", err)
	}

	resp := ErrorResponse{
		OK:      false,
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
	// Внутренние детали наружу не отдаем
	if appErr.Code == CodeInternalError && !h.Debug {
		resp.Message = "Internal server error"
		resp.Details = nil
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: false}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
