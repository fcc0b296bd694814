package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostmarket_backend/internal/metrics"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// Health - liveness плюс ping базы, если она подключена
func (h *HealthHandler) Health(c *gin.Context) {
	status := gin.H{"ok": true, "status": "ok"}
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "status": "degraded", "database": err.Error()})
			return
		}
		status["database"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}
