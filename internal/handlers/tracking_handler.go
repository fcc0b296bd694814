package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/services"
)

// TrackingHandler принимает просмотры и клики. Ответ всегда 202.
type TrackingHandler struct {
	tracker services.Tracker
}

func NewTrackingHandler(tracker services.Tracker) *TrackingHandler {
	return &TrackingHandler{tracker: tracker}
}

func (h *TrackingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/track/:kind/:id/:metric", h.Track)
}

func (h *TrackingHandler) Track(c *gin.Context) {
	if h.tracker != nil {
		h.tracker.Track(c.Param("kind"), c.Param("id"), c.Param("metric"))
	}
	c.JSON(http.StatusAccepted, gin.H{"ok": true})
}
