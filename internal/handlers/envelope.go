package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/services/dto"
)

// Ответы в конверте {ok: true, ...}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"ok": true, "data": data})
}

func respondOK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondPage[T any](c *gin.Context, page *dto.PageResult[T]) {
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"items":      page.Items,
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages(),
	})
}
