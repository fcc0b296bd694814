package routes

import (
	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/handlers"
	"hostmarket_backend/internal/logger"
)

// RegisterRoutes регистрирует API v1 и служебные маршруты
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	appHandlers.RegisterRoutes(api)

	appHandlers.HealthHandler.RegisterRoutes(ginRouter)
	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
