package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/middleware"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/services"
	"hostmarket_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(h.Auth())
	{
		applications.POST("", middleware.RequirePermission(auth.PermApplicationCreate), h.Apply)
		applications.GET("", h.ListApplications)
		applications.GET("/:id", h.GetApplication)
		applications.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, application)
}

func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var query dto.ApplicationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.applicationService.ListApplications(c.Request.Context(), h.GetDB(c), h.Actor(c), query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	application, err := h.applicationService.GetApplication(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, application)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dto.ApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), models.ApplicationStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, application)
}
