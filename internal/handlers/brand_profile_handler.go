package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/services"
	"hostmarket_backend/internal/services/dto"
)

type BrandProfileHandler struct {
	*BaseHandler
	profileService services.BrandProfileService
}

func NewBrandProfileHandler(base *BaseHandler, profileService services.BrandProfileService) *BrandProfileHandler {
	return &BrandProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *BrandProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles/brand")
	{
		profiles.GET("/me", h.Auth(), h.GetMine)
		profiles.PUT("/me", h.Auth(), h.UpsertMine)
		profiles.GET("/:userId", h.GetByUser)
	}
}

func (h *BrandProfileHandler) GetMine(c *gin.Context) {
	profile, err := h.profileService.GetMine(c.Request.Context(), h.GetDB(c), h.Actor(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

func (h *BrandProfileHandler) UpsertMine(c *gin.Context) {
	var req dto.BrandProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertMine(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

func (h *BrandProfileHandler) GetByUser(c *gin.Context) {
	profile, err := h.profileService.GetByUser(c.Request.Context(), h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}
