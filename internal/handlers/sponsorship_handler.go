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

type SponsorshipHandler struct {
	*BaseHandler
	sponsorshipService services.SponsorshipService
}

func NewSponsorshipHandler(base *BaseHandler, sponsorshipService services.SponsorshipService) *SponsorshipHandler {
	return &SponsorshipHandler{
		BaseHandler:        base,
		sponsorshipService: sponsorshipService,
	}
}

func (h *SponsorshipHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/sponsorships")
	{
		public.GET("", h.ListSponsorships)
		public.GET("/:id", h.GetSponsorship)
	}

	// Protected routes - brand/admin
	sponsorships := r.Group("/sponsorships")
	sponsorships.Use(h.Auth(), middleware.RequirePermission(auth.PermSponsorshipWrite))
	{
		sponsorships.POST("", h.CreateSponsorship)
		sponsorships.POST("/preview", h.RateLimit(), h.PreviewProduct)
		sponsorships.PUT("/:id", h.UpdateSponsorship)
		sponsorships.PATCH("/:id/status", h.UpdateStatus)
		sponsorships.DELETE("/:id", h.DeleteSponsorship)
	}
}

func (h *SponsorshipHandler) ListSponsorships(c *gin.Context) {
	query := services.SponsorshipListQuery{Status: c.Query("status"), Type: c.Query("type")}
	page, err := h.sponsorshipService.ListSponsorships(c.Request.Context(), h.GetDB(c), query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *SponsorshipHandler) GetSponsorship(c *gin.Context) {
	sponsorship, err := h.sponsorshipService.GetSponsorship(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, sponsorship)
}

func (h *SponsorshipHandler) CreateSponsorship(c *gin.Context) {
	var req dto.CreateSponsorshipRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sponsorship, err := h.sponsorshipService.CreateSponsorship(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, sponsorship)
}

func (h *SponsorshipHandler) UpdateSponsorship(c *gin.Context) {
	var req dto.UpdateSponsorshipRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sponsorship, err := h.sponsorshipService.UpdateSponsorship(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, sponsorship)
}

func (h *SponsorshipHandler) UpdateStatus(c *gin.Context) {
	var req dto.SponsorshipStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sponsorship, err := h.sponsorshipService.UpdateStatus(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), models.SponsorshipStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, sponsorship)
}

func (h *SponsorshipHandler) DeleteSponsorship(c *gin.Context) {
	if err := h.sponsorshipService.DeleteSponsorship(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c)
}

// PreviewProduct - разбор страницы товара для автозаполнения формы
func (h *SponsorshipHandler) PreviewProduct(c *gin.Context) {
	var req dto.PreviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	preview, err := h.sponsorshipService.PreviewProduct(c.Request.Context(), req.URL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, preview)
}
