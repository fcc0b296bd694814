package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/middleware"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/services"
	"hostmarket_backend/internal/services/dto"
)

type RecruitHandler struct {
	*BaseHandler
	recruitService     services.RecruitService
	applicationService services.ApplicationService
}

func NewRecruitHandler(base *BaseHandler, recruitService services.RecruitService, applicationService services.ApplicationService) *RecruitHandler {
	return &RecruitHandler{
		BaseHandler:        base,
		recruitService:     recruitService,
		applicationService: applicationService,
	}
}

func (h *RecruitHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/recruits")
	public.Use(h.OptionalAuth())
	{
		public.GET("", h.ListRecruits)
		public.GET("/:id", h.GetRecruit)
	}

	// Protected routes
	recruits := r.Group("/recruits")
	recruits.Use(h.Auth())
	{
		recruits.GET("/mine", middleware.RequirePermission(auth.PermRecruitWrite), h.ListMine)
		recruits.POST("", middleware.RequirePermission(auth.PermRecruitWrite), h.CreateRecruit)
		recruits.PUT("/:id", h.UpdateRecruit)
		recruits.PATCH("/:id/status", h.UpdateStatus)
		recruits.DELETE("/:id", h.DeleteRecruit)
		recruits.GET("/:id/applications", h.ListApplications)
	}
}

func (h *RecruitHandler) ListRecruits(c *gin.Context) {
	filter := dto.RecruitFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Query:    strings.TrimSpace(c.Query("q")),
	}
	page, err := h.recruitService.ListPublished(c.Request.Context(), h.GetDB(c), filter, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *RecruitHandler) GetRecruit(c *gin.Context) {
	recruit, err := h.recruitService.GetRecruit(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, recruit)
}

func (h *RecruitHandler) ListMine(c *gin.Context) {
	page, err := h.recruitService.ListMine(c.Request.Context(), h.GetDB(c), h.Actor(c), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *RecruitHandler) CreateRecruit(c *gin.Context) {
	var req dto.CreateRecruitRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	recruit, err := h.recruitService.CreateRecruit(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, recruit)
}

func (h *RecruitHandler) UpdateRecruit(c *gin.Context) {
	var req dto.UpdateRecruitRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	recruit, err := h.recruitService.UpdateRecruit(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, recruit)
}

func (h *RecruitHandler) UpdateStatus(c *gin.Context) {
	var req dto.RecruitStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	recruit, err := h.recruitService.UpdateStatus(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), models.RecruitStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, recruit)
}

func (h *RecruitHandler) DeleteRecruit(c *gin.Context) {
	if err := h.recruitService.DeleteRecruit(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c)
}

func (h *RecruitHandler) ListApplications(c *gin.Context) {
	page, err := h.applicationService.ListForRecruit(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}
