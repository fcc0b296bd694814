package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/middleware"
	"hostmarket_backend/internal/services"
	"hostmarket_backend/internal/services/dto"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/portfolios")
	public.Use(h.OptionalAuth())
	{
		public.GET("", h.ListPortfolios)
		public.GET("/:id", h.GetPortfolio)
	}

	// Protected routes
	portfolios := r.Group("/portfolios")
	portfolios.Use(h.Auth())
	{
		portfolios.GET("/mine", h.ListMine)

		writers := portfolios.Group("")
		writers.Use(middleware.RequirePermission(auth.PermPortfolioWrite))
		writers.POST("", h.CreatePortfolio)
		writers.PUT("/:id", h.UpdatePortfolio)
		writers.DELETE("/:id", h.DeletePortfolio)
	}
}

func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	page, err := h.portfolioService.ListPublic(c.Request.Context(), h.GetDB(c), strings.TrimSpace(c.Query("tag")), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, portfolio)
}

func (h *PortfolioHandler) ListMine(c *gin.Context) {
	page, err := h.portfolioService.ListMine(c.Request.Context(), h.GetDB(c), h.Actor(c), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req dto.CreatePortfolioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, portfolio)
}

func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	var req dto.UpdatePortfolioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, portfolio)
}

func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	if err := h.portfolioService.DeletePortfolio(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c)
}
