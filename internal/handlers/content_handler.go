package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/middleware"
	"hostmarket_backend/internal/services"
	"hostmarket_backend/internal/services/dto"
)

// ContentHandler - новости и шорты
type ContentHandler struct {
	*BaseHandler
	newsService  services.NewsService
	shortService services.ShortService
}

func NewContentHandler(base *BaseHandler, newsService services.NewsService, shortService services.ShortService) *ContentHandler {
	return &ContentHandler{
		BaseHandler:  base,
		newsService:  newsService,
		shortService: shortService,
	}
}

func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup) {
	news := r.Group("/news")
	news.Use(h.OptionalAuth())
	{
		news.GET("", h.ListNews)
		news.GET("/:id", h.GetNews)
	}
	newsAdmin := r.Group("/news")
	newsAdmin.Use(h.Auth(), middleware.RequirePermission(auth.PermNewsWrite))
	{
		newsAdmin.POST("", h.CreateNews)
		newsAdmin.PUT("/:id", h.UpdateNews)
		newsAdmin.DELETE("/:id", h.DeleteNews)
	}

	shorts := r.Group("/shorts")
	shorts.Use(h.OptionalAuth())
	{
		shorts.GET("", h.ListShorts)
		shorts.GET("/:id", h.GetShort)
	}
	shortsAuth := r.Group("/shorts")
	shortsAuth.Use(h.Auth())
	{
		shortsAuth.POST("", middleware.RequirePermission(auth.PermShortWrite), h.CreateShort)
		shortsAuth.DELETE("/:id", h.DeleteShort)
	}
}

// --- News ---

func (h *ContentHandler) ListNews(c *gin.Context) {
	page, err := h.newsService.ListNews(c.Request.Context(), h.GetDB(c), h.Actor(c), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *ContentHandler) GetNews(c *gin.Context) {
	news, err := h.newsService.GetNews(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, news)
}

func (h *ContentHandler) CreateNews(c *gin.Context) {
	var req dto.CreateNewsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	news, err := h.newsService.CreateNews(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, news)
}

func (h *ContentHandler) UpdateNews(c *gin.Context) {
	var req dto.UpdateNewsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	news, err := h.newsService.UpdateNews(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, news)
}

func (h *ContentHandler) DeleteNews(c *gin.Context) {
	if err := h.newsService.DeleteNews(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c)
}

// --- Shorts ---

func (h *ContentHandler) ListShorts(c *gin.Context) {
	page, err := h.shortService.ListShorts(c.Request.Context(), h.GetDB(c), c.Query("provider"), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *ContentHandler) GetShort(c *gin.Context) {
	short, err := h.shortService.GetShort(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, short)
}

func (h *ContentHandler) CreateShort(c *gin.Context) {
	var req dto.CreateShortRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	short, err := h.shortService.CreateShort(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, short)
}

func (h *ContentHandler) DeleteShort(c *gin.Context) {
	if err := h.shortService.DeleteShort(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c)
}
