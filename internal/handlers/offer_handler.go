package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/middleware"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/services"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

type OfferHandler struct {
	*BaseHandler
	offerService    services.OfferService
	proposalService services.ProposalService
}

func NewOfferHandler(base *BaseHandler, offerService services.OfferService, proposalService services.ProposalService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:     base,
		offerService:    offerService,
		proposalService: proposalService,
	}
}

func (h *OfferHandler) RegisterRoutes(r *gin.RouterGroup) {
	offers := r.Group("/offers")
	offers.Use(h.Auth())
	{
		offers.POST("", middleware.RequirePermission(auth.PermOfferSend), h.CreateOffer)
		offers.GET("", h.ListOffers)
		offers.GET("/:id", h.GetOffer)
		offers.PATCH("/:id/status", h.UpdateOfferStatus)
	}

	// Proposal - старое имя того же процесса
	proposals := r.Group("/proposals")
	proposals.Use(h.Auth())
	{
		proposals.POST("", middleware.RequirePermission(auth.PermOfferSend), h.CreateProposal)
		proposals.GET("", h.ListProposals)
		proposals.GET("/:id", h.GetProposal)
		proposals.PATCH("/:id/status", h.UpdateProposalStatus)
	}
}

// --- Offers ---

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var req dto.CreateOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, offer)
}

func (h *OfferHandler) ListOffers(c *gin.Context) {
	status := models.OfferStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		h.HandleServiceError(c, apperrors.FieldValidationError("status", "unknown offer status"))
		return
	}

	page, err := h.offerService.ListOffers(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Query("box"), status, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	offer, err := h.offerService.GetOffer(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, offer)
}

func (h *OfferHandler) UpdateOfferStatus(c *gin.Context) {
	var req dto.OfferStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	offer, err := h.offerService.UpdateStatus(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, offer)
}

// --- Proposals ---

func (h *OfferHandler) CreateProposal(c *gin.Context) {
	var req dto.CreateProposalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), h.GetDB(c), h.Actor(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, proposal)
}

func (h *OfferHandler) ListProposals(c *gin.Context) {
	page, err := h.proposalService.ListProposals(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Query("box"), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *OfferHandler) GetProposal(c *gin.Context) {
	proposal, err := h.proposalService.GetProposal(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, proposal)
}

func (h *OfferHandler) UpdateProposalStatus(c *gin.Context) {
	var req dto.ProposalStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.UpdateStatus(c.Request.Context(), h.GetDB(c), h.Actor(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, proposal)
}
