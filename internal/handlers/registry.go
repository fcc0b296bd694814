package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostmarket_backend/internal/services"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	RecruitHandler      *RecruitHandler
	PortfolioHandler    *PortfolioHandler
	ApplicationHandler  *ApplicationHandler
	OfferHandler        *OfferHandler
	SponsorshipHandler  *SponsorshipHandler
	BrandProfileHandler *BrandProfileHandler
	ContentHandler      *ContentHandler
	TrackingHandler     *TrackingHandler
	HealthHandler       *HealthHandler
}

func NewAppHandlers(base *BaseHandler, svc *services.ServiceContainer, tracker services.Tracker, db *gorm.DB) *AppHandlers {
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, svc.AuthService),
		RecruitHandler:      NewRecruitHandler(base, svc.RecruitService, svc.ApplicationService),
		PortfolioHandler:    NewPortfolioHandler(base, svc.PortfolioService),
		ApplicationHandler:  NewApplicationHandler(base, svc.ApplicationService),
		OfferHandler:        NewOfferHandler(base, svc.OfferService, svc.ProposalService),
		SponsorshipHandler:  NewSponsorshipHandler(base, svc.SponsorshipService),
		BrandProfileHandler: NewBrandProfileHandler(base, svc.BrandProfileService),
		ContentHandler:      NewContentHandler(base, svc.NewsService, svc.ShortService),
		TrackingHandler:     NewTrackingHandler(tracker),
		HealthHandler:       NewHealthHandler(db),
	}
}

// RegisterRoutes вешает все API-группы на /api/v1
func (h *AppHandlers) RegisterRoutes(api *gin.RouterGroup) {
	h.AuthHandler.RegisterRoutes(api)
	h.RecruitHandler.RegisterRoutes(api)
	h.PortfolioHandler.RegisterRoutes(api)
	h.ApplicationHandler.RegisterRoutes(api)
	h.OfferHandler.RegisterRoutes(api)
	h.SponsorshipHandler.RegisterRoutes(api)
	h.BrandProfileHandler.RegisterRoutes(api)
	h.ContentHandler.RegisterRoutes(api)
	h.TrackingHandler.RegisterRoutes(api)
}
