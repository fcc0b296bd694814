package services

import (
	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/email"
	"hostmarket_backend/internal/repositories"
)

// Dependencies - все, что нужно для сборки сервисов
type Dependencies struct {
	Repos     repositories.Set
	Tokens    *auth.TokenManager
	Mailer    email.Provider
	Tracker   Tracker
	Previewer Previewer
}

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	RecruitService      RecruitService
	PortfolioService    PortfolioService
	ApplicationService  ApplicationService
	OfferService        OfferService
	ProposalService     ProposalService
	SponsorshipService  SponsorshipService
	BrandProfileService BrandProfileService
	NewsService         NewsService
	ShortService        ShortService
	NotificationService NotificationService
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	r := deps.Repos
	notifier := NewNotificationService(r.Users, deps.Mailer)

	return &ServiceContainer{
		AuthService:         NewAuthService(r.Users, deps.Tokens),
		RecruitService:      NewRecruitService(r.Recruits, r.BrandProfiles, deps.Tracker),
		PortfolioService:    NewPortfolioService(r.Portfolios),
		ApplicationService:  NewApplicationService(r.Applications, r.Recruits, r.Portfolios, notifier),
		OfferService:        NewOfferService(r.Offers, r.Portfolios, r.BrandProfiles, notifier),
		ProposalService:     NewProposalService(r.Proposals, r.Portfolios, r.BrandProfiles, notifier),
		SponsorshipService:  NewSponsorshipService(r.Sponsorships, r.BrandProfiles, deps.Previewer),
		BrandProfileService: NewBrandProfileService(r.BrandProfiles),
		NewsService:         NewNewsService(r.News),
		ShortService:        NewShortService(r.Shorts),
		NotificationService: notifier,
	}
}
