package repositories

// Set - все репозитории приложения, передаются в сервисы и воркеры одним значением
type Set struct {
	Users         UserRepository
	Recruits      RecruitRepository
	Portfolios    PortfolioRepository
	Applications  ApplicationRepository
	Offers        OfferRepository
	Proposals     ProposalRepository
	Sponsorships  SponsorshipRepository
	BrandProfiles BrandProfileRepository
	News          NewsRepository
	Shorts        ShortRepository
	Counters      CounterRepository
}

// NewGormSet - репозитории поверх gorm/postgres
func NewGormSet() Set {
	return Set{
		Users:         NewUserRepository(),
		Recruits:      NewRecruitRepository(),
		Portfolios:    NewPortfolioRepository(),
		Applications:  NewApplicationRepository(),
		Offers:        NewOfferRepository(),
		Proposals:     NewProposalRepository(),
		Sponsorships:  NewSponsorshipRepository(),
		BrandProfiles: NewBrandProfileRepository(),
		News:          NewNewsRepository(),
		Shorts:        NewShortRepository(),
		Counters:      NewCounterRepository(),
	}
}
