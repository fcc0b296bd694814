// Package memory - in-memory реализация репозиториев для тестов и локального запуска.
// Аргумент *gorm.DB игнорируется.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories"
)

type collection[T any] struct {
	mu   *sync.RWMutex
	rows map[string]T
	base func(*T) *models.BaseModel
}

func newCollection[T any](mu *sync.RWMutex, base func(*T) *models.BaseModel) *collection[T] {
	return &collection[T]{mu: mu, rows: make(map[string]T), base: base}
}

func (c *collection[T]) insertLocked(v *T) {
	b := c.base(v)
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	c.rows[b.ID] = *v
}

func (c *collection[T]) insert(v *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(v)
}

func (c *collection[T]) get(id string) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.rows[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

func (c *collection[T]) save(v *T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.base(v)
	if _, ok := c.rows[b.ID]; !ok {
		return false
	}
	b.UpdatedAt = time.Now().UTC()
	c.rows[b.ID] = *v
	return true
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[id]; !ok {
		return false
	}
	delete(c.rows, id)
	return true
}

func (c *collection[T]) list(match func(*T) bool, p repositories.Pagination) ([]T, int64) {
	c.mu.RLock()
	all := make([]T, 0, len(c.rows))
	for _, v := range c.rows {
		v := v
		if match(&v) {
			all = append(all, v)
		}
	}
	c.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		bi, bj := c.base(&all[i]), c.base(&all[j])
		if !bi.CreatedAt.Equal(bj.CreatedAt) {
			return bi.CreatedAt.After(bj.CreatedAt)
		}
		return bi.ID < bj.ID
	})

	total := int64(len(all))
	p = p.Normalize()
	start := p.Offset()
	if start >= len(all) {
		return []T{}, total
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total
}

// Store держит все коллекции под одним мьютексом
type Store struct {
	mu           sync.RWMutex
	users        *collection[models.User]
	recruits     *collection[models.Recruit]
	portfolios   *collection[models.Portfolio]
	applications *collection[models.Application]
	offers       *collection[models.Offer]
	proposals    *collection[models.Proposal]
	sponsorships *collection[models.Sponsorship]
	profiles     *collection[models.BrandProfile]
	news         *collection[models.News]
	shorts       *collection[models.Short]
}

func New() *Store {
	s := &Store{}
	s.users = newCollection(&s.mu, func(v *models.User) *models.BaseModel { return &v.BaseModel })
	s.recruits = newCollection(&s.mu, func(v *models.Recruit) *models.BaseModel { return &v.BaseModel })
	s.portfolios = newCollection(&s.mu, func(v *models.Portfolio) *models.BaseModel { return &v.BaseModel })
	s.applications = newCollection(&s.mu, func(v *models.Application) *models.BaseModel { return &v.BaseModel })
	s.offers = newCollection(&s.mu, func(v *models.Offer) *models.BaseModel { return &v.BaseModel })
	s.proposals = newCollection(&s.mu, func(v *models.Proposal) *models.BaseModel { return &v.BaseModel })
	s.sponsorships = newCollection(&s.mu, func(v *models.Sponsorship) *models.BaseModel { return &v.BaseModel })
	s.profiles = newCollection(&s.mu, func(v *models.BrandProfile) *models.BaseModel { return &v.BaseModel })
	s.news = newCollection(&s.mu, func(v *models.News) *models.BaseModel { return &v.BaseModel })
	s.shorts = newCollection(&s.mu, func(v *models.Short) *models.BaseModel { return &v.BaseModel })
	return s
}

var (
	_ repositories.UserRepository         = UserRepository{}
	_ repositories.RecruitRepository      = RecruitRepository{}
	_ repositories.PortfolioRepository    = PortfolioRepository{}
	_ repositories.ApplicationRepository  = ApplicationRepository{}
	_ repositories.OfferRepository        = OfferRepository{}
	_ repositories.ProposalRepository     = ProposalRepository{}
	_ repositories.SponsorshipRepository  = SponsorshipRepository{}
	_ repositories.BrandProfileRepository = BrandProfileRepository{}
	_ repositories.NewsRepository         = NewsRepository{}
	_ repositories.ShortRepository        = ShortRepository{}
	_ repositories.CounterRepository      = CounterRepository{}
)

func (s *Store) Users() UserRepository                 { return UserRepository{s} }
func (s *Store) Recruits() RecruitRepository           { return RecruitRepository{s} }
func (s *Store) Portfolios() PortfolioRepository       { return PortfolioRepository{s} }
func (s *Store) Applications() ApplicationRepository   { return ApplicationRepository{s} }
func (s *Store) Offers() OfferRepository               { return OfferRepository{s} }
func (s *Store) Proposals() ProposalRepository         { return ProposalRepository{s} }
func (s *Store) Sponsorships() SponsorshipRepository   { return SponsorshipRepository{s} }
func (s *Store) BrandProfiles() BrandProfileRepository { return BrandProfileRepository{s} }
func (s *Store) News() NewsRepository                  { return NewsRepository{s} }
func (s *Store) Shorts() ShortRepository               { return ShortRepository{s} }
func (s *Store) Counters() CounterRepository           { return CounterRepository{s} }

// Set - все репозитории поверх одного Store
func (s *Store) Set() repositories.Set {
	return repositories.Set{
		Users:         s.Users(),
		Recruits:      s.Recruits(),
		Portfolios:    s.Portfolios(),
		Applications:  s.Applications(),
		Offers:        s.Offers(),
		Proposals:     s.Proposals(),
		Sponsorships:  s.Sponsorships(),
		BrandProfiles: s.BrandProfiles(),
		News:          s.News(),
		Shorts:        s.Shorts(),
		Counters:      s.Counters(),
	}
}

// --- Users ---

type UserRepository struct{ s *Store }

func (r UserRepository) Create(_ *gorm.DB, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range r.s.users.rows {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.s.users.insertLocked(user)
	return nil
}

func (r UserRepository) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if u, ok := r.s.users.get(id); ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r UserRepository) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users.rows {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r UserRepository) CountByRole(_ *gorm.DB, role models.UserRole) (int64, error) {
	_, total := r.s.users.list(func(u *models.User) bool { return u.Role == role }, repositories.Pagination{})
	return total, nil
}

// --- Recruits ---

type RecruitRepository struct{ s *Store }

func (r RecruitRepository) Create(_ *gorm.DB, recruit *models.Recruit) error {
	recruit.SyncFee()
	r.s.recruits.insert(recruit)
	return nil
}

func (r RecruitRepository) FindByID(_ *gorm.DB, id string) (*models.Recruit, error) {
	if v, ok := r.s.recruits.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrRecruitNotFound
}

func (r RecruitRepository) Update(_ *gorm.DB, recruit *models.Recruit) error {
	recruit.SyncFee()
	if !r.s.recruits.save(recruit) {
		return repositories.ErrRecruitNotFound
	}
	return nil
}

func (r RecruitRepository) Delete(_ *gorm.DB, id string) error {
	if !r.s.recruits.remove(id) {
		return repositories.ErrRecruitNotFound
	}
	return nil
}

func (r RecruitRepository) List(_ *gorm.DB, f repositories.RecruitFilter) ([]models.Recruit, int64, error) {
	q := strings.ToLower(f.Query)
	items, total := r.s.recruits.list(func(v *models.Recruit) bool {
		return (f.Status == "" || v.Status == f.Status) &&
			(f.Category == "" || v.Category == f.Category) &&
			(f.CreatedBy == "" || v.CreatedBy == f.CreatedBy) &&
			(q == "" || strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(strings.ToLower(v.BrandName), q))
	}, f.Pagination)
	return items, total, nil
}

// --- Portfolios ---

type PortfolioRepository struct{ s *Store }

func (r PortfolioRepository) Create(_ *gorm.DB, p *models.Portfolio) error {
	r.s.portfolios.insert(p)
	return nil
}

func (r PortfolioRepository) FindByID(_ *gorm.DB, id string) (*models.Portfolio, error) {
	if v, ok := r.s.portfolios.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrPortfolioNotFound
}

func (r PortfolioRepository) Update(_ *gorm.DB, p *models.Portfolio) error {
	if !r.s.portfolios.save(p) {
		return repositories.ErrPortfolioNotFound
	}
	return nil
}

func (r PortfolioRepository) Delete(_ *gorm.DB, id string) error {
	if !r.s.portfolios.remove(id) {
		return repositories.ErrPortfolioNotFound
	}
	return nil
}

func (r PortfolioRepository) List(_ *gorm.DB, f repositories.PortfolioFilter) ([]models.Portfolio, int64, error) {
	items, total := r.s.portfolios.list(func(v *models.Portfolio) bool {
		return (f.Status == "" || v.Status == f.Status) &&
			(f.Visibility == "" || v.Visibility == f.Visibility) &&
			(f.CreatedBy == "" || v.CreatedBy == f.CreatedBy) &&
			(f.Tag == "" || contains(v.Tags, f.Tag))
	}, f.Pagination)
	return items, total, nil
}

// --- Applications ---

type ApplicationRepository struct{ s *Store }

// Create повторяет уникальный индекс (recruit_id, created_by)
func (r ApplicationRepository) Create(_ *gorm.DB, a *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.applications.rows {
		if existing.RecruitID == a.RecruitID && existing.CreatedBy == a.CreatedBy {
			return repositories.ErrApplicationExists
		}
	}
	a.Status = a.Status.Canonical()
	if a.Status == "" {
		a.Status = models.ApplicationStatusSubmitted
	}
	r.s.applications.insertLocked(a)
	return nil
}

func (r ApplicationRepository) FindByID(_ *gorm.DB, id string) (*models.Application, error) {
	if v, ok := r.s.applications.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r ApplicationRepository) UpdateStatus(_ *gorm.DB, id string, status models.ApplicationStatus) error {
	v, ok := r.s.applications.get(id)
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	v.Status = status.Canonical()
	r.s.applications.save(v)
	return nil
}

func (r ApplicationRepository) List(_ *gorm.DB, f repositories.ApplicationFilter) ([]models.Application, int64, error) {
	items, total := r.s.applications.list(func(v *models.Application) bool {
		return (f.RecruitID == "" || v.RecruitID == f.RecruitID) &&
			(f.CreatedBy == "" || v.CreatedBy == f.CreatedBy)
	}, f.Pagination)
	return items, total, nil
}

// --- Offers ---

type OfferRepository struct{ s *Store }

func (r OfferRepository) Create(_ *gorm.DB, o *models.Offer) error {
	if o.Status == "" {
		o.Status = models.OfferStatusPending
	}
	r.s.offers.insert(o)
	return nil
}

func (r OfferRepository) FindByID(_ *gorm.DB, id string) (*models.Offer, error) {
	if v, ok := r.s.offers.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrOfferNotFound
}

func (r OfferRepository) Update(_ *gorm.DB, o *models.Offer) error {
	if !r.s.offers.save(o) {
		return repositories.ErrOfferNotFound
	}
	return nil
}

func (r OfferRepository) List(_ *gorm.DB, f repositories.OfferFilter) ([]models.Offer, int64, error) {
	items, total := r.s.offers.list(func(v *models.Offer) bool {
		return (f.CreatedBy == "" || v.CreatedBy == f.CreatedBy) &&
			(f.ToUser == "" || v.ToUser == f.ToUser) &&
			(f.Status == "" || v.Status == f.Status)
	}, f.Pagination)
	return items, total, nil
}

func (r OfferRepository) FindExpiredPending(_ *gorm.DB, before time.Time, limit int) ([]string, error) {
	items, _ := r.s.offers.list(func(v *models.Offer) bool {
		return v.Status == models.OfferStatusPending && v.ReplyDeadline != nil && v.ReplyDeadline.Before(before)
	}, repositories.Pagination{Limit: limit})
	return ids(items, func(v *models.Offer) string { return v.ID }), nil
}

func (r OfferRepository) HoldIfPending(_ *gorm.DB, id string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.offers.rows[id]
	if !ok || v.Status != models.OfferStatusPending {
		return false, nil
	}
	v.Status = models.OfferStatusOnHold
	v.HeldAt = &at
	v.UpdatedAt = at
	r.s.offers.rows[id] = v
	return true, nil
}

// --- Proposals ---

type ProposalRepository struct{ s *Store }

func (r ProposalRepository) Create(_ *gorm.DB, p *models.Proposal) error {
	if p.Status == "" {
		p.Status = models.ProposalStatusPending
	}
	r.s.proposals.insert(p)
	return nil
}

func (r ProposalRepository) FindByID(_ *gorm.DB, id string) (*models.Proposal, error) {
	if v, ok := r.s.proposals.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrProposalNotFound
}

func (r ProposalRepository) Update(_ *gorm.DB, p *models.Proposal) error {
	if !r.s.proposals.save(p) {
		return repositories.ErrProposalNotFound
	}
	return nil
}

func (r ProposalRepository) List(_ *gorm.DB, f repositories.ProposalFilter) ([]models.Proposal, int64, error) {
	items, total := r.s.proposals.list(func(v *models.Proposal) bool {
		return (f.ProposerID == "" || v.ProposerID == f.ProposerID) &&
			(f.TargetShowhostID == "" || v.TargetShowhostID == f.TargetShowhostID) &&
			(f.Status == "" || v.Status == f.Status)
	}, f.Pagination)
	return items, total, nil
}

func (r ProposalRepository) FindExpiredPending(_ *gorm.DB, before time.Time, limit int) ([]string, error) {
	items, _ := r.s.proposals.list(func(v *models.Proposal) bool {
		return v.Status == models.ProposalStatusPending && v.ReplyDeadline != nil && v.ReplyDeadline.Before(before)
	}, repositories.Pagination{Limit: limit})
	return ids(items, func(v *models.Proposal) string { return v.ID }), nil
}

func (r ProposalRepository) HoldIfPending(_ *gorm.DB, id string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.proposals.rows[id]
	if !ok || v.Status != models.ProposalStatusPending {
		return false, nil
	}
	v.Status = models.ProposalStatusHold
	v.HeldAt = &at
	v.UpdatedAt = at
	r.s.proposals.rows[id] = v
	return true, nil
}

// --- Sponsorships ---

type SponsorshipRepository struct{ s *Store }

func (r SponsorshipRepository) Create(_ *gorm.DB, v *models.Sponsorship) error {
	if v.Status == "" {
		v.Status = models.SponsorshipStatusOpen
	}
	r.s.sponsorships.insert(v)
	return nil
}

func (r SponsorshipRepository) FindByID(_ *gorm.DB, id string) (*models.Sponsorship, error) {
	if v, ok := r.s.sponsorships.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrSponsorshipNotFound
}

func (r SponsorshipRepository) Update(_ *gorm.DB, v *models.Sponsorship) error {
	if !r.s.sponsorships.save(v) {
		return repositories.ErrSponsorshipNotFound
	}
	return nil
}

func (r SponsorshipRepository) Delete(_ *gorm.DB, id string) error {
	if !r.s.sponsorships.remove(id) {
		return repositories.ErrSponsorshipNotFound
	}
	return nil
}

func (r SponsorshipRepository) List(_ *gorm.DB, f repositories.SponsorshipFilter) ([]models.Sponsorship, int64, error) {
	items, total := r.s.sponsorships.list(func(v *models.Sponsorship) bool {
		return (f.Status == "" || v.Status == f.Status) &&
			(f.Type == "" || v.Type == f.Type) &&
			(f.CreatedBy == "" || v.CreatedBy == f.CreatedBy)
	}, f.Pagination)
	return items, total, nil
}

// --- Brand profiles ---

type BrandProfileRepository struct{ s *Store }

func (r BrandProfileRepository) FindByUserID(_ *gorm.DB, userID string) (*models.BrandProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.profiles.rows {
		if v.UserID == userID {
			v := v
			return &v, nil
		}
	}
	return nil, repositories.ErrBrandProfileNotFound
}

func (r BrandProfileRepository) Upsert(_ *gorm.DB, p *models.BrandProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.profiles.rows {
		if existing.UserID == p.UserID {
			p.BaseModel = existing.BaseModel
			p.UpdatedAt = time.Now().UTC()
			p.LegacyDoc = existing.LegacyDoc
			r.s.profiles.rows[id] = *p
			return nil
		}
	}
	r.s.profiles.insertLocked(p)
	return nil
}

// --- News ---

type NewsRepository struct{ s *Store }

func (r NewsRepository) Create(_ *gorm.DB, v *models.News) error {
	r.s.news.insert(v)
	return nil
}

func (r NewsRepository) FindByID(_ *gorm.DB, id string) (*models.News, error) {
	if v, ok := r.s.news.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrNewsNotFound
}

func (r NewsRepository) Update(_ *gorm.DB, v *models.News) error {
	if !r.s.news.save(v) {
		return repositories.ErrNewsNotFound
	}
	return nil
}

func (r NewsRepository) Delete(_ *gorm.DB, id string) error {
	if !r.s.news.remove(id) {
		return repositories.ErrNewsNotFound
	}
	return nil
}

func (r NewsRepository) List(_ *gorm.DB, f repositories.NewsFilter) ([]models.News, int64, error) {
	items, total := r.s.news.list(func(v *models.News) bool {
		return f.Status == "" || v.Status == f.Status
	}, f.Pagination)
	return items, total, nil
}

// --- Shorts ---

type ShortRepository struct{ s *Store }

func (r ShortRepository) Create(_ *gorm.DB, v *models.Short) error {
	if v.Status == "" {
		v.Status = models.PublishStatusPublished
	}
	r.s.shorts.insert(v)
	return nil
}

func (r ShortRepository) FindByID(_ *gorm.DB, id string) (*models.Short, error) {
	if v, ok := r.s.shorts.get(id); ok {
		return v, nil
	}
	return nil, repositories.ErrShortNotFound
}

func (r ShortRepository) Delete(_ *gorm.DB, id string) error {
	if !r.s.shorts.remove(id) {
		return repositories.ErrShortNotFound
	}
	return nil
}

func (r ShortRepository) List(_ *gorm.DB, f repositories.ShortFilter) ([]models.Short, int64, error) {
	items, total := r.s.shorts.list(func(v *models.Short) bool {
		return (f.Status == "" || v.Status == f.Status) &&
			(f.Provider == "" || v.Provider == f.Provider) &&
			(f.CreatedBy == "" || v.CreatedBy == f.CreatedBy)
	}, f.Pagination)
	return items, total, nil
}

// --- Counters ---

type CounterRepository struct{ s *Store }

func (r CounterRepository) Increment(_ *gorm.DB, kind, id, metric string) error {
	if _, _, err := repositories.CounterTarget(kind, metric); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bump := func(views, clicks *int64) {
		if metric == repositories.MetricView {
			*views++
		} else {
			*clicks++
		}
	}
	switch kind {
	case repositories.KindRecruit:
		if v, ok := r.s.recruits.rows[id]; ok {
			bump(&v.Views, &v.Clicks)
			r.s.recruits.rows[id] = v
		}
	case repositories.KindNews:
		if v, ok := r.s.news.rows[id]; ok {
			bump(&v.Views, &v.Clicks)
			r.s.news.rows[id] = v
		}
	case repositories.KindShort:
		if v, ok := r.s.shorts.rows[id]; ok {
			bump(&v.Views, &v.Clicks)
			r.s.shorts.rows[id] = v
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func ids[T any](items []T, id func(*T) string) []string {
	out := make([]string, 0, len(items))
	for i := range items {
		out = append(out, id(&items[i]))
	}
	return out
}
