package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/email"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/internal/repositories/memory"
	"hostmarket_backend/internal/scraper"
	"hostmarket_backend/internal/services/dto"
	"hostmarket_backend/pkg/apperrors"
)

type fakeTracker struct{ events []string }

func (f *fakeTracker) Track(kind, id, metric string) bool {
	f.events = append(f.events, kind+":"+id+":"+metric)
	return true
}

type fakePreviewer struct {
	product *scraper.Product
	err     error
}

func (f fakePreviewer) Fetch(context.Context, string) (*scraper.Product, error) {
	return f.product, f.err
}

type fixture struct {
	store   *memory.Store
	svc     *ServiceContainer
	mailer  *email.MockProvider
	tracker *fakeTracker
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	mailer := email.NewMockProvider()
	tracker := &fakeTracker{}
	svc := NewServiceContainer(Dependencies{
		Repos:   store.Set(),
		Tokens:  auth.NewTokenManager("test-secret", time.Hour),
		Mailer:  mailer,
		Tracker: tracker,
		Previewer: fakePreviewer{product: &scraper.Product{
			URL: "https://shop.example.com/p/1", Title: "Serum",
			ImageURL: "https://res.cloudinary.com/demo/image/upload/v1/serum.jpg",
		}},
	})
	return &fixture{store: store, svc: svc, mailer: mailer, tracker: tracker, ctx: context.Background()}
}

func (f *fixture) user(t *testing.T, email string, role models.UserRole) auth.Actor {
	t.Helper()
	u := &models.User{Name: email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, f.store.Users().Create(nil, u))
	return auth.Actor{ID: u.ID, Role: role}
}

func (f *fixture) publishedPortfolio(t *testing.T, owner auth.Actor) *dto.PortfolioDTO {
	t.Helper()
	p, err := f.svc.PortfolioService.CreatePortfolio(f.ctx, nil, owner, &dto.CreatePortfolioRequest{
		Nickname: "mina", Headline: "beauty host", Status: "published",
		MainThumbnailURL: "https://cdn.example.com/mina.jpg",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) recruit(t *testing.T, owner auth.Actor, status string) *dto.RecruitDTO {
	t.Helper()
	fee := 50000.0
	r, err := f.svc.RecruitService.CreateRecruit(f.ctx, nil, owner, &dto.CreateRecruitRequest{
		Title: "Live commerce host", Status: status, Fee: &fee,
		CoverImageURL: "https://res.cloudinary.com/demo/image/upload/v1/cover.jpg",
	})
	require.NoError(t, err)
	return r
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode, status int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.HTTPCode)
}

// --- Auth ---

func TestAuth_RegisterLoginMe(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.AuthService.Register(f.ctx, nil, &dto.RegisterRequest{
		Name: "Mina", Email: "Mina@Example.com", Password: "password1", Role: "host",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "showhost", resp.User.Role)
	assert.Equal(t, "mina@example.com", resp.User.Email)

	_, err = f.svc.AuthService.Register(f.ctx, nil, &dto.RegisterRequest{
		Name: "Dup", Email: "mina@example.com", Password: "password1", Role: "brand",
	})
	assertCode(t, err, apperrors.CodeAlreadyExists, http.StatusConflict)

	login, err := f.svc.AuthService.Login(f.ctx, nil, &dto.LoginRequest{Email: "mina@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = f.svc.AuthService.Login(f.ctx, nil, &dto.LoginRequest{Email: "mina@example.com", Password: "wrong"})
	assertCode(t, err, apperrors.CodeAuthFailed, http.StatusUnauthorized)

	me, err := f.svc.AuthService.Me(f.ctx, nil, auth.Actor{ID: resp.User.ID, Role: models.UserRoleShowhost})
	require.NoError(t, err)
	assert.Equal(t, "Mina", me.Name)
}

func TestAuth_RegisterRejectsAdmin(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AuthService.Register(f.ctx, nil, &dto.RegisterRequest{
		Name: "Eve", Email: "eve@example.com", Password: "password1", Role: "admin",
	})
	assertCode(t, err, apperrors.CodeValidationFailed, http.StatusUnprocessableEntity)
}

func TestAuth_EnsureAdminOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.AuthService.EnsureAdmin(f.ctx, nil, "root@example.com", "password1"))
	require.NoError(t, f.svc.AuthService.EnsureAdmin(f.ctx, nil, "other@example.com", "password1"))

	n, err := f.store.Users().CountByRole(nil, models.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// --- Recruits ---

func TestRecruit_FeeScenarioAndBrandDefault(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	require.NoError(t, f.store.BrandProfiles().Upsert(nil, &models.BrandProfile{UserID: brand.ID, CompanyName: "Acme"}))

	r := f.recruit(t, brand, "published")
	require.NotNil(t, r.Fee.Value)
	assert.Equal(t, 50000.0, *r.Fee.Value)
	assert.False(t, r.Fee.Negotiable)
	assert.Equal(t, "Acme", r.BrandName)
	assert.Equal(t, "draft", f.recruit(t, brand, "").Status)
	assert.Contains(t, r.ThumbnailURL, "/upload/c_fill,w_640,h_360,f_auto,q_auto/")
}

func TestRecruit_PayOnlyIsCopiedToFee(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	pay := 700.0

	r, err := f.svc.RecruitService.CreateRecruit(f.ctx, nil, brand, &dto.CreateRecruitRequest{
		Title: "Pay only", Recruit: &dto.RecruitDetailsInput{Pay: &pay},
	})
	require.NoError(t, err)
	require.NotNil(t, r.Fee.Value)
	assert.Equal(t, 700.0, *r.Fee.Value)

	stored, err := f.store.Recruits().FindByID(nil, r.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Fee)
	assert.Equal(t, 700.0, *stored.Fee)
}

func TestRecruit_UpdatedFlagBeatsLegacy(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	imported := &models.Recruit{Title: "Imported", Status: models.RecruitStatusPublished, CreatedBy: brand.ID}
	imported.LegacyDoc = datatypes.JSON(`{"feeNegotiable":true,"pay":30000}`)
	require.NoError(t, f.store.Recruits().Create(nil, imported))

	before, err := f.svc.RecruitService.GetRecruit(f.ctx, nil, brand, imported.ID)
	require.NoError(t, err)
	assert.True(t, before.Fee.Negotiable)
	assert.Nil(t, before.Fee.Value)

	fee := 50000.0
	no := false
	after, err := f.svc.RecruitService.UpdateRecruit(f.ctx, nil, brand, imported.ID, &dto.UpdateRecruitRequest{Fee: &fee, FeeNegotiable: &no})
	require.NoError(t, err)
	assert.False(t, after.Fee.Negotiable)
	require.NotNil(t, after.Fee.Value)
	assert.Equal(t, 50000.0, *after.Fee.Value)
}

func TestRecruit_OwnershipOnEdit(t *testing.T) {
	f := newFixture(t)
	b1 := f.user(t, "b1@example.com", models.UserRoleBrand)
	b2 := f.user(t, "b2@example.com", models.UserRoleBrand)
	admin := f.user(t, "admin@example.com", models.UserRoleAdmin)
	r := f.recruit(t, b2, "published")
	title := "Renamed"

	_, err := f.svc.RecruitService.UpdateRecruit(f.ctx, nil, b1, r.ID, &dto.UpdateRecruitRequest{Title: &title})
	assertCode(t, err, apperrors.CodeForbiddenEdit, http.StatusForbidden)
	assertCode(t, f.svc.RecruitService.DeleteRecruit(f.ctx, nil, b1, r.ID), apperrors.CodeForbiddenEdit, http.StatusForbidden)

	updated, err := f.svc.RecruitService.UpdateRecruit(f.ctx, nil, b2, r.ID, &dto.UpdateRecruitRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = f.svc.RecruitService.UpdateRecruit(f.ctx, nil, admin, r.ID, &dto.UpdateRecruitRequest{Title: &title})
	require.NoError(t, err)
	require.NoError(t, f.svc.RecruitService.DeleteRecruit(f.ctx, nil, admin, r.ID))
}

func TestRecruit_DraftHiddenAndViewsTracked(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	draft := f.recruit(t, brand, "draft")
	live := f.recruit(t, brand, "published")

	_, err := f.svc.RecruitService.GetRecruit(f.ctx, nil, host, draft.ID)
	assertCode(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = f.svc.RecruitService.GetRecruit(f.ctx, nil, brand, draft.ID)
	require.NoError(t, err)

	_, err = f.svc.RecruitService.GetRecruit(f.ctx, nil, auth.Actor{}, live.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"recruit:" + live.ID + ":view"}, f.tracker.events)

	page, err := f.svc.RecruitService.ListPublished(f.ctx, nil, dto.RecruitFilter{}, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 20, page.Limit)

	mine, err := f.svc.RecruitService.ListMine(f.ctx, nil, brand, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.Total)
}

func TestRecruit_ShowhostCannotCreate(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	_, err := f.svc.RecruitService.CreateRecruit(f.ctx, nil, host, &dto.CreateRecruitRequest{Title: "nope"})
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}

// --- Portfolios ---

func TestPortfolio_PublishGate(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)

	cases := []struct {
		name string
		req  dto.CreatePortfolioRequest
		ok   bool
	}{
		{"complete", dto.CreatePortfolioRequest{Nickname: "a", Headline: "b", MainThumbnailURL: "https://x/y.jpg", Status: "published"}, true},
		{"no nickname", dto.CreatePortfolioRequest{Headline: "b", MainThumbnailURL: "https://x/y.jpg", Status: "published", Bio: "long bio"}, false},
		{"no headline", dto.CreatePortfolioRequest{Nickname: "a", MainThumbnailURL: "https://x/y.jpg", Status: "published"}, false},
		{"no thumbnail", dto.CreatePortfolioRequest{Nickname: "a", Headline: "b", Status: "published"}, false},
		{"draft skips gate", dto.CreatePortfolioRequest{Status: "draft"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := f.svc.PortfolioService.CreatePortfolio(f.ctx, nil, host, &req)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assertCode(t, err, apperrors.CodeValidationFailed, http.StatusUnprocessableEntity)
		})
	}
}

func TestPortfolio_UpdateGateAndForeignIs404(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	other := f.user(t, "other@example.com", models.UserRoleShowhost)
	p := f.publishedPortfolio(t, host)
	empty := ""

	_, err := f.svc.PortfolioService.UpdatePortfolio(f.ctx, nil, host, p.ID, &dto.UpdatePortfolioRequest{Headline: &empty})
	assertCode(t, err, apperrors.CodeValidationFailed, http.StatusUnprocessableEntity)

	_, err = f.svc.PortfolioService.UpdatePortfolio(f.ctx, nil, other, p.ID, &dto.UpdatePortfolioRequest{})
	assertCode(t, err, apperrors.CodeNotFound, http.StatusNotFound)
	assertCode(t, f.svc.PortfolioService.DeletePortfolio(f.ctx, nil, other, p.ID), apperrors.CodeNotFound, http.StatusNotFound)
}

func TestPortfolio_PublishWithLegacyThumbnail(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	imported := &models.Portfolio{Nickname: "mina", Headline: "beauty host", Status: models.PortfolioStatusDraft, Visibility: models.VisibilityPublic, CreatedBy: host.ID}
	imported.LegacyDoc = datatypes.JSON(`{"mainThumbnail":"https://img/main.jpg"}`)
	require.NoError(t, f.store.Portfolios().Create(nil, imported))

	got, err := f.svc.PortfolioService.GetPortfolio(f.ctx, nil, host, imported.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img/main.jpg", got.MainThumbnailURL)

	published := "published"
	out, err := f.svc.PortfolioService.UpdatePortfolio(f.ctx, nil, host, imported.ID, &dto.UpdatePortfolioRequest{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, "published", out.Status)
	assert.Equal(t, "https://img/main.jpg", out.MainThumbnailURL)

	noHeadline := &models.Portfolio{Nickname: "old", Status: models.PortfolioStatusDraft, CreatedBy: host.ID}
	noHeadline.LegacyDoc = datatypes.JSON(`{"mainThumbnail":"https://img/main.jpg"}`)
	require.NoError(t, f.store.Portfolios().Create(nil, noHeadline))
	_, err = f.svc.PortfolioService.UpdatePortfolio(f.ctx, nil, host, noHeadline.ID, &dto.UpdatePortfolioRequest{Status: &published})
	assertCode(t, err, apperrors.CodeValidationFailed, http.StatusUnprocessableEntity)
}

func TestPortfolio_PrivateVisibleToOwnerOnly(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	p, err := f.svc.PortfolioService.CreatePortfolio(f.ctx, nil, host, &dto.CreatePortfolioRequest{
		Nickname: "a", Headline: "b", MainThumbnailURL: "https://x/y.jpg", Status: "published",
		Visibility: "private", Tags: []string{" Beauty ", "beauty", "food"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"beauty", "food"}, p.Tags)

	_, err = f.svc.PortfolioService.GetPortfolio(f.ctx, nil, auth.Actor{}, p.ID)
	assertCode(t, err, apperrors.CodeNotFound, http.StatusNotFound)
	_, err = f.svc.PortfolioService.GetPortfolio(f.ctx, nil, host, p.ID)
	require.NoError(t, err)

	page, err := f.svc.PortfolioService.ListPublic(f.ctx, nil, "", dto.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

// --- Applications ---

func TestApplication_ApplyTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	r := f.recruit(t, brand, "published")
	p := f.publishedPortfolio(t, host)
	req := &dto.CreateApplicationRequest{RecruitID: r.ID, PortfolioID: p.ID}

	app, err := f.svc.ApplicationService.Apply(f.ctx, nil, host, req)
	require.NoError(t, err)
	assert.Equal(t, "submitted", app.Status)

	_, err = f.svc.ApplicationService.Apply(f.ctx, nil, host, req)
	assertCode(t, err, apperrors.CodeAlreadyApplied, http.StatusConflict)

	f.svc.NotificationService.Wait()
	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"brand@example.com"}, sent[0].To)
	assert.Equal(t, email.TemplateApplicationSubmitted, sent[0].Template)
}

func TestApplication_ForeignPortfolioForbidden(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	other := f.user(t, "other@example.com", models.UserRoleShowhost)
	r := f.recruit(t, brand, "published")
	p := f.publishedPortfolio(t, other)

	_, err := f.svc.ApplicationService.Apply(f.ctx, nil, host, &dto.CreateApplicationRequest{RecruitID: r.ID, PortfolioID: p.ID})
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	_, err = f.svc.ApplicationService.Apply(f.ctx, nil, brand, &dto.CreateApplicationRequest{RecruitID: r.ID, PortfolioID: p.ID})
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}

func TestApplication_StatusAndListing(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	stranger := f.user(t, "x@example.com", models.UserRoleBrand)
	r := f.recruit(t, brand, "published")
	p := f.publishedPortfolio(t, host)
	app, err := f.svc.ApplicationService.Apply(f.ctx, nil, host, &dto.CreateApplicationRequest{RecruitID: r.ID, PortfolioID: p.ID})
	require.NoError(t, err)

	_, err = f.svc.ApplicationService.UpdateStatus(f.ctx, nil, host, app.ID, models.ApplicationStatusAccepted)
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	got, err := f.svc.ApplicationService.UpdateStatus(f.ctx, nil, brand, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, "accepted", got.Status)

	_, err = f.svc.ApplicationService.UpdateStatus(f.ctx, nil, brand, app.ID, models.ApplicationStatusPending)
	assertCode(t, err, apperrors.CodeInvalidStatus, http.StatusConflict)

	mine, err := f.svc.ApplicationService.ListApplications(f.ctx, nil, host, dto.ApplicationListQuery{Mine: true}, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)

	_, err = f.svc.ApplicationService.ListApplications(f.ctx, nil, stranger, dto.ApplicationListQuery{RecruitID: r.ID}, dto.ListQuery{})
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	_, err = f.svc.ApplicationService.ListApplications(f.ctx, nil, host, dto.ApplicationListQuery{}, dto.ListQuery{})
	assertCode(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)

	_, err = f.svc.ApplicationService.GetApplication(f.ctx, nil, brand, app.ID)
	require.NoError(t, err)
	_, err = f.svc.ApplicationService.GetApplication(f.ctx, nil, stranger, app.ID)
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}

// --- Offers ---

func TestOffer_NegotiableMasksFee(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	p := f.publishedPortfolio(t, host)
	fee := 100000.0

	o, err := f.svc.OfferService.CreateOffer(f.ctx, nil, brand, &dto.CreateOfferRequest{
		ToPortfolioID: p.ID, Fee: &fee, FeeNegotiable: true,
	})
	require.NoError(t, err)
	assert.Nil(t, o.Fee.Value)
	assert.True(t, o.Fee.Negotiable)
	assert.Equal(t, host.ID, o.ToUser)
	assert.Equal(t, "pending", o.Status)
}

func TestOffer_OwnPortfolioRejected(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin@example.com", models.UserRoleAdmin)
	p := f.publishedPortfolio(t, admin)

	_, err := f.svc.OfferService.CreateOffer(f.ctx, nil, admin, &dto.CreateOfferRequest{ToPortfolioID: p.ID})
	assertCode(t, err, apperrors.CodeInvalidOperation, http.StatusBadRequest)
}

func TestOffer_Transitions(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	stranger := f.user(t, "x@example.com", models.UserRoleBrand)
	p := f.publishedPortfolio(t, host)
	o, err := f.svc.OfferService.CreateOffer(f.ctx, nil, brand, &dto.CreateOfferRequest{ToPortfolioID: p.ID})
	require.NoError(t, err)

	_, err = f.svc.OfferService.GetOffer(f.ctx, nil, stranger, o.ID)
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	_, err = f.svc.OfferService.UpdateStatus(f.ctx, nil, brand, o.ID, &dto.OfferStatusRequest{Status: "accepted"})
	assertCode(t, err, apperrors.CodeForbiddenTransition, http.StatusForbidden)

	held, err := f.svc.OfferService.UpdateStatus(f.ctx, nil, host, o.ID, &dto.OfferStatusRequest{Status: "on_hold", ResponseMessage: "thinking"})
	require.NoError(t, err)
	assert.Equal(t, "on_hold", held.Status)
	assert.Equal(t, "thinking", held.ResponseMessage)
	assert.NotEmpty(t, held.RespondedAt)

	accepted, err := f.svc.OfferService.UpdateStatus(f.ctx, nil, host, o.ID, &dto.OfferStatusRequest{Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", accepted.Status)

	_, err = f.svc.OfferService.UpdateStatus(f.ctx, nil, brand, o.ID, &dto.OfferStatusRequest{Status: "withdrawn"})
	assertCode(t, err, apperrors.CodeForbiddenTransition, http.StatusForbidden)

	sent, err := f.svc.OfferService.ListOffers(f.ctx, nil, brand, BoxSent, "", dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sent.Total)
	received, err := f.svc.OfferService.ListOffers(f.ctx, nil, brand, BoxReceived, "", dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), received.Total)
	_, err = f.svc.OfferService.ListOffers(f.ctx, nil, brand, "outbox", "", dto.ListQuery{})
	assertCode(t, err, apperrors.CodeBadRequest, http.StatusBadRequest)
}

func TestProposal_CancelAndHoldAliases(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	p := f.publishedPortfolio(t, host)

	first, err := f.svc.ProposalService.CreateProposal(f.ctx, nil, brand, &dto.CreateProposalRequest{TargetPortfolioID: p.ID})
	require.NoError(t, err)
	canceled, err := f.svc.ProposalService.UpdateStatus(f.ctx, nil, brand, first.ID, &dto.ProposalStatusRequest{Status: "canceled"})
	require.NoError(t, err)
	assert.Equal(t, "canceled", canceled.Status)

	second, err := f.svc.ProposalService.CreateProposal(f.ctx, nil, brand, &dto.CreateProposalRequest{TargetPortfolioID: p.ID})
	require.NoError(t, err)
	held, err := f.svc.ProposalService.UpdateStatus(f.ctx, nil, host, second.ID, &dto.ProposalStatusRequest{Status: "hold"})
	require.NoError(t, err)
	assert.Equal(t, "hold", held.Status)

	_, err = f.svc.ProposalService.UpdateStatus(f.ctx, nil, brand, second.ID, &dto.ProposalStatusRequest{Status: "withdrawn"})
	assertCode(t, err, apperrors.CodeForbiddenTransition, http.StatusForbidden)
}

// --- Sponsorships ---

func TestSponsorship_RewardModesExclusive(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	fee := 10.0

	_, err := f.svc.SponsorshipService.CreateSponsorship(f.ctx, nil, brand, &dto.CreateSponsorshipRequest{
		Title: "Box", Type: "delivery_keep", Fee: &fee, ProductOnly: true,
	})
	assertCode(t, err, apperrors.CodeValidationFailed, http.StatusUnprocessableEntity)

	s, err := f.svc.SponsorshipService.CreateSponsorship(f.ctx, nil, brand, &dto.CreateSponsorshipRequest{
		Title: "Box", Type: "delivery_keep", ProductOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "open", s.Status)

	yes := true
	_, err = f.svc.SponsorshipService.UpdateSponsorship(f.ctx, nil, brand, s.ID, &dto.UpdateSponsorshipRequest{Fee: &fee, ProductOnly: &yes})
	assertCode(t, err, apperrors.CodeValidationFailed, http.StatusUnprocessableEntity)

	other := f.user(t, "other@example.com", models.UserRoleBrand)
	_, err = f.svc.SponsorshipService.UpdateStatus(f.ctx, nil, other, s.ID, models.SponsorshipStatusClosed)
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)
}

func TestSponsorship_SwitchRewardMode(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	fee := 10.0
	yes := true

	s, err := f.svc.SponsorshipService.CreateSponsorship(f.ctx, nil, brand, &dto.CreateSponsorshipRequest{
		Title: "Box", Type: "delivery_keep", Fee: &fee,
	})
	require.NoError(t, err)
	require.NotNil(t, s.Fee.Value)

	out, err := f.svc.SponsorshipService.UpdateSponsorship(f.ctx, nil, brand, s.ID, &dto.UpdateSponsorshipRequest{ProductOnly: &yes})
	require.NoError(t, err)
	assert.True(t, out.ProductOnly)
	assert.Nil(t, out.Fee.Value)
	assert.False(t, out.Fee.Negotiable)

	out, err = f.svc.SponsorshipService.UpdateSponsorship(f.ctx, nil, brand, s.ID, &dto.UpdateSponsorshipRequest{FeeNegotiable: &yes})
	require.NoError(t, err)
	assert.False(t, out.ProductOnly)
	assert.True(t, out.Fee.Negotiable)

	out, err = f.svc.SponsorshipService.UpdateSponsorship(f.ctx, nil, brand, s.ID, &dto.UpdateSponsorshipRequest{Fee: &fee})
	require.NoError(t, err)
	assert.False(t, out.ProductOnly)
	assert.False(t, out.Fee.Negotiable)
	require.NotNil(t, out.Fee.Value)
	assert.Equal(t, 10.0, *out.Fee.Value)
}

func TestSponsorship_Preview(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.SponsorshipService.PreviewProduct(f.ctx, "https://shop.example.com/p/1")
	require.NoError(t, err)
	assert.Equal(t, "Serum", out.Title)
	assert.Contains(t, out.ThumbnailURL, "c_fill,w_640,h_360")

	failing := NewSponsorshipService(f.store.Sponsorships(), f.store.BrandProfiles(), fakePreviewer{err: errors.New("product page returned status 404")})
	_, err = failing.PreviewProduct(f.ctx, "https://shop.example.com/missing")
	assertCode(t, err, apperrors.CodeScrapeFailed, http.StatusBadGateway)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "product page returned status 404", appErr.Message)
}

// --- Content ---

func TestNews_AdminOnlyAndDraftHidden(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin@example.com", models.UserRoleAdmin)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)

	_, err := f.svc.NewsService.CreateNews(f.ctx, nil, brand, &dto.CreateNewsRequest{Title: "Hi", Body: "b"})
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	n, err := f.svc.NewsService.CreateNews(f.ctx, nil, admin, &dto.CreateNewsRequest{Title: "Hi", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, "draft", n.Status)

	_, err = f.svc.NewsService.GetNews(f.ctx, nil, brand, n.ID)
	assertCode(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	public, err := f.svc.NewsService.ListNews(f.ctx, nil, auth.Actor{}, dto.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, public.Items)
}

func TestShort_ProviderInferenceAndOwnership(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)
	other := f.user(t, "other@example.com", models.UserRoleShowhost)

	s, err := f.svc.ShortService.CreateShort(f.ctx, nil, host, &dto.CreateShortRequest{
		Title: "clip", SourceURL: "https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	assert.Equal(t, "youtube", s.Provider)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", s.EmbedURL)

	_, err = f.svc.ShortService.CreateShort(f.ctx, nil, host, &dto.CreateShortRequest{Title: "x", SourceURL: "https://vimeo.com/1"})
	assertCode(t, err, apperrors.CodeValidationFailed, http.StatusUnprocessableEntity)

	assertCode(t, f.svc.ShortService.DeleteShort(f.ctx, nil, other, s.ID), apperrors.CodeForbidden, http.StatusForbidden)
	require.NoError(t, f.svc.ShortService.DeleteShort(f.ctx, nil, host, s.ID))
}

func TestBrandProfile_Upsert(t *testing.T) {
	f := newFixture(t)
	brand := f.user(t, "brand@example.com", models.UserRoleBrand)
	host := f.user(t, "host@example.com", models.UserRoleShowhost)

	_, err := f.svc.BrandProfileService.GetMine(f.ctx, nil, brand)
	assertCode(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = f.svc.BrandProfileService.UpsertMine(f.ctx, nil, host, &dto.BrandProfileRequest{CompanyName: "Nope"})
	assertCode(t, err, apperrors.CodeForbidden, http.StatusForbidden)

	p, err := f.svc.BrandProfileService.UpsertMine(f.ctx, nil, brand, &dto.BrandProfileRequest{CompanyName: "Acme"})
	require.NoError(t, err)
	got, err := f.svc.BrandProfileService.GetByUser(f.ctx, nil, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Acme", got.CompanyName)
}
