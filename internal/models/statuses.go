package models

type UserRole string
type RecruitStatus string
type PortfolioStatus string
type Visibility string
type ApplicationStatus string
type OfferStatus string
type ProposalStatus string
type SponsorshipType string
type SponsorshipStatus string
type PublishStatus string
type ShortProvider string

const (
	UserRoleBrand    UserRole = "brand"
	UserRoleShowhost UserRole = "showhost"
	UserRoleHost     UserRole = "host" // старое имя showhost
	UserRoleModel    UserRole = "model"
	UserRoleAdmin    UserRole = "admin"

	RecruitStatusDraft     RecruitStatus = "draft"
	RecruitStatusScheduled RecruitStatus = "scheduled"
	RecruitStatusPublished RecruitStatus = "published"
	RecruitStatusClosed    RecruitStatus = "closed"

	PortfolioStatusDraft     PortfolioStatus = "draft"
	PortfolioStatusPublished PortfolioStatus = "published"

	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"

	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusPending   ApplicationStatus = "pending" // входной алиас submitted
	ApplicationStatusReviewed  ApplicationStatus = "reviewed"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusOnHold    ApplicationStatus = "on_hold"

	OfferStatusPending   OfferStatus = "pending"
	OfferStatusOnHold    OfferStatus = "on_hold"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusWithdrawn OfferStatus = "withdrawn"

	ProposalStatusPending   ProposalStatus = "pending"
	ProposalStatusAccepted  ProposalStatus = "accepted"
	ProposalStatusRejected  ProposalStatus = "rejected"
	ProposalStatusCanceled  ProposalStatus = "canceled"
	ProposalStatusWithdrawn ProposalStatus = "withdrawn"
	ProposalStatusHold      ProposalStatus = "hold"

	SponsorshipTypeDeliveryKeep     SponsorshipType = "delivery_keep"
	SponsorshipTypeDeliveryReturn   SponsorshipType = "delivery_return"
	SponsorshipTypeExperienceReview SponsorshipType = "experience_review"

	SponsorshipStatusOpen       SponsorshipStatus = "open"
	SponsorshipStatusInProgress SponsorshipStatus = "in_progress"
	SponsorshipStatusClosed     SponsorshipStatus = "closed"
	SponsorshipStatusCompleted  SponsorshipStatus = "completed"

	PublishStatusDraft     PublishStatus = "draft"
	PublishStatusPublished PublishStatus = "published"

	ShortProviderYouTube   ShortProvider = "youtube"
	ShortProviderInstagram ShortProvider = "instagram"
	ShortProviderTikTok    ShortProvider = "tiktok"
)

// Canonical сводит host к showhost
func (r UserRole) Canonical() UserRole {
	if r == UserRoleHost {
		return UserRoleShowhost
	}
	return r
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleBrand, UserRoleShowhost, UserRoleHost, UserRoleModel, UserRoleAdmin:
		return true
	}
	return false
}

func (s RecruitStatus) Valid() bool {
	switch s {
	case RecruitStatusDraft, RecruitStatusScheduled, RecruitStatusPublished, RecruitStatusClosed:
		return true
	}
	return false
}

func (s PortfolioStatus) Valid() bool {
	return s == PortfolioStatusDraft || s == PortfolioStatusPublished
}

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

// Canonical сводит pending к submitted
func (s ApplicationStatus) Canonical() ApplicationStatus {
	if s == ApplicationStatusPending {
		return ApplicationStatusSubmitted
	}
	return s
}

func (s ApplicationStatus) Valid() bool {
	switch s.Canonical() {
	case ApplicationStatusSubmitted, ApplicationStatusReviewed, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusOnHold:
		return true
	}
	return false
}

func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusPending, OfferStatusOnHold, OfferStatusAccepted, OfferStatusRejected, OfferStatusWithdrawn:
		return true
	}
	return false
}

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected,
		ProposalStatusCanceled, ProposalStatusWithdrawn, ProposalStatusHold:
		return true
	}
	return false
}

func (t SponsorshipType) Valid() bool {
	switch t {
	case SponsorshipTypeDeliveryKeep, SponsorshipTypeDeliveryReturn, SponsorshipTypeExperienceReview:
		return true
	}
	return false
}

func (s SponsorshipStatus) Valid() bool {
	switch s {
	case SponsorshipStatusOpen, SponsorshipStatusInProgress, SponsorshipStatusClosed, SponsorshipStatusCompleted:
		return true
	}
	return false
}

func (s PublishStatus) Valid() bool {
	return s == PublishStatusDraft || s == PublishStatusPublished
}

func (p ShortProvider) Valid() bool {
	switch p {
	case ShortProviderYouTube, ShortProviderInstagram, ShortProviderTikTok:
		return true
	}
	return false
}
