package lifecycle

import (
	"testing"

	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

var allOfferStatuses = []models.OfferStatus{
	models.OfferStatusPending, models.OfferStatusOnHold, models.OfferStatusAccepted,
	models.OfferStatusRejected, models.OfferStatusWithdrawn,
}

func TestPartyOf(t *testing.T) {
	assert.Equal(t, PartySender, PartyOf(auth.Actor{ID: "s", Role: models.UserRoleBrand}, "s", "r"))
	assert.Equal(t, PartyRecipient, PartyOf(auth.Actor{ID: "r", Role: models.UserRoleShowhost}, "s", "r"))
	assert.Equal(t, PartyNone, PartyOf(auth.Actor{ID: "x", Role: models.UserRoleBrand}, "s", "r"))
	assert.Equal(t, PartyAdmin, PartyOf(auth.Actor{ID: "x", Role: models.UserRoleAdmin}, "s", "r"))
	assert.Equal(t, PartyNone, PartyOf(auth.Actor{}, "", ""))
}

func TestCheckOfferTransition_FromPending(t *testing.T) {
	recipientAllowed := map[models.OfferStatus]bool{
		models.OfferStatusOnHold:   true,
		models.OfferStatusAccepted: true,
		models.OfferStatusRejected: true,
		models.OfferStatusPending:  true,
	}

	for _, to := range allOfferStatuses {
		t.Run("recipient to "+string(to), func(t *testing.T) {
			d, err := CheckOfferTransition(PartyRecipient, models.OfferStatusPending, to)
			if recipientAllowed[to] {
				assert.NoError(t, err)
				assert.True(t, d.ByRecipient)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbiddenTransition)
			}
		})

		t.Run("sender to "+string(to), func(t *testing.T) {
			d, err := CheckOfferTransition(PartySender, models.OfferStatusPending, to)
			if to == models.OfferStatusWithdrawn {
				assert.NoError(t, err)
				assert.False(t, d.ByRecipient)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbiddenTransition)
			}
		})

		t.Run("outsider to "+string(to), func(t *testing.T) {
			_, err := CheckOfferTransition(PartyNone, models.OfferStatusPending, to)
			assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
		})
	}
}

func TestCheckOfferTransition_FromOnHold(t *testing.T) {
	for _, to := range []models.OfferStatus{models.OfferStatusAccepted, models.OfferStatusRejected, models.OfferStatusPending} {
		_, err := CheckOfferTransition(PartyRecipient, models.OfferStatusOnHold, to)
		assert.NoError(t, err, "on_hold -> %s", to)
	}

	_, err := CheckOfferTransition(PartyRecipient, models.OfferStatusOnHold, models.OfferStatusWithdrawn)
	assert.ErrorIs(t, err, apperrors.ErrForbiddenTransition)

	_, err = CheckOfferTransition(PartySender, models.OfferStatusOnHold, models.OfferStatusWithdrawn)
	assert.ErrorIs(t, err, apperrors.ErrForbiddenTransition, "sender may withdraw only from pending")
}

func TestCheckOfferTransition_TerminalStates(t *testing.T) {
	for _, from := range []models.OfferStatus{models.OfferStatusAccepted, models.OfferStatusRejected, models.OfferStatusWithdrawn} {
		assert.True(t, IsTerminal(from))
		for _, to := range allOfferStatuses {
			for _, party := range []Party{PartySender, PartyRecipient, PartyAdmin} {
				_, err := CheckOfferTransition(party, from, to)
				assert.ErrorIs(t, err, apperrors.ErrForbiddenTransition, "%s -> %s", from, to)
			}
		}
	}
	assert.False(t, IsTerminal(models.OfferStatusPending))
	assert.False(t, IsTerminal(models.OfferStatusOnHold))
}

func TestCheckOfferTransition_AdminHasBothSides(t *testing.T) {
	d, err := CheckOfferTransition(PartyAdmin, models.OfferStatusPending, models.OfferStatusAccepted)
	assert.NoError(t, err)
	assert.True(t, d.ByRecipient)

	d, err = CheckOfferTransition(PartyAdmin, models.OfferStatusPending, models.OfferStatusWithdrawn)
	assert.NoError(t, err)
	assert.False(t, d.ByRecipient)
}

func TestCheckProposalTransition(t *testing.T) {
	_, err := CheckProposalTransition(PartyRecipient, models.ProposalStatusPending, models.ProposalStatusHold)
	assert.NoError(t, err)

	_, err = CheckProposalTransition(PartyRecipient, models.ProposalStatusHold, models.ProposalStatusAccepted)
	assert.NoError(t, err)

	_, err = CheckProposalTransition(PartySender, models.ProposalStatusPending, models.ProposalStatusCanceled)
	assert.NoError(t, err)

	_, err = CheckProposalTransition(PartySender, models.ProposalStatusHold, models.ProposalStatusCanceled)
	assert.ErrorIs(t, err, apperrors.ErrForbiddenTransition)

	_, err = CheckProposalTransition(PartyRecipient, models.ProposalStatusCanceled, models.ProposalStatusPending)
	assert.ErrorIs(t, err, apperrors.ErrForbiddenTransition)

	assert.Equal(t, models.ProposalStatusHold, ToProposalStatus(models.OfferStatusOnHold))
	assert.Equal(t, models.OfferStatusOnHold, ToOfferStatus(models.ProposalStatusHold))
}

func TestCheckApplicationTransition(t *testing.T) {
	ok := [][2]models.ApplicationStatus{
		{models.ApplicationStatusSubmitted, models.ApplicationStatusReviewed},
		{models.ApplicationStatusSubmitted, models.ApplicationStatusAccepted},
		{models.ApplicationStatusSubmitted, models.ApplicationStatusRejected},
		{models.ApplicationStatusSubmitted, models.ApplicationStatusOnHold},
		{models.ApplicationStatusPending, models.ApplicationStatusOnHold},
		{models.ApplicationStatusOnHold, models.ApplicationStatusAccepted},
		{models.ApplicationStatusAccepted, models.ApplicationStatusAccepted},
	}
	for _, c := range ok {
		assert.NoError(t, CheckApplicationTransition(c[0], c[1]), "%s -> %s", c[0], c[1])
	}

	bad := [][2]models.ApplicationStatus{
		{models.ApplicationStatusAccepted, models.ApplicationStatusRejected},
		{models.ApplicationStatusRejected, models.ApplicationStatusReviewed},
		{models.ApplicationStatusReviewed, models.ApplicationStatusSubmitted},
		{models.ApplicationStatusSubmitted, "withdrawn"},
	}
	for _, c := range bad {
		err := CheckApplicationTransition(c[0], c[1])
		appErr, isApp := apperrors.AsAppError(err)
		if assert.True(t, isApp, "%s -> %s", c[0], c[1]) {
			assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
		}
	}
}
