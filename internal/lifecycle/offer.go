// Package lifecycle - машины состояний для offer, proposal и application.
package lifecycle

import (
	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/models"
	"hostmarket_backend/pkg/apperrors"
)

// Party - роль актора в конкретном предложении
type Party int

const (
	PartyNone Party = iota
	PartySender
	PartyRecipient
	PartyBoth // отправитель и получатель совпадают (legacy данные)
	PartyAdmin
)

// PartyOf определяет, кем актор приходится предложению
func PartyOf(actor auth.Actor, senderID, recipientID string) Party {
	if actor.IsAdmin() {
		return PartyAdmin
	}
	if actor.ID == "" {
		return PartyNone
	}
	isSender := actor.ID == senderID
	isRecipient := actor.ID == recipientID
	switch {
	case isSender && isRecipient:
		return PartyBoth
	case isSender:
		return PartySender
	case isRecipient:
		return PartyRecipient
	}
	return PartyNone
}

func (p Party) actsAsRecipient() bool {
	return p == PartyRecipient || p == PartyBoth || p == PartyAdmin
}

func (p Party) actsAsSender() bool {
	return p == PartySender || p == PartyBoth || p == PartyAdmin
}

var recipientMoves = map[models.OfferStatus][]models.OfferStatus{
	models.OfferStatusPending: {models.OfferStatusOnHold, models.OfferStatusAccepted, models.OfferStatusRejected, models.OfferStatusPending},
	models.OfferStatusOnHold:  {models.OfferStatusAccepted, models.OfferStatusRejected, models.OfferStatusPending},
}

var senderMoves = map[models.OfferStatus][]models.OfferStatus{
	models.OfferStatusPending: {models.OfferStatusWithdrawn},
}

// Decision - результат проверки перехода
type Decision struct {
	// ByRecipient: переход со стороны получателя, нужно проставить respondedAt
	ByRecipient bool
}

// CheckOfferTransition проверяет переход from -> to для данной стороны.
// Не участник: FORBIDDEN. Участник с недопустимым переходом: FORBIDDEN_TRANSITION.
func CheckOfferTransition(party Party, from, to models.OfferStatus) (Decision, error) {
	if party == PartyNone {
		return Decision{}, apperrors.ErrInsufficientPermissions
	}
	if party.actsAsRecipient() && allowed(recipientMoves, from, to) {
		return Decision{ByRecipient: true}, nil
	}
	if party.actsAsSender() && allowed(senderMoves, from, to) {
		return Decision{}, nil
	}
	return Decision{}, apperrors.ErrForbiddenTransition
}

// IsTerminal - из статуса нет переходов
func IsTerminal(s models.OfferStatus) bool {
	return len(recipientMoves[s]) == 0 && len(senderMoves[s]) == 0
}

func allowed(moves map[models.OfferStatus][]models.OfferStatus, from, to models.OfferStatus) bool {
	for _, s := range moves[from] {
		if s == to {
			return true
		}
	}
	return false
}
