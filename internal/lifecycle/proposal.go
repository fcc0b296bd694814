package lifecycle

import "hostmarket_backend/internal/models"

// ToOfferStatus переводит статус Proposal в словарь Offer: hold -> on_hold, canceled -> withdrawn
func ToOfferStatus(s models.ProposalStatus) models.OfferStatus {
	switch s {
	case models.ProposalStatusHold:
		return models.OfferStatusOnHold
	case models.ProposalStatusCanceled:
		return models.OfferStatusWithdrawn
	}
	return models.OfferStatus(s)
}

// ToProposalStatus - обратное преобразование. withdrawn остается withdrawn.
func ToProposalStatus(s models.OfferStatus) models.ProposalStatus {
	if s == models.OfferStatusOnHold {
		return models.ProposalStatusHold
	}
	return models.ProposalStatus(s)
}

// CheckProposalTransition - та же машина состояний, что у Offer.
// Запрошенный статус (canceled или withdrawn) сохраняется как есть.
func CheckProposalTransition(party Party, from, to models.ProposalStatus) (Decision, error) {
	return CheckOfferTransition(party, ToOfferStatus(from), ToOfferStatus(to))
}
