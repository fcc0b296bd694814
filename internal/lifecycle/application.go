package lifecycle

import (
	"hostmarket_backend/internal/models"
	"hostmarket_backend/pkg/apperrors"
)

var applicationMoves = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationStatusSubmitted: {
		models.ApplicationStatusReviewed, models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected, models.ApplicationStatusOnHold,
	},
	models.ApplicationStatusReviewed: {
		models.ApplicationStatusAccepted, models.ApplicationStatusRejected, models.ApplicationStatusOnHold,
	},
	models.ApplicationStatusOnHold: {
		models.ApplicationStatusReviewed, models.ApplicationStatusAccepted, models.ApplicationStatusRejected,
	},
}

// CheckApplicationTransition: accepted/rejected терминальные, вернуться в submitted нельзя.
// Повтор текущего статуса - no-op.
func CheckApplicationTransition(from, to models.ApplicationStatus) error {
	from, to = from.Canonical(), to.Canonical()
	if !to.Valid() {
		return apperrors.ErrInvalidStatus("application", "Unknown application status: "+string(to))
	}
	if from == to {
		return nil
	}
	for _, s := range applicationMoves[from] {
		if s == to {
			return nil
		}
	}
	return apperrors.ErrInvalidStatus("application", "Cannot move application from "+string(from)+" to "+string(to))
}
