package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"hostmarket_backend/internal/models"
)

// ruleMessages - тексты ошибок для кастомных правил
var ruleMessages = map[string]string{
	"is-user-role":          "Must be one of: brand, showhost, host, model",
	"is-recruit-status":     "Must be one of: draft, scheduled, published, closed",
	"is-portfolio-status":   "Must be one of: draft, published",
	"is-visibility":         "Must be one of: public, unlisted, private",
	"is-application-status": "Must be one of: submitted, pending, reviewed, accepted, rejected, on_hold",
	"is-offer-status":       "Must be one of: pending, on_hold, accepted, rejected, withdrawn",
	"is-proposal-status":    "Must be one of: pending, accepted, rejected, canceled, withdrawn, hold",
	"is-sponsorship-type":   "Must be one of: delivery_keep, delivery_return, experience_review",
	"is-sponsorship-status": "Must be one of: open, in_progress, closed, completed",
	"is-publish-status":     "Must be one of: draft, published",
	"is-short-provider":     "Must be one of: youtube, instagram, tiktok",
}

// registerCustomRules регистрирует правила для перечислений из models/statuses.go
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// admin через регистрацию не выдается, только сидом
	mustRegister("is-user-role", enum(func(s string) bool {
		r := models.UserRole(s)
		return r.Valid() && r != models.UserRoleAdmin
	}))
	mustRegister("is-recruit-status", enum(func(s string) bool { return models.RecruitStatus(s).Valid() }))
	mustRegister("is-portfolio-status", enum(func(s string) bool { return models.PortfolioStatus(s).Valid() }))
	mustRegister("is-visibility", enum(func(s string) bool { return models.Visibility(s).Valid() }))
	mustRegister("is-application-status", enum(func(s string) bool { return models.ApplicationStatus(s).Valid() }))
	mustRegister("is-offer-status", enum(func(s string) bool { return models.OfferStatus(s).Valid() }))
	mustRegister("is-proposal-status", enum(func(s string) bool { return models.ProposalStatus(s).Valid() }))
	mustRegister("is-sponsorship-type", enum(func(s string) bool { return models.SponsorshipType(s).Valid() }))
	mustRegister("is-sponsorship-status", enum(func(s string) bool { return models.SponsorshipStatus(s).Valid() }))
	mustRegister("is-publish-status", enum(func(s string) bool { return models.PublishStatus(s).Valid() }))
	mustRegister("is-short-provider", enum(func(s string) bool { return models.ShortProvider(s).Valid() }))
}

// enum: пустое значение пропускается, для этого есть 'required'
func enum(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
