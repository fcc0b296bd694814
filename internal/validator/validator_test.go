package validator

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostmarket_backend/internal/services/dto"
)

func TestValidate_UsesJSONPaths(t *testing.T) {
	v := New()
	neg := -1.0

	err := v.Validate(&dto.CreateRecruitRequest{
		Title:   "",
		Status:  "archived",
		Recruit: &dto.RecruitDetailsInput{Pay: &neg},
	})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "title")
	assert.Contains(t, ve.Errors, "status")
	assert.Contains(t, ve.Errors, "recruit.pay")
	assert.Equal(t, "Must be one of: draft, scheduled, published, closed", ve.Errors["status"])
}

func TestValidate_DetailsSorted(t *testing.T) {
	ve := &ValidationError{Errors: map[string]string{"b": "x", "a": "y"}}

	details := ve.Details()
	require.Len(t, details, 2)
	assert.Equal(t, "a", details[0].Field)
	assert.Equal(t, http.StatusUnprocessableEntity, ve.AppError().HTTPCode)
}

func TestCustomRules(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input interface{}
		ok    bool
	}{
		{"host alias role", &dto.RegisterRequest{Name: "Mina", Email: "m@x.io", Password: "password1", Role: "host"}, true},
		{"admin signup rejected", &dto.RegisterRequest{Name: "Root", Email: "r@x.io", Password: "password1", Role: "admin"}, false},
		{"pending application alias", &dto.ApplicationStatusRequest{Status: "pending"}, true},
		{"bad offer status", &dto.OfferStatusRequest{Status: "hold"}, false},
		{"legacy proposal hold", &dto.ProposalStatusRequest{Status: "hold"}, true},
		{"sponsorship type", &dto.CreateSponsorshipRequest{Title: "Box", Type: "delivery_keep"}, true},
		{"unknown provider", &dto.CreateShortRequest{Title: "c", SourceURL: "https://vimeo.com/1", Provider: "vimeo"}, false},
		{"empty optional enum", &dto.CreatePortfolioRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
