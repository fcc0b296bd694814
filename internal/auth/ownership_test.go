package auth

import (
	"testing"

	"hostmarket_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAct(t *testing.T) {
	owner := Actor{ID: "u1", Role: models.UserRoleBrand}
	other := Actor{ID: "u2", Role: models.UserRoleBrand}
	admin := Actor{ID: "a1", Role: models.UserRoleAdmin}
	anonymous := Actor{}

	assert.True(t, CanAct(owner, "u1"))
	assert.False(t, CanAct(other, "u1"))
	assert.True(t, CanAct(admin, "u1"))
	assert.True(t, CanAct(admin))
	assert.False(t, CanAct(anonymous, ""))
	assert.False(t, CanAct(other, "", "u1"))
	assert.True(t, CanAct(other, "u1", "u2"))
}

func TestOwnerOf_FallsBackThroughLegacyAliases(t *testing.T) {
	tests := []struct {
		name   string
		legacy string
		canon  string
		want   string
	}{
		{name: "canonical wins", canon: "c1", legacy: `{"ownerId":"o1"}`, want: "c1"},
		{name: "ownerId", legacy: `{"ownerId":"o1","userId":"x"}`, want: "o1"},
		{name: "userId", legacy: `{"userId":"u1"}`, want: "u1"},
		{name: "nested brand owner", legacy: `{"brand":{"ownerId":"b1"}}`, want: "b1"},
		{name: "empty values skipped", legacy: `{"ownerId":"","userId":"u9"}`, want: "u9"},
		{name: "nothing", legacy: `{}`, want: ""},
		{name: "malformed legacy", legacy: `{not json`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Recruit{CreatedBy: tt.canon}
			r.LegacyDoc = []byte(tt.legacy)
			assert.Equal(t, tt.want, OwnerOf(r))
		})
	}
}

func TestCanActOn_LegacyOwner(t *testing.T) {
	p := &models.Portfolio{}
	p.LegacyDoc = []byte(`{"userId":"u1"}`)

	assert.True(t, CanActOn(Actor{ID: "u1", Role: models.UserRoleShowhost}, p))
	assert.False(t, CanActOn(Actor{ID: "u2", Role: models.UserRoleShowhost}, p))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleHost, PermApplicationCreate))
	assert.True(t, HasPermission(models.UserRoleShowhost, PermApplicationCreate))
	assert.False(t, HasPermission(models.UserRoleBrand, PermApplicationCreate))
	assert.False(t, HasPermission(models.UserRoleModel, PermApplicationCreate))
	assert.True(t, HasPermission(models.UserRoleAdmin, PermNewsWrite))
	assert.False(t, HasPermission(models.UserRoleBrand, PermNewsWrite))

	assert.ElementsMatch(t,
		[]models.UserRole{models.UserRoleAdmin, models.UserRoleShowhost, models.UserRoleHost},
		RolesWith(PermApplicationCreate))
	assert.False(t, CanRegisterAs(models.UserRoleAdmin))
	assert.True(t, CanRegisterAs(models.UserRoleHost))
}
