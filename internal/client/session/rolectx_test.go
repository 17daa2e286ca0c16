package session

import (
	"testing"

	"github.com/sdeshpande/CivicDesk/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRoleContext_FreshProcessIsGuest(t *testing.T) {
	st := tempStore(t)
	roles := NewRoleContext(st)
	assert.Equal(t, models.RoleGuest, roles.Role())
}

func TestNewRoleContext_SeededFromStore(t *testing.T) {
	st := tempStore(t)
	if err := st.SaveSession(models.Session{
		Role: models.RoleFrontOffice, OfficeID: "o", IdentityID: "3",
	}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	roles := NewRoleContext(st)
	assert.Equal(t, models.RoleFrontOffice, roles.Role())
}

func TestSetRole_NotifiesSubscribersSynchronously(t *testing.T) {
	roles := NewRoleContext(tempStore(t))

	var seen []models.Role
	roles.Subscribe(func(r models.Role) { seen = append(seen, r) })
	roles.Subscribe(func(r models.Role) {
		// The cell already holds the new role when subscribers run.
		assert.Equal(t, r, roles.Role())
	})

	roles.SetRole(models.RoleAdmin)
	roles.SetRole(models.RoleGuest)

	assert.Equal(t, []models.Role{models.RoleAdmin, models.RoleGuest}, seen)
}
