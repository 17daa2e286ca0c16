package session

import (
	"sync"

	"github.com/sdeshpande/CivicDesk/internal/models"
)

// RoleContext is the process-wide cell holding the active role. It is
// seeded from the Store at startup and mutated only through SetRole.
type RoleContext struct {
	mu   sync.RWMutex
	role models.Role
	subs []func(models.Role)
}

// NewRoleContext returns a context seeded from the persisted session.
// With no persisted session the initial role is guest.
func NewRoleContext(st *Store) *RoleContext {
	role := models.RoleGuest
	if sess := st.Session(); sess != nil {
		role = sess.Role
	}
	return &RoleContext{role: role}
}

// Role returns the active role.
func (c *RoleContext) Role() models.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.role
}

// SetRole stores the new role and notifies every subscriber synchronously,
// in subscription order. Subscribers observe the new role before SetRole
// returns.
func (c *RoleContext) SetRole(role models.Role) {
	c.mu.Lock()
	c.role = role
	subs := make([]func(models.Role), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(role)
	}
}

// Subscribe registers fn to be called on every role change. Notification
// is in-process only.
func (c *RoleContext) Subscribe(fn func(models.Role)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}
