// Package session keeps track of who is signed in: a durable key-value
// store for the persisted session and an in-memory role cell the rest of
// the client observes.
package session

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/sdeshpande/CivicDesk/internal/models"
	"go.uber.org/zap"
)

// Persisted session keys. They are written and cleared together.
const (
	keyAdminID  = "admin_ID"
	keyOffice   = "office"
	keyUserRole = "userRole"
)

// Store persists session values in a local JSON file. All writes replace
// the whole file, so the three session keys change atomically with respect
// to a restart.
type Store struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// Open loads the store at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&s.values); err != nil {
		// A corrupt session file is treated as no session.
		s.values = make(map[string]string)
	}
	return s, nil
}

func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(s.values)
}

// Session returns the persisted session, or nil if none is stored.
// A record without an admin_ID counts as no session.
func (s *Store) Session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.values[keyAdminID]
	if !ok || id == "" {
		return nil
	}
	return &models.Session{
		Role:       models.ParseRole(s.values[keyUserRole]),
		OfficeID:   s.values[keyOffice],
		IdentityID: id,
	}
}

// SaveSession writes the session to disk. The in-memory map is only
// updated after the write succeeds, so a failed save leaves the store in
// its previous state.
func (s *Store) SaveSession(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.values
	s.values = map[string]string{
		keyAdminID:  sess.IdentityID,
		keyOffice:   sess.OfficeID,
		keyUserRole: string(sess.Role),
	}
	if err := s.save(); err != nil {
		s.values = prev
		return err
	}
	return nil
}

// Clear removes every session key in a single write.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return s.save()
}

// Logout clears the persisted session and drops the active role back to
// guest. A failed clear is logged and the role still drops: on the next
// start the absent admin_ID yields guest anyway.
func Logout(st *Store, roles *RoleContext, log *zap.Logger) {
	if err := st.Clear(); err != nil {
		log.Warn("failed to clear persisted session", zap.Error(err))
	}
	roles.SetRole(models.RoleGuest)
}
