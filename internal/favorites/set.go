package favorites

import (
	"sync"

	"github.com/blackwell-systems/curatorctl/internal/artwork"
)

// ToggleStatus reports what a Toggle did.
type ToggleStatus int

const (
	// Added means the record was persisted as a new favorite.
	Added ToggleStatus = iota
	// Removed means the record was deleted from the favorites.
	Removed
)

func (s ToggleStatus) String() string {
	if s == Added {
		return "added"
	}
	return "removed"
}

// Set answers favorite-membership questions in O(1) during a results render
// and keeps the answer consistent with the backing store across toggles.
// A search-result row and a favorites entry with the same id are the same
// artwork; both render targets consult this one set.
//
// Safe for concurrent use; the store write happens before the in-memory
// mutation, so a failed persist never leaves the set out of sync.
type Set struct {
	mu    sync.Mutex
	user  string
	store *Store
	ids   map[string]struct{}
}

// NewSet loads the favorite ids of user from store.
func NewSet(store *Store, user string) (*Set, error) {
	ids, err := store.IDs(user)
	if err != nil {
		return nil, err
	}
	return &Set{user: user, store: store, ids: ids}, nil
}

// User returns the user this set belongs to.
func (s *Set) User() string { return s.user }

// Len returns the number of favorites.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IsFavorite reports membership for an id in any external representation.
func (s *Set) IsFavorite(id string) bool {
	id = artwork.NormalizeID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Toggle flips the favorite state of rec: present becomes absent, absent
// becomes present. The store is updated first.
func (s *Set) Toggle(rec artwork.Record) (ToggleStatus, error) {
	id := artwork.NormalizeID(rec.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		if err := s.store.Delete(s.user, id); err != nil {
			return Removed, err
		}
		delete(s.ids, id)
		return Removed, nil
	}

	if err := s.store.Put(s.user, rec); err != nil {
		return Added, err
	}
	s.ids[id] = struct{}{}
	return Added, nil
}

// Reload re-reads the id set from the store. Used after an import changes
// the store underneath the set.
func (s *Set) Reload() error {
	ids, err := s.store.IDs(s.user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
	return nil
}
