// Package favorites tracks which recipes the user has liked.
package favorites

import (
	"fmt"
	"sync"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Store is an ordered set of favorite recipes keyed by recipe ID. Safe for
// concurrent access. Persistence is the caller's job; see
// domain.FavoritesRepository.
type Store struct {
	mu      sync.RWMutex
	entries []domain.FavoriteEntry
	log     *logger.Logger
}

// NewStore creates an empty favorites store.
func NewStore(log *logger.Logger) *Store {
	return &Store{log: log}
}

// Add records a favorite. Adding an ID that is already present fails with
// domain.ErrAlreadyExists and leaves the store as it was.
func (s *Store) Add(e domain.FavoriteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(e.ID) >= 0 {
		return fmt.Errorf("favorite %q: %w", e.ID, domain.ErrAlreadyExists)
	}
	s.entries = append(s.entries, e)
	s.log.Debug("favorites: added %s (%s)", e.ID, e.Title)
	return nil
}

// Delete removes a favorite. Unknown IDs are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.log.Debug("favorites: removed %s", id)
}

// IsFavorite reports whether id is in the store.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the favorites in the order they were added.
func (s *Store) Entries() []domain.FavoriteEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.FavoriteEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Replace swaps the whole set, typically with what a repository loaded.
// Later duplicates of an ID are dropped.
func (s *Store) Replace(entries []domain.FavoriteEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			s.log.Warn("favorites: dropping duplicate %s", e.ID)
			continue
		}
		seen[e.ID] = struct{}{}
		s.entries = append(s.entries, e)
	}
	s.log.Debug("favorites: loaded %d entries", len(s.entries))
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
