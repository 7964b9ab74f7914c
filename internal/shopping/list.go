// Package shopping holds the shopping list built from recipe ingredients.
package shopping

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// List is an ordered shopping list keyed by generated IDs. Safe for
// concurrent access.
type List struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]domain.ListEntry
	log     *logger.Logger
}

// NewList creates an empty shopping list.
func NewList(log *logger.Logger) *List {
	return &List{
		entries: make(map[string]domain.ListEntry),
		log:     log,
	}
}

// Add appends an entry under a fresh ID and returns it.
func (l *List) Add(q domain.Quantity, unit, name string) domain.ListEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := domain.ListEntry{
		ID:       uuid.NewString(),
		Quantity: q,
		Unit:     unit,
		Name:     name,
	}
	l.entries[e.ID] = e
	l.order = append(l.order, e.ID)
	l.log.Debug("list: added %s (%s %s %s)", e.ID, q, unit, name)
	return e
}

// Delete removes the entry with the given ID.
func (l *List) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[id]; !ok {
		return fmt.Errorf("list item %q: %w", id, domain.ErrNotFound)
	}
	delete(l.entries, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.log.Debug("list: deleted %s", id)
	return nil
}

// UpdateCount replaces the quantity of an entry.
func (l *List) UpdateCount(id string, q domain.Quantity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[id]
	if !ok {
		return fmt.Errorf("list item %q: %w", id, domain.ErrNotFound)
	}
	e.Quantity = q
	l.entries[id] = e
	l.log.Debug("list: %s count now %s", id, q)
	return nil
}

// Get returns the entry with the given ID.
func (l *List) Get(id string) (domain.ListEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, ok := l.entries[id]
	if !ok {
		return domain.ListEntry{}, fmt.Errorf("list item %q: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// Items returns the entries in insertion order.
func (l *List) Items() []domain.ListEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.ListEntry, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.entries[id])
	}
	return out
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}
