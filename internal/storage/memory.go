// Package storage provides favorites persistence implementations.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.FavoritesRepository = (*MemoryRepository)(nil)

// MemoryRepository keeps favorites in memory. Safe for concurrent access.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []domain.FavoriteEntry
	saves   int
	log     *logger.Logger
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository(log *logger.Logger) *MemoryRepository {
	return &MemoryRepository{log: log}
}

// Save replaces the stored sequence with a copy of entries.
func (r *MemoryRepository) Save(ctx context.Context, entries []domain.FavoriteEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]domain.FavoriteEntry(nil), entries...)
	r.saves++
	r.log.Debug("memory repo: saved %d favorites", len(entries))
	return nil
}

// Load returns a copy of the stored sequence.
func (r *MemoryRepository) Load(ctx context.Context) ([]domain.FavoriteEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.FavoriteEntry(nil), r.entries...), nil
}

// Saves returns how many times Save has been called.
func (r *MemoryRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
