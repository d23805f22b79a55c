// Package memory keeps the most recent scoreboard in process memory.
package memory

import (
	"slices"
	"sync"

	"github.com/omarshaarawi/nbastats/internal/models"
)

// Repository holds the last scoreboard snapshot. Snapshots are copied on the
// way in and out, so callers never share state with the store.
type Repository struct {
	mu       sync.RWMutex
	snapshot *models.ScoreboardSnapshot
}

func NewRepository() *Repository {
	return &Repository{}
}

// SaveSnapshot replaces the stored snapshot. A nil snapshot is ignored.
func (r *Repository) SaveSnapshot(snapshot *models.ScoreboardSnapshot) {
	if snapshot == nil {
		return
	}
	stored := cloneSnapshot(snapshot)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = stored
}

// GetSnapshot returns a copy of the stored snapshot, or nil before the first
// save.
func (r *Repository) GetSnapshot() *models.ScoreboardSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.snapshot == nil {
		return nil
	}
	return cloneSnapshot(r.snapshot)
}

func cloneSnapshot(s *models.ScoreboardSnapshot) *models.ScoreboardSnapshot {
	c := *s
	c.Matchups = slices.Clone(s.Matchups)
	return &c
}
