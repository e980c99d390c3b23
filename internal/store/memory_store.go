package store

import (
	"sync/atomic"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

// MemoryStore holds the current standings snapshot. Publishing swaps the whole
// snapshot so readers never see a partial table.
type MemoryStore struct {
	current atomic.Pointer[standings.Snapshot]
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Current returns the published snapshot, or false before the first publish.
func (s *MemoryStore) Current() (*standings.Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// Publish replaces the current snapshot. Nil snapshots are ignored so a failed
// build can never clear a good table.
func (s *MemoryStore) Publish(snap *standings.Snapshot) {
	if snap == nil {
		return
	}
	s.current.Store(snap)
}
