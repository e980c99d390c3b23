package testutil

import (
	"github.com/preston-bernstein/league-table-service/internal/app/league"
	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
	"github.com/preston-bernstein/league-table-service/internal/store"
)

// NewServiceWithSnapshot builds a lookup service backed by an in-memory store.
// A nil snapshot leaves the store empty.
func NewServiceWithSnapshot(snap *standings.Snapshot) (*league.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	ms.Publish(snap)
	return league.NewService(ms), ms
}
