package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
)

// StubPageProvider is a test double for providers.PageProvider.
type StubPageProvider struct {
	Page    string
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}
	LastURL atomic.Value
}

// FetchPage returns the configured page and error while tracking calls.
func (s *StubPageProvider) FetchPage(ctx context.Context, url string) (string, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	s.LastURL.Store(url)
	return s.Page, s.Err
}

// StubBuilder is a test double for poller.Builder.
type StubBuilder struct {
	mu       sync.Mutex
	Snapshot *standings.Snapshot
	Err      error
	Calls    atomic.Int32
	Notify   chan struct{}
}

// Build returns the configured snapshot and error while tracking calls.
func (b *StubBuilder) Build(ctx context.Context) (*standings.Snapshot, error) {
	_ = ctx
	b.Calls.Add(1)
	b.mu.Lock()
	snap, err := b.Snapshot, b.Err
	b.mu.Unlock()
	if b.Notify != nil {
		select {
		case <-b.Notify:
		default:
			close(b.Notify)
		}
	}
	return snap, err
}

// Set swaps the result returned by later builds.
func (b *StubBuilder) Set(snap *standings.Snapshot, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Snapshot = snap
	b.Err = err
}

// StubPublisher records every published snapshot.
type StubPublisher struct {
	mu        sync.Mutex
	Published []*standings.Snapshot
}

// Publish records the snapshot for verification in tests.
func (p *StubPublisher) Publish(snap *standings.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, snap)
}

// Count returns the number of published snapshots.
func (p *StubPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Published)
}

// Snapshots returns a copy of everything published so far.
func (p *StubPublisher) Snapshots() []*standings.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*standings.Snapshot(nil), p.Published...)
}
