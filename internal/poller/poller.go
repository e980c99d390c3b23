package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
	"github.com/preston-bernstein/league-table-service/internal/logging"
	"github.com/preston-bernstein/league-table-service/internal/metrics"
	"github.com/preston-bernstein/league-table-service/internal/snapshot"
)

const (
	defaultInterval = 15 * time.Minute
	readyFailures   = 3
)

// Builder produces a fresh standings snapshot.
type Builder interface {
	Build(ctx context.Context) (*standings.Snapshot, error)
}

// Publisher makes a snapshot visible to readers.
type Publisher interface {
	Publish(snap *standings.Snapshot)
}

// Poller rebuilds the standings snapshot on an interval and publishes each
// successful build. A failed build leaves the previous snapshot in place.
type Poller struct {
	builder      Builder
	publisher    Publisher
	logger       *slog.Logger
	metrics      *metrics.Recorder
	interval     time.Duration
	buildTimeout time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastStage           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Teams               int
}

// IsReady reports whether a snapshot has been published and refreshes are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// Option customizes a Poller.
type Option func(*Poller)

// WithBuildTimeout bounds each build. Zero leaves builds bounded only by the
// parent context.
func WithBuildTimeout(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.buildTimeout = d
		}
	}
}

// New constructs a Poller. A non-positive interval falls back to 15 minutes.
func New(builder Builder, publisher Publisher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	p := &Poller{
		builder:   builder,
		publisher: publisher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start refreshes immediately, then on every tick until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "refresher started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "refresher stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "refresher stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop. It is safe to call more than once.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// RefreshNow runs one build-and-publish cycle synchronously.
func (p *Poller) RefreshNow(ctx context.Context) error {
	return p.refreshOnce(ctx)
}

func (p *Poller) refreshOnce(ctx context.Context) error {
	start := time.Now()
	p.recordAttempt(start)

	buildCtx := ctx
	if p.buildTimeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, p.buildTimeout)
		defer cancel()
	}

	snap, err := p.builder.Build(buildCtx)
	elapsed := time.Since(start)
	stage := snapshot.Stage(err)
	p.metrics.RecordRefreshCycle(elapsed, stage, err)

	if err != nil {
		logging.Error(p.logger, "standings refresh failed", err,
			slog.String(logging.FieldStage, stage),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		p.recordFailure(err, stage)
		return err
	}

	if p.publisher != nil {
		p.publisher.Publish(snap)
	}
	p.metrics.SetSnapshotTeams(snap.Len())
	p.recordSuccess(start, snap.Len())
	logging.Info(p.logger, "standings refreshed",
		slog.Int(logging.FieldCount, snap.Len()),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return nil
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, teams int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastStage = ""
	p.status.LastSuccess = at
	p.status.Teams = teams
}

func (p *Poller) recordFailure(err error, stage string) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	p.status.LastError = err.Error()
	p.status.LastStage = stage
}

// Status returns a copy of the refresher's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
