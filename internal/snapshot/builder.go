// Package snapshot assembles standings snapshots from a fetched page.
package snapshot

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
	"github.com/preston-bernstein/league-table-service/internal/parser"
	"github.com/preston-bernstein/league-table-service/internal/providers"
)

// StageFetch labels failures retrieving the page.
const StageFetch = "fetch"

const tracerName = "github.com/preston-bernstein/league-table-service/internal/snapshot"

// Span attribute keys recorded by Build.
const (
	AttrSourceURL = "source.url"
	AttrTeams     = "standings.teams"
	AttrStage     = "standings.stage"
)

// Builder runs fetch, extract, normalize and decode for one source URL.
type Builder struct {
	provider providers.PageProvider
	url      string
	decoder  *parser.FormDecoder
	now      func() time.Time
	tracer   trace.Tracer
}

// Option customizes a Builder.
type Option func(*Builder)

// WithFormDecoder replaces the default form decoder.
func WithFormDecoder(d *parser.FormDecoder) Option {
	return func(b *Builder) {
		if d != nil {
			b.decoder = d
		}
	}
}

// WithClock overrides the fetch timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithTracerProvider records build spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(b *Builder) {
		if tp != nil {
			b.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewBuilder returns a Builder that fetches url through provider. Spans go to
// the global tracer provider unless WithTracerProvider is given.
func NewBuilder(provider providers.PageProvider, url string, opts ...Option) *Builder {
	b := &Builder{
		provider: provider,
		url:      url,
		decoder:  parser.NewFormDecoder(),
		now:      time.Now,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build fetches the page and assembles a Snapshot. Any stage failure aborts the
// whole build. Fetch failures are always reported as *providers.FetchError or
// *providers.RateLimitError.
func (b *Builder) Build(ctx context.Context) (*standings.Snapshot, error) {
	ctx, span := b.tracer.Start(ctx, "standings.build", trace.WithAttributes(attribute.String(AttrSourceURL, b.url)))
	defer span.End()

	snap, err := b.build(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrStage, Stage(err)))
		span.SetStatus(codes.Error, stageLabel(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int(AttrTeams, snap.Len()))
	return snap, nil
}

func (b *Builder) build(ctx context.Context) (*standings.Snapshot, error) {
	if b.provider == nil {
		return nil, &providers.FetchError{URL: b.url, Err: providers.ErrProviderUnavailable}
	}
	fetchedAt := b.now()
	page, err := b.provider.FetchPage(ctx, b.url)
	if err != nil {
		return nil, asFetchFailure(b.url, err)
	}
	return b.FromPage(page, fetchedAt)
}

// FromPage runs the pipeline over already-fetched page text.
func (b *Builder) FromPage(page string, fetchedAt time.Time) (*standings.Snapshot, error) {
	rows, err := parser.ExtractRows(page)
	if err != nil {
		return nil, crerr.Wrap(err, "build snapshot")
	}

	records, err := parser.NormalizeRows(rows)
	if err != nil {
		return nil, crerr.Wrap(err, "build snapshot")
	}

	forms := make([]standings.FormHistory, 0, len(rows))
	for i, row := range rows {
		h, err := b.decoder.History(records[i].Name, row[standings.ColForm])
		if err != nil {
			return nil, crerr.Wrapf(err, "build snapshot: row %d", i+1)
		}
		forms = append(forms, h)
	}

	snap, err := standings.NewSnapshot(fetchedAt, b.url, records, forms)
	if err != nil {
		return nil, crerr.Wrap(err, "build snapshot")
	}
	return snap, nil
}

// Source returns the URL this builder fetches.
func (b *Builder) Source() string { return b.url }

func asFetchFailure(url string, err error) error {
	if _, ok := providers.AsFetchError(err); ok {
		return err
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return err
	}
	return &providers.FetchError{URL: url, Err: err}
}

// Stage classifies a build error as "fetch" or one of the pipeline stages.
func Stage(err error) string {
	if err == nil {
		return ""
	}
	if _, ok := providers.AsFetchError(err); ok {
		return StageFetch
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return StageFetch
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return StageFetch
	}
	return standings.StageOf(err)
}

func stageLabel(err error) string {
	return Stage(err) + " failed"
}
