package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/league-table-service/internal/logging"
)

const defaultMinInterval = time.Minute

// rateLimitedProvider wraps a PageProvider and enforces a minimum interval between fetches.
type rateLimitedProvider struct {
	next     PageProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a PageProvider that allows one fetch per interval.
// The first fetch proceeds immediately; later calls block until the interval elapses
// or the context ends.
func NewRateLimitedProvider(next PageProvider, interval time.Duration, logger *slog.Logger) PageProvider {
	if interval <= 0 {
		interval = defaultMinInterval
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchPage(ctx context.Context, url string) (string, error) {
	if p.next == nil {
		logging.Warn(p.logger, "provider unavailable", slog.String(logging.FieldProvider, "rate-limited"))
		return "", ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logging.Warn(p.logger, "rate-limited fetch canceled",
			slog.String(logging.FieldProvider, "rate-limited"),
			"error", err,
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}
	logging.Debug(p.logger, "rate-limited provider fetch", slog.String(logging.FieldSource, url))
	return p.next.FetchPage(ctx, url)
}
