package server

import (
	"log/slog"

	"github.com/preston-bernstein/league-table-service/internal/config"
	"github.com/preston-bernstein/league-table-service/internal/metrics"
	"github.com/preston-bernstein/league-table-service/internal/providers"
)

// providerFactory assembles the page provider with shared wrappers.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.PageProvider {
	return f.wrap(cfg, selectProvider(cfg.Source, f.logger))
}

// wrap applies retries per refresh and then the minimum gap between refreshes,
// so retries inside one refresh are not throttled by the gap.
func (f providerFactory) wrap(cfg config.Config, base providers.PageProvider) providers.PageProvider {
	name := normalizeProviderName(cfg.Source.Provider, base)
	retrying := providers.NewRetryingProvider(base, f.logger, f.metrics, name, cfg.Source.RetryAttempts, 0)
	return providers.NewRateLimitedProvider(retrying, cfg.Source.MinInterval, f.logger)
}
