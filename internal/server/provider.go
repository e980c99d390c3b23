package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/league-table-service/internal/config"
	"github.com/preston-bernstein/league-table-service/internal/logging"
	"github.com/preston-bernstein/league-table-service/internal/providers"
	"github.com/preston-bernstein/league-table-service/internal/providers/fixture"
	"github.com/preston-bernstein/league-table-service/internal/providers/web"
)

func selectProvider(cfg config.SourceConfig, logger *slog.Logger) providers.PageProvider {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderWeb, "":
		return newWebClient(cfg)
	default:
		logging.Warn(logger, "unknown provider, falling back to web", slog.String(logging.FieldProvider, cfg.Provider))
		return newWebClient(cfg)
	}
}

func newWebClient(cfg config.SourceConfig) *web.Client {
	return web.NewClient(web.Config{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	})
}
