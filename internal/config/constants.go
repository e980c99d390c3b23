package config

import (
	"time"

	"github.com/preston-bernstein/league-table-service/internal/providers/web"
)

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envSourceProvider  = "SOURCE_PROVIDER"
	envSourceURL       = "SOURCE_URL"
	envSourceTimeout   = "SOURCE_TIMEOUT"
	envSourceUA        = "SOURCE_USER_AGENT"
	envSourceMinGap    = "SOURCE_MIN_INTERVAL"
	envSourceRetries   = "SOURCE_RETRY_ATTEMPTS"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "8080"
	// The table changes a few times per matchday; a slow cadence keeps load on the source low.
	defaultRefreshInterval = 15 * Duration(time.Minute)
	defaultProvider        = ProviderWeb
	defaultSourceURL       = web.DefaultURL
	defaultSourceTimeout   = 10 * Duration(time.Second)
	defaultMinInterval     = Duration(time.Minute)
	defaultRetryAttempts   = 3
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "league-table-service"
)

// Provider names accepted by SOURCE_PROVIDER.
const (
	ProviderWeb     = "web"
	ProviderFixture = "fixture"
)
