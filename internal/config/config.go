package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string   `validate:"required,numeric"`
	RefreshInterval Duration `validate:"gt=0"`
	Source          SourceConfig
	Logging         LoggingConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// Call Validate before using the result.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Source:          loadSource(),
		Logging:         loadLogging(),
		Metrics:         loadMetrics(),
	}
}
