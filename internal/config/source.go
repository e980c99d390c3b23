package config

import "github.com/preston-bernstein/league-table-service/internal/providers"

// SourceConfig controls where and how the standings page is fetched.
type SourceConfig struct {
	Provider      string   `validate:"oneof=web fixture"`
	URL           string   `validate:"required,http_url"`
	Timeout       Duration `validate:"gt=0"`
	UserAgent     string
	MinInterval   Duration `validate:"gte=0"`
	RetryAttempts int      `validate:"min=1,max=10"`
}

func loadSource() SourceConfig {
	return SourceConfig{
		Provider:      envOrDefault(envSourceProvider, defaultProvider),
		URL:           envOrDefault(envSourceURL, defaultSourceURL),
		Timeout:       durationEnvOrDefault(envSourceTimeout, defaultSourceTimeout),
		UserAgent:     envOrDefault(envSourceUA, ""),
		MinInterval:   durationEnvOrDefault(envSourceMinGap, defaultMinInterval),
		RetryAttempts: intEnvOrDefault(envSourceRetries, defaultRetryAttempts),
	}
}

// BuildTimeout bounds one refresh: every attempt may use the full fetch
// timeout, plus the backoff slept between attempts.
func (s SourceConfig) BuildTimeout() Duration {
	attempts := s.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return s.Timeout*Duration(attempts) + providers.RetryBudget(attempts, 0)
}
