package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/league-table-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving one from
// the instance type when none is configured.
func normalizeProviderName(raw string, provider providers.PageProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
