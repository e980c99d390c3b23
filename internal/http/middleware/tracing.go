package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const tracingOperation = "league-table-http"

// RequestTracing starts a server span per request. Health and readiness checks are not traced.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, tracingOperation,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + normalizePath(r.URL.Path)
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTrace(r.URL.Path)
		}),
	)
}

func shouldTrace(path string) bool {
	switch normalizePath(path) {
	case "/health", "/ready":
		return false
	default:
		return true
	}
}
