package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
	"github.com/preston-bernstein/league-table-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-table-service/internal/logging"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type unknownTeamBody struct {
	Error      string   `json:"error"`
	Team       string   `json:"team"`
	ValidTeams []string `json:"validTeams"`
	RequestID  string   `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, RequestID: requestutil.RequestID(r)}, logger)
}

// writeLookupError maps lookup failures to status codes: unknown team is 400,
// a missing snapshot is 503, anything else is 500.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if unknown, ok := standings.AsUnknownTeamError(err); ok {
		writeJSON(w, http.StatusBadRequest, unknownTeamBody{
			Error:      "unknown team",
			Team:       unknown.Attempted,
			ValidTeams: unknown.ValidNames,
			RequestID:  requestutil.RequestID(r),
		}, logger)
		return
	}
	if errors.Is(err, standings.ErrSnapshotUnavailable) {
		writeError(w, r, http.StatusServiceUnavailable, "standings not yet available", logger)
		return
	}
	logging.Error(logger, "lookup failed", err)
	writeError(w, r, http.StatusInternalServerError, "internal error", logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
