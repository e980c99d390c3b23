package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/league-table-service/internal/app/league"
	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
	"github.com/preston-bernstein/league-table-service/internal/logging"
	"github.com/preston-bernstein/league-table-service/internal/poller"
)

// Handler wires HTTP routes to the lookup service.
type Handler struct {
	svc      *league.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case readiness
// follows snapshot availability alone.
func NewHandler(svc *league.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ServeHTTP dispatches by path so the handler can be exercised without a router.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	p := r.URL.Path
	switch {
	case p == "/health":
		h.Health(w, r)
	case p == "/ready":
		h.Ready(w, r)
	case p == "/standings":
		h.Standings(w, r)
	case strings.HasPrefix(p, "/standings/"):
		h.TeamStanding(w, r)
	case strings.HasPrefix(p, "/form/"):
		h.TeamForm(w, r)
	case p == "/teams":
		h.Teams(w, r)
	case strings.HasPrefix(p, "/teams/"):
		h.Team(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allowGet(w, r) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether a snapshot is being served and refreshes are healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allowGet(w, r) {
		return
	}
	if h.statusFn == nil {
		if _, err := h.svc.Snapshot(); err != nil {
			writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Standings returns the full table in rank order.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allowGet(w, r) {
		return
	}
	resp, err := h.svc.Standings()
	if err != nil {
		writeLookupError(w, r, err, h.logger)
		return
	}
	logging.Debug(loggerFromContext(r, h.logger), "served standings", slog.Int(logging.FieldCount, len(resp.Standings)))
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// TeamStanding returns one team's table row.
func (h *Handler) TeamStanding(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serveTeam(w, r, "/standings/", func(name string) (any, error) {
		return h.svc.FindStanding(name)
	})
}

// TeamForm returns one team's recent results, most recent first.
func (h *Handler) TeamForm(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serveTeam(w, r, "/form/", func(name string) (any, error) {
		return h.svc.FindForm(name)
	})
}

// Team returns one team's standing and form together.
func (h *Handler) Team(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.serveTeam(w, r, "/teams/", func(name string) (any, error) {
		return h.svc.FindTeam(name)
	})
}

// Teams lists every team name sorted case-insensitively.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.allowGet(w, r) {
		return
	}
	names, err := h.svc.TeamNames()
	if err != nil {
		writeLookupError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, standings.TeamsResponse{Teams: names}, h.logger)
}

func (h *Handler) serveTeam(w nethttp.ResponseWriter, r *nethttp.Request, prefix string, find func(string) (any, error)) {
	if !h.allowGet(w, r) {
		return
	}
	name, ok := teamFromPath(r.URL.Path, prefix)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team name", h.logger)
		return
	}
	payload, err := find(name)
	if err != nil {
		if _, unknown := standings.AsUnknownTeamError(err); unknown {
			logging.Info(loggerFromContext(r, h.logger), "unknown team requested", slog.String(logging.FieldTeam, name))
		}
		writeLookupError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, payload, h.logger)
}

func (h *Handler) allowGet(w nethttp.ResponseWriter, r *nethttp.Request) bool {
	if r.Method == nethttp.MethodGet || r.Method == nethttp.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	return false
}

// teamFromPath extracts the decoded team segment after prefix. Nested paths
// and blank names are rejected.
func teamFromPath(path, prefix string) (string, bool) {
	name, found := strings.CutPrefix(path, prefix)
	if !found || strings.Contains(name, "/") {
		return "", false
	}
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}
