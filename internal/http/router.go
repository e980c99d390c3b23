package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/league-table-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/standings", handler.Standings)
	mux.HandleFunc("/standings/", handler.TeamStanding)
	mux.HandleFunc("/form/", handler.TeamForm)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/", handler.Team)
	return mux
}
