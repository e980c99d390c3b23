package server

import (
	"context"

	"github.com/preston-bernstein/league-table-service/internal/poller"
)

// Poller defines the minimal refresher behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}
