package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/league-table-service/internal/config"
	"github.com/preston-bernstein/league-table-service/internal/logging"
	"github.com/preston-bernstein/league-table-service/internal/server"
)

const (
	serviceName = "league-table-service"
	appVersion  = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run(os.Stdout))
}

// run loads and validates configuration, then serves until interrupted.
func run(out io.Writer) int {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  out,
	})

	if err := cfg.Validate(); err != nil {
		logging.Error(logger, "configuration rejected", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.New(cfg, logger).Run(ctx, stop)
	return 0
}
