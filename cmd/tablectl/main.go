package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/league-table-service/internal/app/league"
	"github.com/preston-bernstein/league-table-service/internal/domain/standings"
	"github.com/preston-bernstein/league-table-service/internal/providers"
	"github.com/preston-bernstein/league-table-service/internal/providers/fixture"
	"github.com/preston-bernstein/league-table-service/internal/providers/web"
	"github.com/preston-bernstein/league-table-service/internal/snapshot"
	"github.com/preston-bernstein/league-table-service/internal/store"
)

const (
	urlFlag       = "url"
	fileFlag      = "file"
	timeoutFlag   = "timeout"
	userAgentFlag = "user-agent"
	formatFlag    = "format"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "tablectl",
		Usage:     "Fetch a league standings table and query it from the command line",
		Version:   semanticVersion,
		Writer:    stdout,
		ErrWriter: stderr,
		// exit codes are decided by main
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    urlFlag,
				Aliases: []string{"u"},
				Usage:   "Standings page to fetch",
				Value:   web.DefaultURL,
				EnvVars: []string{"SOURCE_URL"},
			},
			&cli.StringFlag{
				Name:    fileFlag,
				Aliases: []string{"f"},
				Usage:   "Read the page from a local HTML file instead of fetching it",
			},
			&cli.DurationFlag{
				Name:  timeoutFlag,
				Usage: "Fetch timeout",
				Value: 10 * time.Second,
			},
			&cli.StringFlag{
				Name:    userAgentFlag,
				Usage:   "User-Agent sent with the request",
				EnvVars: []string{"SOURCE_USER_AGENT"},
			},
			&cli.StringFlag{
				Name:  formatFlag,
				Usage: "Output format: yaml or json",
				Value: formatYAML,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "table",
				Usage:  "Print the full standings table",
				Action: withService(printTable),
			},
			{
				Name:      "team",
				Usage:     "Print one team's standing and form",
				ArgsUsage: "NAME",
				Action: withService(lookup(func(svc *league.Service, name string) (any, error) {
					return svc.FindTeam(name)
				})),
			},
			{
				Name:      "form",
				Usage:     "Print one team's recent results, most recent first",
				ArgsUsage: "NAME",
				Action: withService(lookup(func(svc *league.Service, name string) (any, error) {
					return svc.FindForm(name)
				})),
			},
			{
				Name:  "teams",
				Usage: "List team names",
				Action: withService(func(c *cli.Context, svc *league.Service) error {
					names, err := svc.TeamNames()
					if err != nil {
						return err
					}
					return render(c, standings.TeamsResponse{Teams: names})
				}),
			},
		},
	}
}

type serviceAction func(c *cli.Context, svc *league.Service) error

// withService builds one snapshot from the configured source before running action.
func withService(action serviceAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		if _, err := parseFormat(c.String(formatFlag)); err != nil {
			return err
		}
		snap, err := loadSnapshot(c)
		if err != nil {
			return err
		}
		ms := store.NewMemoryStore()
		ms.Publish(snap)
		return action(c, league.NewService(ms))
	}
}

func loadSnapshot(c *cli.Context) (*standings.Snapshot, error) {
	var (
		provider providers.PageProvider
		source   = c.String(urlFlag)
	)
	if path := c.String(fileFlag); path != "" {
		page, err := os.ReadFile(path)
		if err != nil {
			return nil, crerr.Wrapf(err, "read %s", path)
		}
		provider = fixture.NewWithPage(string(page))
		source = path
	} else {
		provider = web.NewClient(web.Config{
			Timeout:   c.Duration(timeoutFlag),
			UserAgent: c.String(userAgentFlag),
		})
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration(timeoutFlag))
	defer cancel()
	return snapshot.NewBuilder(provider, source).Build(ctx)
}

func printTable(c *cli.Context, svc *league.Service) error {
	resp, err := svc.Standings()
	if err != nil {
		return err
	}
	return render(c, resp)
}

func lookup(find func(svc *league.Service, name string) (any, error)) serviceAction {
	return func(c *cli.Context, svc *league.Service) error {
		name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
		if name == "" {
			return crerr.New("team name required")
		}
		out, err := find(svc, name)
		if unknown, ok := standings.AsUnknownTeamError(err); ok {
			fmt.Fprintf(c.App.ErrWriter, "valid teams: %s\n", strings.Join(unknown.ValidNames, ", "))
			return unknown
		}
		if err != nil {
			return err
		}
		return render(c, out)
	}
}
