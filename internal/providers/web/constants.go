package web

import "time"

const (
	// DefaultURL is the Premier League table page the service scrapes by default.
	DefaultURL = "https://www.bbc.co.uk/sport/football/premier-league/table"

	defaultHTTPTimeout = 10 * time.Second
	defaultUserAgent   = "league-table-service/1.0"
	maxBodyBytes       = 5 << 20
	errorSnippetBytes  = 512
	providerName       = "web"
)
