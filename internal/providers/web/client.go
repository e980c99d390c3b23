package web

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/preston-bernstein/league-table-service/internal/providers"
)

// Config controls how the client reaches the standings page.
type Config struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

// Client fetches standings pages over HTTP.
type Client struct {
	httpClient httpDoer
	userAgent  string
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		now:        time.Now,
	}
}

// FetchPage GETs url and returns the body as text. An empty url fetches DefaultURL.
// Non-200 responses become a FetchError, or a RateLimitError for 429.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &providers.FetchError{URL: url, Err: crerr.Wrap(err, "build request")}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &providers.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "standings page rate limited",
		}
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetBytes))
		fetchErr := &providers.FetchError{URL: url, StatusCode: resp.StatusCode}
		if s := strings.TrimSpace(string(snippet)); s != "" {
			fetchErr.Err = crerr.Newf("unexpected response: %s", s)
		}
		return "", fetchErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", &providers.FetchError{URL: url, Err: crerr.Wrap(err, "read body")}
	}
	if len(body) > maxBodyBytes {
		return "", &providers.FetchError{URL: url, Err: crerr.Newf("body exceeds %d bytes", maxBodyBytes)}
	}
	return string(body), nil
}
