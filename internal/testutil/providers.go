package testutil

import (
	"context"

	"github.com/preston-bernstein/league-table-service/internal/providers"
)

// GoodProvider returns the configured page with no error.
type GoodProvider struct {
	Page string
}

func (p GoodProvider) FetchPage(ctx context.Context, url string) (string, error) {
	_ = ctx
	_ = url
	return p.Page, nil
}

// ErrProvider always returns the configured error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchPage(ctx context.Context, url string) (string, error) {
	return "", p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchPage(ctx context.Context, url string) (string, error) {
	return "", providers.ErrProviderUnavailable
}
