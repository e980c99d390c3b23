package providers

import "context"

// PageProvider fetches the raw text of a standings page.
// Implementations enforce their own timeouts and return a FetchError or
// RateLimitError when the page cannot be retrieved.
type PageProvider interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// PageProviderFunc adapts a function to PageProvider.
type PageProviderFunc func(ctx context.Context, url string) (string, error)

// FetchPage calls f.
func (f PageProviderFunc) FetchPage(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}
