package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/preston-bernstein/league-table-service/internal/metrics"
)

type flakeyProvider struct {
	failures int
	calls    int
	err      error
}

func (f *flakeyProvider) FetchPage(ctx context.Context, url string) (string, error) {
	_ = ctx
	_ = url
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return "", f.err
		}
		return "", errors.New("boom")
	}
	return "<table></table>", nil
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), "flakey", 3, 1*time.Millisecond)

	page, err := rp.FetchPage(context.Background(), "http://example.com")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if page != "<table></table>" {
		t.Fatalf("unexpected page %q", page)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, 1*time.Millisecond)

	_, err := rp.FetchPage(context.Background(), "")
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetryPermanentFailures(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: &FetchError{URL: "u", StatusCode: 404}}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	_, err := rp.FetchPage(context.Background(), "u")
	if _, ok := AsFetchError(err); !ok {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt for a 404, got %d", fp.calls)
	}
}

func TestRetryingProviderRetriesServerErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &FetchError{URL: "u", StatusCode: 503}}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond)

	if _, err := rp.FetchPage(context.Background(), "u"); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchPage(ctx, "")
	if err == nil {
		t.Fatal("expected context error")
	}
	if fp.calls != 1 {
		t.Fatalf("expected no retries after cancel, got %d calls", fp.calls)
	}
}

func TestRetryingProviderCancelDuringBackoff(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := rp.FetchPage(ctx, "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("expected backoff to be interrupted")
	}
}

func TestRetryingProviderUsesCustomBackoff(t *testing.T) {
	fp := &flakeyProvider{failures: 1}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Hour).(*retryingProvider)

	calls := 0
	rp.backoffFn = func(attempt int) time.Duration {
		calls++
		return 0
	}

	_, _ = rp.FetchPage(context.Background(), "")

	if calls == 0 {
		t.Fatalf("expected custom backoff to be invoked")
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(&rateLimitThenSuccessProvider{}, nil, rec, "rl", 2, time.Millisecond).(*retryingProvider)
	rp.backoffFn = func(attempt int) time.Duration {
		_ = attempt
		return 0
	}

	page, err := rp.FetchPage(context.Background(), "")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if page == "" {
		t.Fatalf("expected page content")
	}

	if got := rec.RateLimitHits(rp.providerName); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls(rp.providerName); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors(rp.providerName); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestRetryingProviderDelaySelection(t *testing.T) {
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(&rateLimitThenSuccessProvider{}, nil, rec, "rl", 2, time.Millisecond).(*retryingProvider)
	rp.rng = rand.New(rand.NewSource(1))
	rp.backoffFn = func(attempt int) time.Duration {
		_ = attempt
		return 50 * time.Millisecond
	}

	t.Run("rate_limit_uses_retry_after", func(t *testing.T) {
		delay := rp.computeDelay(&RateLimitError{RetryAfter: 3 * time.Second}, 1)
		if delay != 3*time.Second {
			t.Fatalf("expected retry-after delay 3s, got %s", delay)
		}
	})

	t.Run("retry_after_is_capped", func(t *testing.T) {
		delay := rp.computeDelay(&RateLimitError{RetryAfter: time.Hour}, 1)
		if delay != maxRetryAfter {
			t.Fatalf("expected capped delay %s, got %s", maxRetryAfter, delay)
		}
	})

	t.Run("generic_error_uses_backoff_with_jitter", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			delay := rp.computeDelay(errors.New("boom"), 1)
			if delay < 25*time.Millisecond || delay > 50*time.Millisecond {
				t.Fatalf("expected jittered delay between 25ms and 50ms, got %s", delay)
			}
		}
	})
}

func TestNewRetryingProviderWithRNG(t *testing.T) {
	fp := &flakeyProvider{failures: 1}
	rng := rand.New(rand.NewSource(2))
	rp := NewRetryingProviderWithRNG(fp, nil, metrics.NewRecorder(), "flakey", rng, 2, time.Millisecond)

	if _, err := rp.FetchPage(context.Background(), ""); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestNewRetryingProviderWithNilProviderSetsFallbackName(t *testing.T) {
	rp := NewRetryingProviderWithRNG(nil, nil, metrics.NewRecorder(), "", nil, 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}
	if rp.backoffFn(1) != defaultBackoff {
		t.Fatalf("expected default backoff")
	}
	if _, err := rp.FetchPage(context.Background(), ""); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

type rateLimitThenSuccessProvider struct {
	calls int
}

func (f *rateLimitThenSuccessProvider) FetchPage(ctx context.Context, url string) (string, error) {
	_ = ctx
	_ = url
	f.calls++
	if f.calls == 1 {
		return "", &RateLimitError{
			Provider:   "test",
			StatusCode: 429,
		}
	}
	return "<table></table>", nil
}

func TestRetryBudgetCoversEveryBackoff(t *testing.T) {
	if got := RetryBudget(1, time.Second); got != 0 {
		t.Fatalf("expected no backoff for a single attempt, got %s", got)
	}
	if got := RetryBudget(4, 100*time.Millisecond); got != 600*time.Millisecond {
		t.Fatalf("expected 600ms across three waits, got %s", got)
	}
	if got := RetryBudget(0, 0); got != 3*defaultBackoff {
		t.Fatalf("expected default budget, got %s", got)
	}

	// jittered delays never exceed the linear base
	r := NewRetryingProviderWithRNG(nil, nil, nil, "p", rand.New(rand.NewSource(1)), 3, 100*time.Millisecond).(*retryingProvider)
	var slept time.Duration
	for attempt := 1; attempt < 3; attempt++ {
		slept += r.computeDelay(errors.New("x"), attempt)
	}
	if slept > RetryBudget(3, 100*time.Millisecond) {
		t.Fatalf("slept %s beyond budget", slept)
	}
}
