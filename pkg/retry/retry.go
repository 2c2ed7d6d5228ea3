// Package retry provides bounded, fixed-delay retries for operations that
// may fail transiently, such as script injection into a page that is still
// loading.
package retry

import (
	"context"
	"time"

	backoff "github.com/sethvargo/go-retry"
)

// Do runs op until it succeeds, making at most attempts calls with a fixed
// delay between consecutive calls. The final failure is returned once the
// attempt budget is exhausted.
func Do(ctx context.Context, attempts uint64, delay time.Duration, op func(ctx context.Context) error) error {
	if attempts == 0 {
		attempts = 1
	}

	b := backoff.WithMaxRetries(attempts-1, backoff.NewConstant(delay))
	return backoff.Do(ctx, b, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			return backoff.RetryableError(err)
		}
		return nil
	})
}

// Try is the non-propagating flavor of Do: it reports whether op eventually
// succeeded instead of surfacing the final error. Callers use this when the
// operation is best-effort and failure must not abort the surrounding flow.
func Try(ctx context.Context, attempts uint64, delay time.Duration, op func(ctx context.Context) error) bool {
	return Do(ctx, attempts, delay, op) == nil
}
