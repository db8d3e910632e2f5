package timeout

import (
	"context"
	"time"
)

// WithDefault runs fn with a deadline and substitutes fallback when the
// deadline wins or fn fails. The second return reports whether the fallback
// was used. Intended for enhancement calls (AI insights) whose failure must
// not block the rest of the response; core data paths should propagate
// errors instead.
func WithDefault[T any](ctx context.Context, d time.Duration, fallback T, fn func(ctx context.Context) (T, error)) (T, bool) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)

	go func() {
		val, err := fn(ctx)
		ch <- result{val, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fallback, true
		}
		return r.val, false
	case <-ctx.Done():
		return fallback, true
	}
}
