package service

import (
	"context"
	"log/slog"
	"time"
)

// readRetryBackoff is the pause before the single retry of a failed
// read. Reads are safe to replay; writes never are, so writes get no
// retry anywhere in this package.
const readRetryBackoff = 150 * time.Millisecond

// retryRead runs fn and, on error, retries it once after a short
// backoff. The context deadline still applies during the backoff.
func retryRead[T any](ctx context.Context, logger *slog.Logger, fn func(context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}

	logger.Warn("read failed, retrying once", "error", err)

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-time.After(readRetryBackoff):
	}

	return fn(ctx)
}
