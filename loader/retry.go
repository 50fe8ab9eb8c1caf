package loader

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/docindex"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches location, retrying transient failures after each
// of delays. Application errors such as ENOTFOUND are returned at once.
func fetchWithRetry(ctx context.Context, src docindex.ArtifactSource, location string, delays []time.Duration, logf LogFunc) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		data, err := src.Fetch(ctx, location)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !retryable(err) || attempt == len(delays) {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logf != nil {
			logf("retry %s (attempt %d): %v", location, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

// retryable reports whether err could succeed on a second try.
func retryable(err error) bool {
	switch docindex.ErrorCode(err) {
	case docindex.ENOTFOUND, docindex.EINVALID, docindex.EMALFORMED:
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
