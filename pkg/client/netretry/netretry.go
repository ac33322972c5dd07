// Package netretry retries transient network failures of template downloads
// and other HTTP calls.
package netretry

import (
	"context"
	"errors"
	"io"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/siderolabs/go-retry/retry"
)

// httpStatusCodePattern matches HTTP 5xx status codes at word boundaries
// so port numbers like ":5000" do not match.
var httpStatusCodePattern = regexp.MustCompile(`\b50[0-4]\b`)

// transientPatterns are fragments of HTTP status texts and TCP-level errors
// that indicate a temporary failure.
var transientPatterns = []string{
	"Internal Server Error", "Bad Gateway",
	"Service Unavailable", "Gateway Timeout",
	"connection reset by peer", "connection refused",
	"i/o timeout", "TLS handshake timeout",
	"no such host",
}

// IsRetryable reports whether err looks like a transient network error.
// Caller cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errMsg := err.Error()

	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return httpStatusCodePattern.MatchString(errMsg)
}

// defaultTimeout bounds the whole retry loop when Policy.Timeout is unset.
const defaultTimeout = 10 * time.Minute

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	// Retries is the number of additional attempts after the first one.
	Retries int
	// BaseWait is the backoff unit; the delay doubles after every attempt.
	BaseWait time.Duration
	// Timeout bounds all attempts and waits together (10m when zero).
	Timeout time.Duration
}

// Do runs op with exponential backoff until it succeeds, returns a non-retryable
// error, or the policy is exhausted. onRetry, when set, is called after every
// failed attempt that will be retried. The last error of op is returned.
func Do(
	ctx context.Context,
	policy Policy,
	op func(attempt int) error,
	onRetry func(attempt int, err error),
) error {
	timeout := policy.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var options []retry.Option
	if policy.BaseWait > 0 {
		options = append(options, retry.WithUnits(policy.BaseWait))
	}

	var (
		attempt int
		lastErr error
	)

	err := retry.Exponential(timeout, options...).RetryWithContext(ctx, func(context.Context) error {
		attempt++

		lastErr = op(attempt)
		if lastErr == nil {
			return nil
		}

		if attempt > policy.Retries || !IsRetryable(lastErr) {
			return lastErr
		}

		if onRetry != nil {
			onRetry(attempt, lastErr)
		}

		return retry.ExpectedError(lastErr)
	})

	switch {
	case err == nil:
		return nil
	case lastErr == nil:
		return err //nolint:wrapcheck // loop ended before op reported an error
	case ctx.Err() != nil:
		return errors.Join(lastErr, ctx.Err())
	case errors.Is(err, lastErr):
		return lastErr
	default:
		return errors.Join(lastErr, err)
	}
}
