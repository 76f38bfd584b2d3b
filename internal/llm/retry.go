package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"buildyourcv/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base  Client
	delay time.Duration
}

// WithRetry retries a transient failure once after a short delay.
func WithRetry(base Client) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, delay: retryBaseDelay}
}

func (r retryingClient) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := r.base.Complete(ctx, req)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Info("llm retry", map[string]any{
		"attempt": 1,
		"error":   err.Error(),
	})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Complete(ctx, req)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotConfigured) || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
