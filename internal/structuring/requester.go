// Package structuring sends extracted CV text to the structuring service and
// hands back whatever JSON value it can locate in the reply.
package structuring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"buildyourcv/internal/llm"
	"buildyourcv/internal/shared/metrics"
	"buildyourcv/internal/shared/telemetry"
	"buildyourcv/internal/shared/util"
)

const DefaultTimeout = 120 * time.Second

var (
	ErrEmptyText          = errors.New("no CV text to structure")
	ErrNotConfigured      = errors.New("structuring service not configured")
	ErrServiceUnavailable = errors.New("structuring service unavailable")
	ErrServiceRejected    = errors.New("structuring service rejected the request")
	ErrUnparsableReply    = errors.New("structuring service reply contains no JSON value")
)

// Requester turns CV text into an untrusted candidate value. Identical texts
// requested concurrently share one service call.
type Requester struct {
	client  llm.Client
	timeout time.Duration
	group   singleflight.Group
}

// NewRequester wraps client. A nil client behaves as not configured.
func NewRequester(client llm.Client, timeout time.Duration) *Requester {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Requester{client: client, timeout: timeout}
}

// Request returns the decoded JSON value located in the service reply.
func (r *Requester) Request(ctx context.Context, text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		metrics.IncStructuring("empty_text")
		return nil, ErrEmptyText
	}
	key := util.HashText(text)
	ch := r.group.DoChan(key, func() (any, error) {
		return r.call(ctx, key, text)
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.IncStructuringShared()
		}
		if res.Err != nil {
			metrics.IncStructuring(outcome(res.Err))
			return nil, res.Err
		}
		var v any
		if err := json.Unmarshal([]byte(res.Val.(string)), &v); err != nil {
			metrics.IncStructuring("unparsable")
			return nil, fmt.Errorf("%w: %w", ErrUnparsableReply, err)
		}
		metrics.IncStructuring("ok")
		return v, nil
	case <-ctx.Done():
		metrics.IncStructuring("unavailable")
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, ctx.Err())
	}
}

// call runs detached from the first caller's cancellation so that callers
// sharing it are not cut off; the timeout still bounds it.
func (r *Requester) call(ctx context.Context, key, text string) (string, error) {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	start := time.Now()
	reply, err := r.client.Complete(callCtx, llm.ParseCVRequest(text))
	metrics.ObserveStructuringDurationMs(metrics.SinceMillis(start))
	if err != nil {
		mapped := mapError(err)
		telemetry.Error("structuring request failed", map[string]any{
			"text_hash": key[:12],
			"error":     err.Error(),
		})
		return "", mapped
	}
	located, err := LocateJSON(reply)
	if err != nil {
		telemetry.Error("structuring reply unparsable", map[string]any{
			"text_hash":   key[:12],
			"reply_bytes": len(reply),
		})
		return "", err
	}
	return located, nil
}

func mapError(err error) error {
	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return fmt.Errorf("%w: %w", ErrNotConfigured, err)
	case errors.As(err, &statusErr):
		return fmt.Errorf("%w: %w", ErrServiceRejected, err)
	case errors.Is(err, llm.ErrEmptyReply):
		return fmt.Errorf("%w: %w", ErrUnparsableReply, err)
	default:
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrServiceRejected):
		return "rejected"
	case errors.Is(err, ErrUnparsableReply):
		return "unparsable"
	default:
		return "unavailable"
	}
}
