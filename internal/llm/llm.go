package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Client abstracts the chat-completion providers used to structure CV text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is one system + user prompt exchange.
type Request struct {
	System string
	User   string
}

var (
	// ErrNotConfigured is returned when no provider credentials are set.
	ErrNotConfigured = errors.New("LLM provider not configured")
	// ErrUnavailable wraps transport failures: DNS, refused connections, timeouts.
	ErrUnavailable = errors.New("LLM provider unavailable")
	// ErrEmptyReply is returned when the provider answered without content.
	ErrEmptyReply = errors.New("LLM reply empty")
)

// StatusError is a non-success answer from the provider.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s http status %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s http status %d: %s", e.Provider, e.Code, e.Message)
}

// Temporary reports whether the provider may succeed on retry.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// Unavailable wraps err so that errors.Is(err, ErrUnavailable) holds.
func Unavailable(provider string, err error) error {
	return fmt.Errorf("%s: %w: %w", provider, ErrUnavailable, err)
}

// PlaceholderClient stands in when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
