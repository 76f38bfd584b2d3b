// Package gemini adapts Google Gemini to llm.Client.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"buildyourcv/internal/llm"
	"buildyourcv/internal/shared/telemetry"
)

const (
	DefaultModel = "gemini-1.5-flash"
	providerName = "gemini"
)

// Config selects the Gemini model and sampling settings.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

// Client implements llm.Client on the Gemini API.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewClient creates a Gemini client. Close releases it.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required: %w", llm.ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c := &Client{
		client:      client,
		model:       DefaultModel,
		temperature: 0.1,
		maxTokens:   8192,
	}
	if m := strings.TrimSpace(cfg.Model); m != "" {
		c.model = m
	}
	if cfg.Temperature > 0 {
		c.temperature = cfg.Temperature
	}
	if cfg.MaxTokens > 0 {
		c.maxTokens = cfg.MaxTokens
	}
	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)
	model.SetMaxOutputTokens(c.maxTokens)
	model.ResponseMIMEType = "application/json"
	if strings.TrimSpace(req.System) != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return "", classify(err)
	}
	if resp.UsageMetadata != nil {
		telemetry.Debug("llm response", map[string]any{
			"model":             c.model,
			"prompt_tokens":     resp.UsageMetadata.PromptTokenCount,
			"completion_tokens": resp.UsageMetadata.CandidatesTokenCount,
			"total_tokens":      resp.UsageMetadata.TotalTokenCount,
		})
	}
	return extractText(resp)
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response: %w", llm.ErrEmptyReply)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("no content in response: %w", llm.ErrEmptyReply)
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no text parts in response: %w", llm.ErrEmptyReply)
	}
	return out, nil
}

// classify maps gRPC and REST failures onto the llm error set.
func classify(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &llm.StatusError{Provider: providerName, Code: http.StatusUnprocessableEntity, Message: blocked.Error()}
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &llm.StatusError{Provider: providerName, Code: gErr.Code, Message: gErr.Message}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.Unavailable(providerName, err)
	}
	st, ok := status.FromError(err)
	if !ok {
		return llm.Unavailable(providerName, err)
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return llm.Unavailable(providerName, err)
	case codes.Canceled:
		return context.Canceled
	}
	return &llm.StatusError{Provider: providerName, Code: httpStatus(st.Code()), Message: st.Message()}
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

var _ llm.Client = (*Client)(nil)
