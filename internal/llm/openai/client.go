package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"buildyourcv/internal/llm"
	"buildyourcv/internal/shared/telemetry"
)

const (
	DefaultBaseURL     = "https://api.deepseek.com/v1"
	DefaultModel       = "deepseek-chat"
	DefaultTemperature = float32(0.1)
	DefaultMaxTokens   = 8192
	defaultTimeout     = 120 * time.Second
	providerName       = "openai"
)

// Config selects an OpenAI-compatible chat completions endpoint.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client implements llm.Client using chat completions.
type Client struct {
	inner       *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewClient constructs a client. Empty fields fall back to the DeepSeek defaults.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required: %w", llm.ErrNotConfigured)
	}
	transportCfg := openai.DefaultConfig(cfg.APIKey)
	transportCfg.BaseURL = DefaultBaseURL
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		transportCfg.BaseURL = strings.TrimRight(base, "/")
	}
	if cfg.HTTPClient != nil {
		transportCfg.HTTPClient = cfg.HTTPClient
	} else {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		transportCfg.HTTPClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		inner:       openai.NewClientWithConfig(transportCfg),
		model:       DefaultModel,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
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
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.User})

	resp, err := c.inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", classify(err)
	}
	logUsage(c.model, resp.Usage)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices: %w", llm.ErrEmptyReply)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content: %w", llm.ErrEmptyReply)
	}
	return content, nil
}

// classify maps go-openai errors onto the llm error set.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &llm.StatusError{Provider: providerName, Code: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &llm.StatusError{Provider: providerName, Code: reqErr.HTTPStatusCode, Message: msg}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return llm.Unavailable(providerName, err)
}

func logUsage(model string, usage openai.Usage) {
	telemetry.Debug("llm response", map[string]any{
		"model":             model,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
	})
}

var _ llm.Client = (*Client)(nil)
