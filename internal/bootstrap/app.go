package bootstrap

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"buildyourcv/internal/cv"
	"buildyourcv/internal/llm"
	"buildyourcv/internal/llm/gemini"
	openai "buildyourcv/internal/llm/openai"
	"buildyourcv/internal/shared/config"
	"buildyourcv/internal/shared/server"
	"buildyourcv/internal/shared/telemetry"
	"buildyourcv/internal/structuring"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	openAIModel   = "gpt-4o-mini"
)

// App holds shared dependencies.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	LLM       llm.Client
	Requester *structuring.Requester
	CVService *cv.Service
	CVHandler *cv.Handler

	closers []func() error
}

// Build prepares dependencies from cfg and wires routes.
func Build(cfg config.Config) (*App, error) {
	client, closer, err := buildLLMClient(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	app := BuildWithClient(cfg, client)
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

// BuildWithClient wires the app around an existing structuring client.
func BuildWithClient(cfg config.Config, client llm.Client) *App {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	requester := structuring.NewRequester(client, cfg.LLMTimeout)
	svc := cv.NewService(requester)
	handler := cv.NewHandler(svc)

	return &App{
		Config:    cfg,
		Router:    server.NewRouter(cfg, handler),
		LLM:       client,
		Requester: requester,
		CVService: svc,
		CVHandler: handler,
	}
}

// Close releases provider clients.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildLLMClient selects the provider named by cfg. Without an API key the
// placeholder client is used and structuring requests report not configured.
func buildLLMClient(ctx context.Context, cfg config.Config) (llm.Client, func() error, error) {
	if !cfg.Configured() {
		telemetry.Warn("llm.not_configured", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, nil, nil
	}

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModel,
			Temperature: openai.DefaultTemperature,
			MaxTokens:   openai.DefaultMaxTokens,
		})
		if err != nil {
			return nil, nil, err
		}
		logProvider(cfg.LLMProvider, client.Model())
		return llm.WithRetry(client), client.Close, nil
	default:
		oc := openai.Config{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		}
		if cfg.LLMProvider == config.ProviderOpenAI {
			if oc.BaseURL == "" {
				oc.BaseURL = openAIBaseURL
			}
			if oc.Model == "" {
				oc.Model = openAIModel
			}
		}
		client, err := openai.NewClient(oc)
		if err != nil {
			return nil, nil, err
		}
		logProvider(cfg.LLMProvider, client.Model())
		return llm.WithRetry(client), nil, nil
	}
}

func logProvider(provider, model string) {
	telemetry.Info("llm.configured", map[string]any{
		"provider": provider,
		"model":    model,
	})
}
