package bootstrap

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildyourcv/internal/llm"
	"buildyourcv/internal/shared/config"
	"buildyourcv/internal/shared/telemetry"
	"buildyourcv/internal/structuring"
)

func TestBuildWithoutKeyUsesPlaceholder(t *testing.T) {
	telemetry.SetOutput(io.Discard)
	defer telemetry.SetOutput(os.Stdout)

	app, err := Build(config.Config{LLMProvider: config.ProviderDeepSeek})
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, llm.PlaceholderClient{}, app.LLM)
	assert.Equal(t, "dev", app.Config.Env)
	require.NotNil(t, app.Router)

	_, err = app.Requester.Request(context.Background(), "Jane Doe, engineer")
	assert.ErrorIs(t, err, structuring.ErrNotConfigured)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestBuildSelectsRetryingProvider(t *testing.T) {
	telemetry.SetOutput(io.Discard)
	defer telemetry.SetOutput(os.Stdout)

	for _, provider := range []string{config.ProviderDeepSeek, config.ProviderOpenAI} {
		t.Run(provider, func(t *testing.T) {
			app, err := Build(config.Config{LLMProvider: provider, LLMAPIKey: "sk-test"})
			require.NoError(t, err)
			defer app.Close()
			_, placeholder := app.LLM.(llm.PlaceholderClient)
			assert.False(t, placeholder)
			assert.NotNil(t, app.CVService)
		})
	}
}
