package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"CONFIG_FILE", "PORT", "ENV", "LOG_LEVEL", "CORS_ALLOW_ORIGINS",
	"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_API_KEY",
	"DEEPSEEK_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY",
	"LLM_TIMEOUT_SECONDS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigin)
	assert.Equal(t, ProviderDeepSeek, cfg.LLMProvider)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.False(t, cfg.Configured())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	assert.True(t, cfg.Configured())
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func TestProviderSpecificKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("DEEPSEEK_API_KEY", "wrong")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "g-key", cfg.LLMAPIKey)
}

func TestUnknownProviderRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "bard")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown LLM_PROVIDER")
}

func TestInvalidNumbersRejected(t *testing.T) {
	for key, value := range map[string]string{
		"LLM_TIMEOUT_SECONDS": "soon",
		"RATE_LIMIT_RPS":      "-1",
		"RATE_LIMIT_BURST":    "x",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestConfigFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `port: "7070"
logLevel: debug
corsAllowOrigins: [https://cv.example]
llm:
  provider: openai
  model: gpt-4o-mini
  base: https://llm.example/v1
  key: file-key
  timeoutSeconds: 45
rateLimit:
  rps: 0
  burst: 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LLM_MODEL", "gpt-4.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://cv.example"}, cfg.CORSAllowOrigin)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "gpt-4.1", cfg.LLMModel)
	assert.Equal(t, "https://llm.example/v1", cfg.LLMBaseURL)
	assert.Equal(t, "file-key", cfg.LLMAPIKey)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 0.0, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.RateLimitBurst)
}

func TestConfigFileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.ErrorContains(t, err, "read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [unclosed"), 0o600))
	t.Setenv("CONFIG_FILE", bad)
	_, err = Load()
	assert.ErrorContains(t, err, "parse config file")
}
