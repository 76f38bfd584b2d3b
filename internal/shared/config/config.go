package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported LLM providers.
const (
	ProviderDeepSeek = "deepseek"
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string
	LLMProvider     string
	LLMModel        string
	LLMBaseURL      string
	LLMAPIKey       string
	LLMTimeout      time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

// Configured reports whether a provider key is available.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.LLMAPIKey) != ""
}

// Load reads configuration from an optional YAML file named by CONFIG_FILE,
// then environment variables, which take precedence.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:            "8080",
		Env:             "dev",
		LogLevel:        "info",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LLMProvider:     ProviderDeepSeek,
		LLMTimeout:      120 * time.Second,
		RateLimitRPS:    1,
		RateLimitBurst:  10,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		fc.apply(&cfg)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Env = normalizeEnv(cfg.Env)

	provider, err := normalizeProvider(cfg.LLMProvider)
	if err != nil {
		return Config{}, err
	}
	cfg.LLMProvider = provider
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.LLMProvider = getEnv("LLM_PROVIDER", cfg.LLMProvider)
	cfg.LLMModel = getEnv("LLM_MODEL", cfg.LLMModel)
	cfg.LLMBaseURL = getEnv("LLM_BASE_URL", cfg.LLMBaseURL)

	cfg.LLMAPIKey = getEnv("LLM_API_KEY", cfg.LLMAPIKey)
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case ProviderGemini:
		cfg.LLMAPIKey = getEnv("GEMINI_API_KEY", cfg.LLMAPIKey)
	case ProviderOpenAI:
		cfg.LLMAPIKey = getEnv("OPENAI_API_KEY", cfg.LLMAPIKey)
	default:
		cfg.LLMAPIKey = getEnv("DEEPSEEK_API_KEY", cfg.LLMAPIKey)
	}

	if raw := os.Getenv("LLM_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || secs <= 0 {
			return fmt.Errorf("LLM_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.LLMTimeout = secondsDuration(secs)
	}
	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		rps, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || rps < 0 {
			return fmt.Errorf("RATE_LIMIT_RPS must be a non-negative number, got %q", raw)
		}
		cfg.RateLimitRPS = rps
	}
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		burst, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || burst < 0 {
			return fmt.Errorf("RATE_LIMIT_BURST must be a non-negative integer, got %q", raw)
		}
		cfg.RateLimitBurst = burst
	}
	return nil
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "", ProviderDeepSeek:
		return ProviderDeepSeek, nil
	case ProviderOpenAI, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unknown LLM_PROVIDER %q", raw)
	}
}

func secondsDuration(secs int) time.Duration {
	return time.Duration(secs) * time.Second
}
