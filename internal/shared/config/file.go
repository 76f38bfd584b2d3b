package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the YAML schema read from CONFIG_FILE.
type FileConfig struct {
	Port     string   `yaml:"port"`
	Env      string   `yaml:"env"`
	LogLevel string   `yaml:"logLevel"`
	CORS     []string `yaml:"corsAllowOrigins"`

	LLM struct {
		Provider       string `yaml:"provider"`
		Model          string `yaml:"model"`
		BaseURL        string `yaml:"base"`
		APIKey         string `yaml:"key"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"llm"`

	RateLimit struct {
		RPS   *float64 `yaml:"rps"`
		Burst *int     `yaml:"burst"`
	} `yaml:"rateLimit"`
}

func loadFile(path string) (FileConfig, error) {
	var fc FileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.Port, fc.Port)
	setString(&cfg.Env, fc.Env)
	setString(&cfg.LogLevel, fc.LogLevel)
	if len(fc.CORS) > 0 {
		cfg.CORSAllowOrigin = append([]string(nil), fc.CORS...)
	}
	setString(&cfg.LLMProvider, fc.LLM.Provider)
	setString(&cfg.LLMModel, fc.LLM.Model)
	setString(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	setString(&cfg.LLMAPIKey, fc.LLM.APIKey)
	if fc.LLM.TimeoutSeconds > 0 {
		cfg.LLMTimeout = secondsDuration(fc.LLM.TimeoutSeconds)
	}
	if fc.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *fc.RateLimit.RPS
	}
	if fc.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *fc.RateLimit.Burst
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
