package config

import (
	"fmt"
	"os"
	"slices"
	"time"
)

const (
	EnvLLMDefaultProvider = "PROMPTVAULT_LLM_DEFAULT_PROVIDER"
	EnvLLMOpenAIModel     = "PROMPTVAULT_LLM_OPENAI_MODEL"
	EnvLLMGeminiModel     = "PROMPTVAULT_LLM_GEMINI_MODEL"
	EnvLLMTimeout         = "PROMPTVAULT_LLM_TIMEOUT"

	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

var knownProviders = []string{"openai", "gemini"}

// LLMConfig holds draft generation provider settings. API keys are
// never read from TOML; they come from the standard provider
// environment variables.
type LLMConfig struct {
	DefaultProvider string `toml:"default_provider"`
	OpenAIModel     string `toml:"openai_model"`
	GeminiModel     string `toml:"gemini_model"`
	Timeout         string `toml:"timeout"`
}

// OpenAIAPIKey returns the OpenAI API key from the environment.
func (c *LLMConfig) OpenAIAPIKey() string {
	return os.Getenv(EnvOpenAIAPIKey)
}

// GeminiAPIKey returns the Gemini API key from the environment.
func (c *LLMConfig) GeminiAPIKey() string {
	return os.Getenv(EnvGeminiAPIKey)
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *LLMConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *LLMConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *LLMConfig) Merge(overlay *LLMConfig) {
	if overlay.DefaultProvider != "" {
		c.DefaultProvider = overlay.DefaultProvider
	}
	if overlay.OpenAIModel != "" {
		c.OpenAIModel = overlay.OpenAIModel
	}
	if overlay.GeminiModel != "" {
		c.GeminiModel = overlay.GeminiModel
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *LLMConfig) loadDefaults() {
	if c.DefaultProvider == "" {
		c.DefaultProvider = "gemini"
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-4o"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.0-flash"
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
}

func (c *LLMConfig) loadEnv() {
	if v := os.Getenv(EnvLLMDefaultProvider); v != "" {
		c.DefaultProvider = v
	}
	if v := os.Getenv(EnvLLMOpenAIModel); v != "" {
		c.OpenAIModel = v
	}
	if v := os.Getenv(EnvLLMGeminiModel); v != "" {
		c.GeminiModel = v
	}
	if v := os.Getenv(EnvLLMTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *LLMConfig) validate() error {
	if !slices.Contains(knownProviders, c.DefaultProvider) {
		return fmt.Errorf("unknown default_provider: %q", c.DefaultProvider)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
