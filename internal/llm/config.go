package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration. Field tags are read by
// internal/config under the CHRONOS_LLM_ prefix.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock".
	// Empty means discover from well-known API key variables.
	Provider string `env:"PROVIDER"`

	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"RETRY_"`

	// MaxTokens bounds replies for providers without native chat sessions.
	MaxTokens int `env:"MAX_TOKENS" envDefault:"2048"`

	// Timeout is the maximum duration for a single chat turn
	// (including retries). Default: 60s.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"claude-haiku"`
	BaseURL string `env:"BASE_URL"` // Optional. Override for proxies.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-2.5-flash"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"BASE_URL"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		MaxTokens: DefaultMaxTokens,
		Timeout:   60 * time.Second,
	}
}

// Resolve fills in the provider and key when they were not configured
// explicitly. An explicit provider wins; otherwise the well-known key
// variables are probed. Returns ErrNoCredentials when nothing usable is found.
func (c Config) Resolve() (Config, error) {
	if c.Provider != "" {
		err := c.Validate()
		if err == nil {
			return c, nil
		}
		// An explicit provider may still take its key from the well-known
		// variables.
		if found, ok := discover(c); ok && found.Provider == c.Provider {
			return found, nil
		}
		return c, fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}

	found, ok := discover(c)
	if !ok {
		return c, ErrNoCredentials
	}
	return found, nil
}

// DiscoverConfig probes standard API key env vars in priority order
// (API_KEY → Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config
// for the first provider whose key is found. Returns (Config{}, false) if
// none found.
func DiscoverConfig() (Config, bool) {
	return discover(DefaultConfig())
}

func discover(cfg Config) (Config, bool) {
	// API_KEY is the historian's original Gemini credential variable.
	if k := os.Getenv("API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("CHRONOS_LLM_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("CHRONOS_LLM_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("CHRONOS_LLM_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("CHRONOS_LLM_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
