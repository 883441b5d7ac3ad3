package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Attribution headers OpenRouter uses to list the calling app.
	openRouterReferer = "https://github.com/kellen/chronos"
	openRouterTitle   = "Chronos"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused;
// model ids are passed through unmapped ("google/gemini-2.5-flash").
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openrouter model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	client := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, client)
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport adds OpenRouter's app attribution headers.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}
