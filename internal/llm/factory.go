package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kellen/chronos/internal/store"
)

// NewProvider creates the base Provider selected by cfg.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch cfg.Provider {
	case "anthropic":
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		p, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}

// NewOpener creates an Opener from configuration. Dialogues it opens are
// wrapped with timeout, retry and logging middleware:
// caller → timeout → retry → logging → base.
// Providers with native chat sessions are used directly; the rest replay
// history through Generate.
func NewOpener(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Opener, error) {
	p, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var base Opener
	if o, ok := p.(Opener); ok {
		base = o
	} else {
		po := NewProviderOpener(p)
		if cfg.MaxTokens > 0 {
			po.MaxTokens = cfg.MaxTokens
		}
		base = po
	}

	return WithTurnTimeout(Instrument(base, cfg.Provider, cfg.Retry, events, logger), cfg.Timeout), nil
}

// Instrument wraps every dialogue opened by o with retry and logging.
func Instrument(o Opener, provider string, retry RetryConfig, events store.EventRepo, logger *slog.Logger) Opener {
	return &instrumentedOpener{
		inner:    o,
		provider: provider,
		retry:    retry,
		events:   events,
		logger:   logger,
	}
}

type instrumentedOpener struct {
	inner    Opener
	provider string
	retry    RetryConfig
	events   store.EventRepo
	logger   *slog.Logger
}

func (o *instrumentedOpener) OpenDialogue(ctx context.Context, system string) (Dialogue, error) {
	d, err := o.inner.OpenDialogue(ctx, system)
	if err != nil {
		return nil, err
	}
	logged := WithLogging(d, o.provider, system, o.events, o.logger)
	return WithRetry(logged, o.retry), nil
}
