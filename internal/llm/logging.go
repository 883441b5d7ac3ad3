package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kellen/chronos/internal/store"
)

// LoggingDialogue is a decorator that records every model call as an event
// and a structured log line.
type LoggingDialogue struct {
	inner     Dialogue
	provider  string
	system    string
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps a Dialogue with event logging. A nil repo disables event
// recording; a nil logger uses slog.Default.
func WithLogging(d Dialogue, provider, system string, repo store.EventRepo, logger *slog.Logger) Dialogue {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingDialogue{
		inner:     d,
		provider:  provider,
		system:    system,
		eventRepo: repo,
		logger:    logger,
	}
}

func (l *LoggingDialogue) Send(ctx context.Context, message string) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Send(ctx, message)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeTurn(l.system, message),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = resp.Text
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed",
			"provider", l.provider, "model", data.Model, "purpose", purpose,
			"latency_ms", latencyMs, "error", err)
	} else {
		l.logger.Info("llm request",
			"provider", l.provider, "model", data.Model, "purpose", purpose,
			"latency_ms", latencyMs,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	// Record the event but don't fail the request if recording fails.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.logger.Warn("failed to record LLM request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingDialogue) ModelID() string {
	return l.inner.ModelID()
}

// serializeTurn builds a readable representation of one dialogue turn.
func serializeTurn(system, message string) string {
	var b strings.Builder

	if system != "" {
		b.WriteString("[system]\n")
		b.WriteString(system)
		b.WriteString("\n\n")
	}

	b.WriteString("[user]\n")
	b.WriteString(message)
	b.WriteString("\n")

	return b.String()
}
