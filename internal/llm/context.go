package llm

import (
	"context"
	"time"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// PurposeUnknown labels requests sent without WithPurpose.
const PurposeUnknown = "unknown"

// WithPurpose attaches a purpose label to the context for event logging.
// An empty purpose leaves ctx unchanged.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return PurposeUnknown
}

// WithTurnTimeout bounds every dialogue opened by o: each Send, retries
// included, must finish within timeout. A non-positive timeout returns o.
func WithTurnTimeout(o Opener, timeout time.Duration) Opener {
	if timeout <= 0 {
		return o
	}
	return &timeoutOpener{inner: o, timeout: timeout}
}

type timeoutOpener struct {
	inner   Opener
	timeout time.Duration
}

func (o *timeoutOpener) OpenDialogue(ctx context.Context, system string) (Dialogue, error) {
	d, err := o.inner.OpenDialogue(ctx, system)
	if err != nil {
		return nil, err
	}
	return &timeoutDialogue{inner: d, timeout: o.timeout}, nil
}

type timeoutDialogue struct {
	inner   Dialogue
	timeout time.Duration
}

func (d *timeoutDialogue) Send(ctx context.Context, message string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.inner.Send(ctx, message)
}

func (d *timeoutDialogue) ModelID() string { return d.inner.ModelID() }
