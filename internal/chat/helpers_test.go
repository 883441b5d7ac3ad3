package chat

import (
	"context"
	"time"

	"github.com/kellen/chronos/internal/llm"
)

const (
	defaultWait  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)

// blockingOpener opens dialogues whose replies wait for gate to close.
type blockingOpener struct {
	gate chan struct{}
}

func (o *blockingOpener) OpenDialogue(context.Context, string) (llm.Dialogue, error) {
	return &blockingDialogue{gate: o.gate}, nil
}

type blockingDialogue struct {
	gate chan struct{}
}

func (d *blockingDialogue) Send(ctx context.Context, message string) (*llm.Response, error) {
	select {
	case <-d.gate:
		return &llm.Response{Text: "Phoenician settlers from Tyre.", Model: "blocking"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *blockingDialogue) ModelID() string { return "blocking" }
