package llm

import (
	"context"
	"sync"
)

// DefaultMaxTokens bounds replies of replayed dialogues.
const DefaultMaxTokens = 2048

// ProviderOpener opens dialogues on any Provider by replaying the whole
// history on every turn.
type ProviderOpener struct {
	Provider  Provider
	MaxTokens int
}

// NewProviderOpener returns an Opener backed by p.
func NewProviderOpener(p Provider) *ProviderOpener {
	return &ProviderOpener{Provider: p, MaxTokens: DefaultMaxTokens}
}

func (o *ProviderOpener) OpenDialogue(_ context.Context, system string) (Dialogue, error) {
	maxTokens := o.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &replayDialogue{provider: o.Provider, system: system, maxTokens: maxTokens}, nil
}

// replayDialogue keeps history locally and sends it in full with each turn.
type replayDialogue struct {
	mu        sync.Mutex
	provider  Provider
	system    string
	maxTokens int
	history   []Message
}

func (d *replayDialogue) Send(ctx context.Context, message string) (*Response, error) {
	d.mu.Lock()
	msgs := make([]Message, len(d.history), len(d.history)+1)
	copy(msgs, d.history)
	d.mu.Unlock()

	msgs = append(msgs, Message{Role: RoleUser, Content: message})
	resp, err := d.provider.Generate(ctx, Request{
		System:    d.system,
		Messages:  msgs,
		MaxTokens: d.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.history = append(d.history,
		Message{Role: RoleUser, Content: message},
		Message{Role: RoleAssistant, Content: resp.Text},
	)
	d.mu.Unlock()
	return resp, nil
}

func (d *replayDialogue) ModelID() string {
	return d.provider.ModelID()
}
