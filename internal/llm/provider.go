package llm

import "context"

// Provider is the core abstraction for single-shot LLM interaction.
// Consumers call Generate with a Request and receive the model's text.
type Provider interface {
	// Generate sends the full conversation to the LLM and returns its reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Dialogue is a stateful conversation with the model. The dialogue keeps
// its own history; callers only send the next user message.
type Dialogue interface {
	// Send submits one user message and returns the model's reply. A failed
	// send leaves the dialogue history unchanged.
	Send(ctx context.Context, message string) (*Response, error)

	// ModelID returns the model serving this dialogue.
	ModelID() string
}

// Opener creates dialogues bound to a system instruction.
type Opener interface {
	OpenDialogue(ctx context.Context, system string) (Dialogue, error)
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history, oldest first. The last entry is
	// the message being answered.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Text is the generated reply, typically markdown.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
