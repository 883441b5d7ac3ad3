package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps short names accepted in CHRONOS_LLM_OPENAI_MODEL to
// OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-4.1":     "gpt-4.1",
	"gpt-mini":    "gpt-4.1-mini",
	"gpt-nano":    "gpt-4.1-nano",
}

var openaiRoles = map[Role]string{
	RoleUser:      openai.ChatMessageRoleUser,
	RoleAssistant: openai.ChatMessageRoleAssistant,
}

// OpenAIProvider talks to the Chat Completions API. Any compatible gateway
// works through BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for the OpenAI API.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	cfg.Model = resolveModel(cfg.Model, openaiModels)
	return newOpenAIProviderRaw(cfg, nil)
}

// newOpenAIProviderRaw skips model-name resolution, for gateways with their
// own model namespace. A nil httpClient keeps the SDK default.
func newOpenAIProviderRaw(cfg OpenAIConfig, httpClient *http.Client) (*OpenAIProvider, error) {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if httpClient != nil {
		conf.HTTPClient = httpClient
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(conf), model: cfg.Model}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            openaiMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("openai: reply has no choices")}
	}

	choice := resp.Choices[0]
	text := choice.Message.Content
	switch choice.FinishReason {
	case openai.FinishReasonLength:
		return nil, &ErrMaxTokensExceeded{Content: text}
	case openai.FinishReasonContentFilter:
		return nil, &ErrInvalidResponse{Content: text, Err: errors.New("openai: reply withheld by content filter")}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("openai: empty reply")}
	}

	return &Response{
		Text:       text,
		Model:      resp.Model,
		StopReason: "end",
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// openaiMessages flattens the system instruction and history into the chat
// message list. Unknown roles are sent as user turns.
func openaiMessages(req Request) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role, ok := openaiRoles[m.Role]
		if !ok {
			role = openai.ChatMessageRoleUser
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

// classifyOpenAIError maps SDK errors onto the package's error types by HTTP
// status. Errors without a status are treated as an unreachable provider.
func classifyOpenAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusBadRequest, status == http.StatusUnauthorized, status == http.StatusForbidden, status == http.StatusNotFound:
		return fmt.Errorf("openai: request rejected (%d): %w", status, err)
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
