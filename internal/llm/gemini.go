package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider implements Provider using the Google Gemini SDK. It also
// implements Opener with the SDK's native chat sessions, so history is kept
// by the client rather than replayed by us.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := geminiConfig(req.System, req.MaxTokens, req.Temperature)
	contents := buildGeminiContents(req.Messages)

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return p.toResponse(result)
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// OpenDialogue starts a native Gemini chat with the given system instruction.
func (p *GeminiProvider) OpenDialogue(ctx context.Context, system string) (Dialogue, error) {
	chat, err := p.client.Chats.Create(ctx, p.model, geminiConfig(system, 0, 0), nil)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return &geminiDialogue{provider: p, chat: chat}, nil
}

type geminiDialogue struct {
	provider *GeminiProvider
	chat     *genai.Chat
}

func (d *geminiDialogue) Send(ctx context.Context, message string) (*Response, error) {
	result, err := d.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return d.provider.toResponse(result)
}

func (d *geminiDialogue) ModelID() string {
	return d.provider.model
}

func geminiConfig(system string, maxTokens int, temperature float64) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if temperature > 0 {
		temp := float32(temperature)
		config.Temperature = &temp
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}

func (p *GeminiProvider) toResponse(result *genai.GenerateContentResponse) (*Response, error) {
	text := result.Text()
	if text == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no text in Gemini response")}
	}

	resp := &Response{
		Text:       text,
		Model:      p.model,
		StopReason: mapGeminiStopReason(result),
	}
	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case "STOP":
			return "end"
		case "MAX_TOKENS":
			return "max_tokens"
		}
	}
	return "end"
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return mapGeminiStatus(apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return mapGeminiStatus(apiErrPtr.Code, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

func mapGeminiStatus(code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case code >= 500:
		return &ErrProviderUnavailable{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
