package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiConfigSystemInstruction(t *testing.T) {
	cfg := geminiConfig("You are a historian.", 0, 0)
	if cfg.SystemInstruction == nil || len(cfg.SystemInstruction.Parts) != 1 {
		t.Fatal("expected a single system instruction part")
	}
	if cfg.SystemInstruction.Parts[0].Text != "You are a historian." {
		t.Errorf("system = %q", cfg.SystemInstruction.Parts[0].Text)
	}
	if cfg.MaxOutputTokens != 0 || cfg.Temperature != nil {
		t.Error("expected provider defaults for max tokens and temperature")
	}

	cfg = geminiConfig("", 512, 0.5)
	if cfg.SystemInstruction != nil {
		t.Error("expected no system instruction")
	}
	if cfg.MaxOutputTokens != 512 {
		t.Errorf("max tokens = %d, want 512", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.5 {
		t.Error("expected temperature 0.5")
	}
}

func TestBuildGeminiContentsRoles(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "Who built the pyramids?"},
		{Role: RoleAssistant, Content: "Egyptian workers."},
	})
	if len(contents) != 2 {
		t.Fatalf("got %d contents, want 2", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Errorf("roles = %q, %q", contents[0].Role, contents[1].Role)
	}
}

func TestGeminiToResponse(t *testing.T) {
	p := &GeminiProvider{model: "gemini-2.5-flash"}

	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: "The Nile."}}},
			FinishReason: "STOP",
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     4,
			CandidatesTokenCount: 3,
			TotalTokenCount:      7,
		},
	}
	resp, err := p.toResponse(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "The Nile." || resp.StopReason != "end" || resp.Usage.TotalTokens != 7 {
		t.Errorf("response = %+v", resp)
	}

	_, err = p.toResponse(&genai.GenerateContentResponse{})
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}
