package llm

import "strings"

// ModelCost holds per-million-token pricing for a model, in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter ("google/gemini-2.5-flash") and Gemini ("models/gemini-2.5-pro")
// prefixes are ignored, and short aliases resolve to their current model.
func LookupCost(modelID string) *ModelCost {
	if i := strings.LastIndexByte(modelID, '/'); i >= 0 {
		modelID = modelID[i+1:]
	}
	if alias, ok := modelAliases[modelID]; ok {
		modelID = alias
	}
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

var modelAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5",
	"claude-sonnet": "claude-sonnet-4-5",
	"claude-opus":   "claude-opus-4-5",
}

// modelCosts covers the models the historian is configured with by default
// and their usual alternatives. Prices from models.dev, 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Google (Gemini), the default provider.
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-2.0-flash-lite":  {0.075, 0.3},
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},
	"gemini-flash-latest":    {0.3, 2.5},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	// Anthropic
	"claude-3-5-haiku-latest": {0.8, 4},
	"claude-haiku-4-5":        {1, 5},
	"claude-sonnet-4-5":       {3, 15},
	"claude-opus-4-5":         {5, 25},
}
