// Package llm talks to the hosted language models used to structure imported recipes.
package llm

import (
	"context"
	"fmt"

	"meal-planner/internal/config"
)

// Usage tracks the tokens consumed by a request.
type Usage struct {
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
}

// ContentResponse contains the generated text and its token usage.
type ContentResponse struct {
	Content string
	Usage   Usage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// NewTextGenerator returns the generator selected by cfg.LLMProvider ("groq" or "gemini").
// It returns nil, nil when the selected provider has no API key.
func NewTextGenerator(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	switch cfg.LLMProvider {
	case "", "groq":
		if cfg.GroqAPIKey == "" {
			return nil, nil
		}
		return NewGroqClient(cfg), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		client, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
