package llm

import (
	"context"
	"fmt"

	"github.com/jwalitptl/patient-notes-api/internal/config"
)

// Provider turns a prompt into generated text. Implementations are
// stateless adapters over external inference APIs; one blocking round trip
// per call, no retries.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewProvider selects a concrete provider from configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
