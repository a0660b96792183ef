package llm

import "github.com/jwalitptl/patient-notes-api/internal/config"

func configFor(provider, key string) config.LLMConfig {
	return config.LLMConfig{
		Provider:    provider,
		Model:       "gpt-4o-mini",
		APIKey:      key,
		Temperature: 0.3,
		MaxTokens:   1000,
	}
}
