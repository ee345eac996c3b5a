package llm

import (
	"time"

	"github.com/ehrlich-b/ask/internal/config"
)

// NewProvider creates an LLM provider based on configuration
func NewProvider(cfg *config.Config, offline bool) Provider {
	if offline {
		return NewDummyProvider(300 * time.Millisecond)
	}
	return NewAnthropicProvider(AnthropicOptions{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxTokens:  cfg.MaxTokens,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.TimeoutDuration(),
		MaxRetries: 2,
	})
}

// NewTestProvider creates a fast dummy provider for testing
func NewTestProvider() Provider {
	return NewDummyProvider(time.Millisecond)
}
