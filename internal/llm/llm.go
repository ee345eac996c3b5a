package llm

import (
	"context"
	"errors"

	"github.com/ehrlich-b/ask/internal/conversation"
)

var (
	// ErrMissingAPIKey is returned by providers that need a credential
	// when none was configured.
	ErrMissingAPIKey = errors.New("no API key: set CLAUDE_API_KEY")
	ErrEmptyResponse = errors.New("model returned no text")
)

// Provider turns a conversation into the next assistant reply.
type Provider interface {
	// Complete sends the whole conversation and returns the reply text
	Complete(ctx context.Context, messages conversation.Conversation) (string, error)

	// Name returns the provider name
	Name() string
}
