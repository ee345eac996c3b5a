package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ehrlich-b/ask/internal/conversation"
)

// DummyProvider answers without a network call. It backs --offline and
// tests that need a provider with no credentials.
type DummyProvider struct {
	delay time.Duration
}

// NewDummyProvider creates a new dummy LLM provider
func NewDummyProvider(delay time.Duration) *DummyProvider {
	return &DummyProvider{delay: delay}
}

func (d *DummyProvider) Name() string {
	return "dummy"
}

// Complete replies to the last user message with canned text
func (d *DummyProvider) Complete(ctx context.Context, messages conversation.Conversation) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(d.delay):
	}

	var lastUserMessage string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == conversation.RoleUser {
			lastUserMessage = messages[i].Content
			break
		}
	}
	lower := strings.ToLower(lastUserMessage)

	if strings.HasPrefix(lastUserMessage, "Please read this text:") {
		words := len(strings.Fields(strings.TrimPrefix(lastUserMessage, "Please read this text:")))
		return fmt.Sprintf("I've read the text (%d words). What would you like to know about it?", words), nil
	}

	if isGreeting(lower) {
		return "Hello! I'm the offline assistant built into **ask**. How can I help you today?", nil
	}

	return fmt.Sprintf("You said: %q. This is an offline reply; unset --offline to talk to the real model.",
		lastUserMessage), nil
}

func isGreeting(lower string) bool {
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool { return r < 'a' || r > 'z' }) {
		if w == "hello" || w == "hi" || w == "hey" {
			return true
		}
	}
	return false
}
