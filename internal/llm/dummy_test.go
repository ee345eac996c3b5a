package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ehrlich-b/ask/internal/conversation"
)

func TestDummyProvider_Greeting(t *testing.T) {
	provider := NewTestProvider()

	resp, err := provider.Complete(context.Background(), conversation.Conversation{conversation.User("hello")})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !strings.Contains(resp, "Hello!") {
		t.Fatalf("unexpected greeting reply: %q", resp)
	}
}

func TestDummyProvider_ReadText(t *testing.T) {
	provider := NewTestProvider()

	msgs := conversation.Conversation{conversation.User("Please read this text: one two three")}
	resp, err := provider.Complete(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !strings.Contains(resp, "3 words") {
		t.Fatalf("expected word count in reply, got %q", resp)
	}
}

func TestDummyProvider_UsesLastUserMessage(t *testing.T) {
	provider := NewTestProvider()

	msgs := conversation.Conversation{
		conversation.User("what is go"),
		conversation.Assistant("a language"),
	}
	resp, err := provider.Complete(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !strings.Contains(resp, `"what is go"`) {
		t.Fatalf("reply should echo last user message, got %q", resp)
	}
}

func TestDummyProvider_Cancelled(t *testing.T) {
	provider := NewDummyProvider(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Complete(ctx, conversation.Conversation{conversation.User("x")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
