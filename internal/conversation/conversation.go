package conversation

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation. Messages are never edited after
// they are appended.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered list of messages, oldest first.
type Conversation []Message

// Clone returns an independent copy. Saved snapshots must not share a
// backing array with the live conversation.
func (c Conversation) Clone() Conversation {
	if c == nil {
		return Conversation{}
	}
	out := make(Conversation, len(c))
	copy(out, c)
	return out
}

// Last returns the most recent message regardless of role.
func (c Conversation) Last() (Message, bool) {
	if len(c) == 0 {
		return Message{}, false
	}
	return c[len(c)-1], true
}

// Contents joins every message's content with newlines.
func (c Conversation) Contents() string {
	parts := make([]string, len(c))
	for i, m := range c {
		parts[i] = m.Content
	}
	return strings.Join(parts, "\n")
}

func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
