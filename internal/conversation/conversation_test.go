package conversation

import "testing"

func TestCloneIsIndependent(t *testing.T) {
	orig := Conversation{User("hi"), Assistant("hello")}
	snap := orig.Clone()

	orig[0].Content = "changed"
	orig = append(orig, User("more"))

	if snap[0].Content != "hi" {
		t.Errorf("snapshot content = %q, want %q", snap[0].Content, "hi")
	}
	if len(snap) != 2 {
		t.Errorf("snapshot len = %d, want 2", len(snap))
	}
}

func TestCloneNil(t *testing.T) {
	var c Conversation
	got := c.Clone()
	if got == nil || len(got) != 0 {
		t.Fatalf("Clone(nil) = %#v, want empty non-nil", got)
	}
}

func TestLast(t *testing.T) {
	if _, ok := (Conversation{}).Last(); ok {
		t.Fatal("expected no last message on empty conversation")
	}
	c := Conversation{User("a"), Assistant("b")}
	m, ok := c.Last()
	if !ok || m.Content != "b" || m.Role != RoleAssistant {
		t.Errorf("Last() = %+v, %v", m, ok)
	}
}

func TestContents(t *testing.T) {
	c := Conversation{User("a"), Assistant("b")}
	if got := c.Contents(); got != "a\nb" {
		t.Errorf("Contents() = %q, want %q", got, "a\nb")
	}
	if got := (Conversation{}).Contents(); got != "" {
		t.Errorf("empty Contents() = %q", got)
	}
}
