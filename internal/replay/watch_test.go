package replay

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ehrlich-b/ask/internal/conversation"
)

func openTestWatcher(t *testing.T, s *Store) *Watcher {
	t.Helper()
	w, err := Watch(s)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

// waitChanged polls Changed the way the REPL does before each prompt.
func waitChanged(w *Watcher, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if w.Changed() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestWatcherIgnoresOwnWrites(t *testing.T) {
	s := openTestStore(t)
	w := openTestWatcher(t, s)

	if err := s.Save("demo", sampleConversation()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if waitChanged(w, 200*time.Millisecond) {
		t.Error("own save reported as outside change")
	}
}

func TestWatcherReportsOutsideWriteOnNextPoll(t *testing.T) {
	s := openTestStore(t)
	w := openTestWatcher(t, s)

	if err := s.Save("demo", sampleConversation()); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if w.Changed() {
		t.Fatal("own save reported as outside change")
	}

	other := NewStore(s.Path())
	if err := other.Save("extra", conversation.Conversation{conversation.User("from elsewhere")}); err != nil {
		t.Fatalf("other save: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if !w.Changed() {
		t.Fatal("outside write not reported on the first poll after it settled")
	}
	if w.Changed() {
		t.Error("outside write reported twice")
	}
}

func TestWatcherReportsChangeReadBySave(t *testing.T) {
	s := openTestStore(t)
	w := openTestWatcher(t, s)

	if err := s.Save("demo", sampleConversation()); err != nil {
		t.Fatalf("save: %v", err)
	}
	other := NewStore(s.Path())
	if err := other.Save("extra", conversation.Conversation{conversation.User("from elsewhere")}); err != nil {
		t.Fatalf("other save: %v", err)
	}
	if err := s.Save("third", sampleConversation()); err != nil {
		t.Fatalf("save: %v", err)
	}

	if !w.Changed() {
		t.Fatal("outside write lost after our own save")
	}
	if waitChanged(w, 200*time.Millisecond) {
		t.Error("outside write reported twice")
	}
}

func TestWatchCreatesMissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "sub", "dir", ".ask_replay"))
	w := openTestWatcher(t, s)

	if err := s.Save("demo", sampleConversation()); err != nil {
		t.Fatalf("save: %v", err)
	}
	other := NewStore(s.Path())
	if _, err := other.Delete("demo"); err != nil {
		t.Fatalf("other delete: %v", err)
	}
	if !waitChanged(w, 2*time.Second) {
		t.Error("outside delete in a created dir not reported")
	}
}
