package history

import (
	"path/filepath"
	"testing"

	"golang.org/x/term"
)

var _ term.History = (*Store)(nil)

func openTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := Open(":memory:", limit)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndAt(t *testing.T) {
	s := openTestStore(t, 10)
	s.Add("first")
	s.Add("second")
	s.Add("third")

	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if got := s.At(0); got != "third" {
		t.Errorf("At(0) = %q, want %q", got, "third")
	}
	if got := s.At(2); got != "first" {
		t.Errorf("At(2) = %q, want %q", got, "first")
	}
}

func TestAddSkipsBlankAndRepeats(t *testing.T) {
	s := openTestStore(t, 10)
	s.Add("same")
	s.Add("same")
	s.Add("   ")
	s.Add("")
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestLimit(t *testing.T) {
	s := openTestStore(t, 2)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if s.At(1) != "b" {
		t.Errorf("oldest = %q, want %q", s.At(1), "b")
	}
}

func TestAtOutOfRangePanics(t *testing.T) {
	s := openTestStore(t, 10)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.At(0)
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path, 3)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, line := range []string{"one", "two", "three", "four"} {
		s.Add(line)
	}
	s.Close()

	reopened, err := Open(path, 3)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if reopened.Len() != 3 {
		t.Fatalf("len = %d, want 3", reopened.Len())
	}
	want := []string{"four", "three", "two"}
	for i, w := range want {
		if got := reopened.At(i); got != w {
			t.Errorf("At(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestZeroLimitDisables(t *testing.T) {
	s := openTestStore(t, 0)
	s.Add("ignored")
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
}
