package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ehrlich-b/ask/internal/conversation"
	"github.com/ehrlich-b/ask/internal/logger"
)

const fileVersion = 1

// ErrCorrupt is returned when the replay file exists but cannot be decoded.
var ErrCorrupt = errors.New("replay file is corrupt")

// Snapshot is a saved conversation as stored on disk.
type Snapshot struct {
	SavedAt  time.Time                 `json:"saved_at"`
	Messages conversation.Conversation `json:"messages"`
}

// Entry summarizes one snapshot for listings.
type Entry struct {
	Tag      string
	SavedAt  time.Time
	Messages int
}

type file struct {
	Version       int                 `json:"version"`
	Conversations map[string]Snapshot `json:"conversations"`
}

// Store keeps tagged conversation snapshots in a single JSON file. The
// whole file is read on every fetch and rewritten on every mutation.
// Only one process is expected to write the file at a time.
type Store struct {
	path string

	// stat of the file as of our last read or write
	accessed bool
	exists   bool
	seenMod  time.Time
	seenSize int64
	// outside is a change by another writer that load noticed but
	// Modified has not reported yet.
	outside bool

	now func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (map[string]Snapshot, error) {
	if changed, err := s.stale(); err == nil && changed {
		s.outside = true
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.remember()
			return map[string]Snapshot{}, nil
		}
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	s.remember()

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", ErrCorrupt, s.path, f.Version)
	}
	if f.Conversations == nil {
		f.Conversations = map[string]Snapshot{}
	}
	for tag, snap := range f.Conversations {
		for i, m := range snap.Messages {
			if m.Role != conversation.RoleUser && m.Role != conversation.RoleAssistant {
				return nil, fmt.Errorf("%w: %s: conversation %q message %d has role %q", ErrCorrupt, s.path, tag, i, m.Role)
			}
		}
	}
	return f.Conversations, nil
}

func (s *Store) write(snaps map[string]Snapshot) error {
	data, err := json.MarshalIndent(file{Version: fileVersion, Conversations: snaps}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal replay file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create replay dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".replay-*")
	if err != nil {
		return fmt.Errorf("create temp replay file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write replay file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod replay file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close replay file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace replay file: %w", err)
	}

	s.remember()
	logger.Debug("replay file written", "path", s.path, "conversations", len(snaps))
	return nil
}

// FetchAll returns every saved conversation keyed by tag. A missing file is
// an empty store, not an error.
func (s *Store) FetchAll() (map[string]conversation.Conversation, error) {
	snaps, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]conversation.Conversation, len(snaps))
	for tag, snap := range snaps {
		out[tag] = snap.Messages.Clone()
	}
	return out, nil
}

// FetchOne returns the conversation saved under tag.
func (s *Store) FetchOne(tag string) (conversation.Conversation, bool, error) {
	snaps, err := s.load()
	if err != nil {
		return nil, false, err
	}
	snap, ok := snaps[tag]
	if !ok {
		return nil, false, nil
	}
	return snap.Messages.Clone(), true, nil
}

// List returns a summary of every snapshot, ordered by tag.
func (s *Store) List() ([]Entry, error) {
	snaps, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(snaps))
	for tag, snap := range snaps {
		entries = append(entries, Entry{Tag: tag, SavedAt: snap.SavedAt, Messages: len(snap.Messages)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Tag < entries[j].Tag })
	return entries, nil
}

// Save stores a copy of conv under tag, replacing any earlier snapshot.
func (s *Store) Save(tag string, conv conversation.Conversation) error {
	snaps, err := s.load()
	if err != nil {
		return err
	}
	snaps[tag] = Snapshot{SavedAt: s.now().UTC(), Messages: conv.Clone()}
	return s.write(snaps)
}

// Delete removes tag and reports whether it existed. The file is only
// rewritten when something was removed.
func (s *Store) Delete(tag string) (bool, error) {
	snaps, err := s.load()
	if err != nil {
		return false, err
	}
	if _, ok := snaps[tag]; !ok {
		return false, nil
	}
	delete(snaps, tag)
	if err := s.write(snaps); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) remember() {
	s.accessed = true
	info, err := os.Stat(s.path)
	if err != nil {
		s.exists = false
		s.seenMod = time.Time{}
		s.seenSize = 0
		return
	}
	s.exists = true
	s.seenMod = info.ModTime()
	s.seenSize = info.Size()
}

// Modified reports whether the file changed on disk since this store last
// read or wrote it, including changes a fetch or save has since picked up.
// Each change is reported once. Before the first access nothing counts as a
// change.
func (s *Store) Modified() (bool, error) {
	changed, err := s.stale()
	if err != nil {
		return false, err
	}
	if !changed && !s.outside {
		return false, nil
	}
	s.outside = false
	s.remember()
	return true, nil
}

// stale compares the file on disk with the last remembered stat.
func (s *Store) stale() (bool, error) {
	if !s.accessed {
		return false, nil
	}
	info, err := os.Stat(s.path)
	switch {
	case os.IsNotExist(err):
		return s.exists, nil
	case err != nil:
		return false, fmt.Errorf("stat replay file: %w", err)
	default:
		return !s.exists || !info.ModTime().Equal(s.seenMod) || info.Size() != s.seenSize, nil
	}
}
