package history

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ehrlich-b/ask/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is the REPL's persistent input history. It satisfies
// golang.org/x/term's History interface: At(0) is the most recent line.
// Lines are cached in memory and written through to SQLite.
type Store struct {
	db    *sql.DB
	limit int
	lines []string // oldest first
}

// Open opens (or creates) the history database and loads the newest limit
// lines. A limit of zero disables recording.
func Open(dsn string, limit int) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	s := &Store{db: db, limit: limit}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.loadRecent(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load history: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, f := range files {
		var applied int
		err := s.db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", f).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", f, err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + f)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for %s: %w", f, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", f, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", f); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", f, err)
		}
	}
	return nil
}

func (s *Store) loadRecent() error {
	if s.limit <= 0 {
		return nil
	}
	rows, err := s.db.Query(`SELECT line FROM input_history ORDER BY id DESC LIMIT ?`, s.limit)
	if err != nil {
		return err
	}
	defer rows.Close()
	var newest []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return err
		}
		newest = append(newest, line)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	s.lines = make([]string, len(newest))
	for i, line := range newest {
		s.lines[len(newest)-1-i] = line
	}
	return nil
}

// Add records a line. Blank lines and immediate repeats are skipped.
// Write failures are logged; history is a convenience and never fails input.
func (s *Store) Add(line string) {
	if s.limit <= 0 || strings.TrimSpace(line) == "" {
		return
	}
	if n := len(s.lines); n > 0 && s.lines[n-1] == line {
		return
	}

	s.lines = append(s.lines, line)
	if len(s.lines) > s.limit {
		s.lines = s.lines[len(s.lines)-s.limit:]
	}

	if _, err := s.db.Exec(`INSERT INTO input_history (line) VALUES (?)`, line); err != nil {
		logger.Warn("history write failed", "error", err)
		return
	}
	if _, err := s.db.Exec(
		`DELETE FROM input_history WHERE id NOT IN (SELECT id FROM input_history ORDER BY id DESC LIMIT ?)`,
		s.limit,
	); err != nil {
		logger.Warn("history trim failed", "error", err)
	}
}

func (s *Store) Len() int {
	return len(s.lines)
}

// At returns the idx-th most recent line, 0 being the newest.
func (s *Store) At(idx int) string {
	if idx < 0 || idx >= len(s.lines) {
		panic(fmt.Sprintf("history: index %d out of range [0,%d)", idx, len(s.lines)))
	}
	return s.lines[len(s.lines)-1-idx]
}
