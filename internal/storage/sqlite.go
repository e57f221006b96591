// Package storage provides SQLite-based persistence for finished runs and the
// per-player leaderboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Query limits for leaderboard and score listings.
const (
	DefaultLimit = 20
	MaxLimit     = 100

	MaxPlayerLen = 32
)

var (
	// ErrNegativeScore is returned when recording a score below zero.
	ErrNegativeScore = errors.New("storage: score cannot be negative")
	// ErrInvalidPlayer is returned for empty or oversized player names.
	ErrInvalidPlayer = errors.New("storage: invalid player name")
	// ErrPlayerNotFound is returned when a player has no recorded runs.
	ErrPlayerNotFound = errors.New("storage: player not found")
)

// Store manages the SQLite database connection for score persistence.
// It is safe for concurrent use; writes are serialized on one connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry represents a single finished run.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions record scores concurrently; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are stored as unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);

		CREATE TABLE IF NOT EXISTS players (
			player TEXT PRIMARY KEY,
			best_score INTEGER NOT NULL DEFAULT 0,
			best_at INTEGER NOT NULL,
			runs INTEGER NOT NULL DEFAULT 0,
			last_played INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_players_rank ON players(best_score DESC, best_at ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ClearScores deletes every run and every player.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores; DELETE FROM players;")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// NormalizePlayer trims a player name and checks its length.
func NormalizePlayer(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxPlayerLen {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlayer, name)
	}
	return name, nil
}

// TruncatePlayer trims name and shortens it to at most MaxPlayerLen bytes,
// cutting on a rune boundary. The result may still be empty.
func TruncatePlayer(name string) string {
	name = strings.TrimSpace(name)
	if len(name) <= MaxPlayerLen {
		return name
	}
	cut := MaxPlayerLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return strings.TrimSpace(name[:cut])
}

// normalizeLimit applies the default and the upper bound to a query limit.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
