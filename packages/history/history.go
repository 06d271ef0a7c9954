// Package history keeps a local SQLite log of path verifications.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

const schema = `
CREATE TABLE IF NOT EXISTS verifications (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	method      TEXT NOT NULL,
	url         TEXT NOT NULL,
	path        TEXT NOT NULL,
	success     INTEGER NOT NULL,
	value       TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL DEFAULT '',
	status      INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	checked_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_verifications_target ON verifications (url, path, checked_at);
`

// DefaultLimit bounds List and ForPath when no limit is given.
const DefaultLimit = 50

// Entry is one recorded verification.
type Entry struct {
	ID        string             `json:"id"`
	Name      string             `json:"name,omitempty"`
	Method    string             `json:"method"`
	URL       string             `json:"url"`
	Path      string             `json:"path"`
	Success   bool               `json:"success"`
	Value     string             `json:"value,omitempty"`
	Error     string             `json:"error,omitempty"`
	Kind      verify.FailureKind `json:"kind,omitempty"`
	Status    int                `json:"status,omitempty"`
	Duration  time.Duration      `json:"duration"`
	CheckedAt time.Time          `json:"checkedAt"`
}

type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Open opens or creates the store. Accepted forms are a plain file path,
// sqlite://path and sqlite:path; ":memory:" gives a private in-memory store.
func Open(connectionString string) (*Store, error) {
	dsn := parseConnectionString(connectionString)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, queryTimeout: 30 * time.Second}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores the outcome of verifying cfg. name may be empty.
func (s *Store) Record(ctx context.Context, name string, cfg *request.Config, result *verify.TestResult) (*Entry, error) {
	if cfg == nil || result == nil {
		return nil, fmt.Errorf("record: config and result are required")
	}

	checkedAt := result.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	e := &Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Method:    string(cfg.Method),
		URL:       cfg.URL,
		Path:      cfg.SelectedPath,
		Success:   result.Success,
		Value:     result.ValueJSON(),
		Error:     result.Error,
		Kind:      result.Kind,
		Status:    result.Status,
		Duration:  result.Duration,
		CheckedAt: checkedAt.UTC().Truncate(time.Millisecond),
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verifications (id, name, method, url, path, success, value, error, kind, status, duration_ms, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Method, e.URL, e.Path, e.Success, e.Value, e.Error, string(e.Kind),
		e.Status, e.Duration.Milliseconds(), e.CheckedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record verification: %w", err)
	}
	return e, nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, `SELECT `+columns+` FROM verifications ORDER BY checked_at DESC, rowid DESC LIMIT ?`, normalizeLimit(limit))
}

// ForPath returns the entries for one url and path, newest first.
func (s *Store) ForPath(ctx context.Context, url, path string, limit int) ([]Entry, error) {
	return s.query(ctx,
		`SELECT `+columns+` FROM verifications WHERE url = ? AND path = ? ORDER BY checked_at DESC, rowid DESC LIMIT ?`,
		url, path, normalizeLimit(limit))
}

const columns = `id, name, method, url, path, success, value, error, kind, status, duration_ms, checked_at`

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			kind       string
			durationMs int64
			checkedAt  int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Method, &e.URL, &e.Path, &e.Success, &e.Value, &e.Error,
			&kind, &e.Status, &durationMs, &checkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.Kind = verify.FailureKind(kind)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CheckedAt = time.UnixMilli(checkedAt).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func parseConnectionString(connStr string) string {
	connStr = strings.TrimSpace(connStr)
	if strings.HasPrefix(connStr, "sqlite://") {
		return strings.TrimPrefix(connStr, "sqlite://")
	}
	if strings.HasPrefix(connStr, "sqlite:") {
		return strings.TrimPrefix(connStr, "sqlite:")
	}
	return connStr
}
