package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for kilns, firing programs and projects.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and makes sure
// the schema exists. Safe to call on every start; schema creation is
// idempotent.
//
// The connection is configured with:
//   - WAL mode (concurrent readers during a write)
//   - NORMAL synchronous mode
//   - 5-second busy timeout
//
// Foreign keys are deliberately not enabled: the schema declares none, and
// referential integrity is enforced in the mutation engine instead.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One exclusive connection. The tracker assumes it is not used from
	// multiple goroutines without external synchronization.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries. Use with caution -
// prefer the Store methods.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyPragmas sets the SQLite connection configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// normalizeName puts a user-supplied name into NFC so Unicode-equal
// spellings land on (and find) the same row.
func normalizeName(name string) string {
	return norm.NFC.String(name)
}

// count runs a SELECT COUNT(*) style query and returns the single value.
func (s *Store) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
