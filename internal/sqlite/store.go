// File path: internal/sqlite/store.go

// Package sqlite implements the casebook repository on an embedded SQLite
// file through sqlx.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nicodishanthj/casemate/internal/casebook"
	"github.com/nicodishanthj/casemate/internal/common"
)

var _ casebook.Store = (*Store)(nil)

var errNilStore = errors.New("sqlite store not initialised")

// Store wraps a pooled sqlx.DB connection to the case database.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at path, using pool
// settings from the environment. The schema is created on first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return OpenWithConfig(cfg.Merge(Config{Path: path}))
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	cfg.applyDefaults()
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}
	db, err := sqlx.Open("sqlite", dataSourceName(abs, cfg.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	common.Logger().Info("sqlite: store ready", "path", abs, "max_open_conns", cfg.MaxOpenConns)
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying sqlx.DB for advanced callers.
func (s *Store) DB() *sqlx.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Store) ensureReady() error {
	if s == nil || s.db == nil {
		return errNilStore
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for i, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("execute schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// Children carry case_id without a declared foreign key. The HTTP layer checks
// the case before inserting children and DeleteCase does the cascade.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cases (
                id TEXT PRIMARY KEY,
                name TEXT NOT NULL,
                detective TEXT,
                short_description TEXT DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS parties (
                id TEXT PRIMARY KEY,
                case_id TEXT NOT NULL,
                name TEXT NOT NULL,
                role TEXT NOT NULL,
                description TEXT,
                alibi TEXT,
                image BLOB
        );`,
	`CREATE TABLE IF NOT EXISTS evidences (
                id TEXT PRIMARY KEY,
                case_id TEXT NOT NULL,
                status TEXT NOT NULL DEFAULT 'unknown',
                place TEXT,
                description TEXT,
                name TEXT NOT NULL,
                suspects TEXT NOT NULL DEFAULT '[]'
        );`,
	`CREATE TABLE IF NOT EXISTS theories (
                id TEXT PRIMARY KEY,
                case_id TEXT NOT NULL,
                name TEXT NOT NULL,
                content TEXT NOT NULL DEFAULT ''
        );`,
	`CREATE TABLE IF NOT EXISTS timeline_events (
                id TEXT PRIMARY KEY,
                case_id TEXT NOT NULL,
                occurred_at INTEGER NOT NULL,
                place TEXT NOT NULL DEFAULT 'unknown',
                status TEXT NOT NULL,
                name TEXT NOT NULL,
                description TEXT
        );`,
	`CREATE INDEX IF NOT EXISTS idx_parties_case ON parties(case_id);`,
	`CREATE INDEX IF NOT EXISTS idx_evidences_case ON evidences(case_id);`,
	`CREATE INDEX IF NOT EXISTS idx_theories_case ON theories(case_id);`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_events_case_time ON timeline_events(case_id, occurred_at);`,
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// notFound maps sql.ErrNoRows onto the domain sentinel.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return casebook.ErrNotFound
	}
	return err
}

// dataSourceName builds a file: URI so that '?' and '#' in the path stay part
// of the path.
func dataSourceName(abs string, busyTimeout time.Duration) string {
	query := url.Values{}
	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", int(busyTimeout/time.Millisecond)))
	query.Add("_pragma", "journal_mode(WAL)")
	query.Set("_txlock", "immediate")
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: query.Encode()}
	return u.String()
}
