package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"moviedb/internal/config"
	"moviedb/internal/logging"
	"moviedb/internal/movie"
	"moviedb/internal/services"
)

// Store manages movie persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger; the store logs under the "store" component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "store")
		}
	}
}

// Open initializes or connects to the configured movie database.
func Open(cfg *config.Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "store", "open", "config is nil", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrStore, "store", "open", "ensure directories", err)
	}
	return OpenPath(cfg.Store.Database, opts...)
}

// OpenPath opens the database at path, creating the file and schema as needed.
func OpenPath(path string, opts ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "store", "open", "database path is empty", nil)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrStore, "store", "open", "create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "store", "open", "open sqlite db", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrStore, "store", "open", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	store := &Store{db: db, path: path, logger: logging.NewComponentLogger(nil, "store")}
	for _, opt := range opts {
		opt(store)
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrStore, "store", "open", "initialize schema", err)
	}

	store.logger.Debug("movie database ready", logging.String("path", path))
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Insert stores m and returns it with the assigned row ID. Duplicates are not
// rejected; callers that care check first.
func (s *Store) Insert(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	m = m.Normalize()
	if m.Title == "" {
		return movie.Movie{}, services.Wrap(services.ErrInvalidInput, "store", "insert", "title is required", nil)
	}

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(
			ctx,
			`INSERT INTO movies (title, year, genre, actors, director, type, plot, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Title,
			m.Year,
			m.Genre,
			m.Actors,
			m.Director,
			m.Type,
			m.Plot,
			time.Now().UTC().Format(time.RFC3339Nano),
		)
		return execErr
	})
	if err != nil {
		return movie.Movie{}, services.Wrap(services.ErrStore, "store", "insert", m.Label(), err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return movie.Movie{}, services.Wrap(services.ErrStore, "store", "insert", "last insert id", err)
	}
	m.ID = id

	s.logger.Debug("inserted movie", logging.Int64("id", id), logging.String("title", m.Title), logging.String("year", m.Year))
	return m, nil
}

// Delete removes the first row (lowest ID) matching every visible field of m.
// When Title is the only populated field, the match is by title alone. A miss
// returns services.ErrNotFound.
func (s *Store) Delete(ctx context.Context, m movie.Movie) error {
	m = m.Normalize()
	if m.Title == "" {
		return services.Wrap(services.ErrInvalidInput, "store", "delete", "title is required", nil)
	}

	var (
		where string
		args  []any
	)
	if m.OnlyTitle() {
		where = `title = ?`
		args = []any{m.Title}
	} else {
		where = `title = ? AND year = ? AND genre = ? AND actors = ? AND director = ? AND type = ? AND plot = ?`
		args = []any{m.Title, m.Year, m.Genre, m.Actors, m.Director, m.Type, m.Plot}
	}

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(
			ctx,
			`DELETE FROM movies WHERE id = (SELECT id FROM movies WHERE `+where+` ORDER BY id LIMIT 1)`,
			args...,
		)
		return execErr
	})
	if err != nil {
		return services.Wrap(services.ErrStore, "store", "delete", m.Label(), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return services.Wrap(services.ErrStore, "store", "delete", "rows affected", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "store", "delete", m.Label(), nil)
	}

	s.logger.Debug("deleted movie", logging.String("title", m.Title), logging.String("year", m.Year))
	return nil
}

// Count returns the number of stored movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM movies`).Scan(&count); err != nil {
		return 0, services.Wrap(services.ErrStore, "store", "count", "", err)
	}
	return count, nil
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy re-runs op while another process holds the SQLite write lock.
func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
