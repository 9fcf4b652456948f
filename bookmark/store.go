// Package bookmark persists per-user place bookmarks in Postgres. The
// table is a simple keyed mapping (user, content id) -> timestamp;
// commands use it to decide which detail records to fetch.
package bookmark

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Bookmark is one saved place for one user.
type Bookmark struct {
	UserID    string
	ContentID string
	CreatedAt time.Time
}

// Store wraps the bookmarks table.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewStore opens the bookmarks database and verifies the connection.
func NewStore(dsn string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmarks database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to bookmarks database: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Migrate creates the bookmarks table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS bookmarks (
			user_id    TEXT        NOT NULL,
			content_id TEXT        NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, content_id)
		)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to migrate bookmarks table: %w", err)
	}
	return nil
}

// Add saves a bookmark. Adding an existing bookmark is a no-op.
func (s *Store) Add(ctx context.Context, userID, contentID string) error {
	const stmt = `
		INSERT INTO bookmarks (user_id, content_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, content_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, stmt, userID, contentID); err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("content_id", contentID).
		Msg("bookmark added")
	return nil
}

// Remove deletes a bookmark. Removing a missing bookmark is a no-op.
func (s *Store) Remove(ctx context.Context, userID, contentID string) error {
	const stmt = `DELETE FROM bookmarks WHERE user_id = $1 AND content_id = $2`
	if _, err := s.db.ExecContext(ctx, stmt, userID, contentID); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("content_id", contentID).
		Msg("bookmark removed")
	return nil
}

// List returns a user's bookmarks, newest first.
func (s *Store) List(ctx context.Context, userID string) ([]Bookmark, error) {
	const query = `
		SELECT user_id, content_id, created_at
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.UserID, &b.ContentID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}

	return bookmarks, nil
}

// IsBookmarked reports whether the user has saved the place.
func (s *Store) IsBookmarked(ctx context.Context, userID, contentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND content_id = $2)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, contentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return exists, nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
