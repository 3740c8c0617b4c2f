package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/tagsearch/internal/searches/domain"
)

// SearchStore implements domain.Store on the searches table.
type SearchStore struct {
	db  *DB
	now func() time.Time
}

var _ domain.Store = (*SearchStore)(nil)

func newSearchStore(db *DB) *SearchStore {
	return &SearchStore{db: db, now: time.Now}
}

// Open opens the database at path and returns its search store.
func Open(path string) (*SearchStore, error) {
	db, err := NewDB(path)
	if err != nil {
		return nil, err
	}
	return db.SearchStore(), nil
}

// LoadAll returns every saved search.
func (s *SearchStore) LoadAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.conn.QueryContext(ctx, `SELECT tag, query FROM searches`)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var tag, query string
		if err := rows.Scan(&tag, &query); err != nil {
			return nil, fmt.Errorf("failed to scan search: %w", err)
		}
		out[tag] = query
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate searches: %w", err)
	}
	return out, nil
}

// Put inserts or replaces the query saved under tag.
func (s *SearchStore) Put(ctx context.Context, tag, query string) error {
	now := s.now().Unix()
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO searches (tag, query, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(tag) DO UPDATE SET query = excluded.query, updated_at = excluded.updated_at`,
		tag, query, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert search: %w", err)
	}
	return nil
}

// Remove deletes tag. Missing tags are ignored.
func (s *SearchStore) Remove(ctx context.Context, tag string) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM searches WHERE tag = ?`, tag); err != nil {
		return fmt.Errorf("failed to delete search: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SearchStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path, used by the watcher.
func (s *SearchStore) Path() string {
	return s.db.path
}
