// Package bbolt persists saved searches in a bbolt key/value file.
package bbolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/searches/domain"
)

var bucketSearches = []byte("searches")

// DefaultOpenTimeout bounds how long Open waits for the file lock held by
// another tagsearch process.
const DefaultOpenTimeout = time.Second

// Store implements domain.Store on a single bbolt bucket.
// Keys are tags and values are queries, both stored as UTF-8 bytes.
type Store struct {
	db *bolt.DB
}

var _ domain.Store = (*Store)(nil)

// Open opens or creates the bolt file at path.
func Open(path string) (*Store, error) {
	return OpenWithTimeout(path, DefaultOpenTimeout)
}

// OpenWithTimeout is Open with a custom lock timeout.
func OpenWithTimeout(path string, timeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("bolt open: create directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("bolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSearches)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt open: create bucket: %w", err)
	}
	log.Debug(log.CatStore, "Opened bolt store", "path", path)
	return &Store{db: db}, nil
}

// LoadAll returns every saved search.
func (s *Store) LoadAll(_ context.Context) (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSearches)
		if b == nil {
			return errors.New("searches bucket missing")
		}
		return b.ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bolt load: %w", err)
	}
	return out, nil
}

// Put stores query under tag. The write is fsynced when the transaction
// commits.
func (s *Store) Put(ctx context.Context, tag, query string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSearches).Put([]byte(tag), []byte(query))
	})
	if err != nil {
		return fmt.Errorf("bolt put: %w", err)
	}
	return nil
}

// Remove deletes tag. Missing keys are ignored by bbolt.
func (s *Store) Remove(ctx context.Context, tag string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSearches).Delete([]byte(tag))
	})
	if err != nil {
		return fmt.Errorf("bolt remove: %w", err)
	}
	return nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the bolt file path.
func (s *Store) Path() string {
	return s.db.Path()
}
