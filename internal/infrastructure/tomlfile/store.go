// Package tomlfile persists saved searches in a human-editable TOML file:
//
//	[searches]
//	news = "golang release"
//	"world cup" = "football"
package tomlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/searches/domain"
)

type document struct {
	Searches map[string]string `toml:"searches"`
}

// Store implements domain.Store by rewriting the whole file on every
// mutation. Writes go to a temp file that is fsynced and renamed over the
// original.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

var _ domain.Store = (*Store)(nil)

// Open reads path, creating its directory if needed. A missing file is an
// empty store; it is created on the first write.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	s := &Store{path: path}
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	s.data = data
	return s, nil
}

func (s *Store) read() (map[string]string, error) {
	var doc document
	_, err := toml.DecodeFile(s.path, &doc)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	if doc.Searches == nil {
		doc.Searches = map[string]string{}
	}
	return doc.Searches, nil
}

// LoadAll re-reads the file so edits made outside tagsearch are picked up.
func (s *Store) LoadAll(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	s.data = data
	return maps.Clone(data), nil
}

// Put writes query under tag.
func (s *Store) Put(ctx context.Context, tag, query string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.data)
	next[tag] = query
	if err := s.write(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// Remove deletes tag. Removing a missing tag does not touch the file.
func (s *Store) Remove(ctx context.Context, tag string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[tag]; !ok {
		return nil
	}
	next := maps.Clone(s.data)
	delete(next, tag)
	if err := s.write(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *Store) write(data map[string]string) error {
	var buf bytes.Buffer
	buf.WriteString("# Saved searches. Managed by tagsearch; safe to edit while it is not running.\n")
	if err := toml.NewEncoder(&buf).Encode(document{Searches: data}); err != nil {
		return fmt.Errorf("encoding searches: %w", err)
	}

	dir := filepath.Dir(s.path)
	temp, err := os.CreateTemp(dir, ".searches.toml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	log.Debug(log.CatStore, "Wrote toml store", "path", s.path, "count", len(data))
	return nil
}

// Close is a no-op; every write is already on disk.
func (s *Store) Close() error {
	return nil
}

// Path returns the TOML file path.
func (s *Store) Path() string {
	return s.path
}
