// Package testutil provides test doubles and fixtures for saved-search tests.
package testutil

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// ErrInjected is the default error returned by a failing MemoryStore.
var ErrInjected = errors.New("injected store failure")

// MemoryStore is an in-memory domain.Store with failure injection.
// The zero value is not usable; use NewMemoryStore.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string]string
	failOn map[string]error
	calls  []string
	closed bool
}

// NewMemoryStore returns a store seeded with a copy of initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	data := make(map[string]string, len(initial))
	maps.Copy(data, initial)
	return &MemoryStore{
		data:   data,
		failOn: make(map[string]error),
	}
}

// FailOn makes every subsequent call of op ("load", "put", "remove") fail
// with err. A nil err uses ErrInjected.
func (s *MemoryStore) FailOn(op string, err error) {
	if err == nil {
		err = ErrInjected
	}
	s.mu.Lock()
	s.failOn[op] = err
	s.mu.Unlock()
}

// Heal clears all injected failures.
func (s *MemoryStore) Heal() {
	s.mu.Lock()
	clear(s.failOn)
	s.mu.Unlock()
}

// LoadAll implements domain.Store.
func (s *MemoryStore) LoadAll(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "load")
	if err := s.failOn["load"]; err != nil {
		return nil, err
	}
	return maps.Clone(s.data), nil
}

// Put implements domain.Store.
func (s *MemoryStore) Put(_ context.Context, tag, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "put:"+tag)
	if err := s.failOn["put"]; err != nil {
		return err
	}
	s.data[tag] = query
	return nil
}

// Remove implements domain.Store.
func (s *MemoryStore) Remove(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "remove:"+tag)
	if err := s.failOn["remove"]; err != nil {
		return err
	}
	delete(s.data, tag)
	return nil
}

// Close implements domain.Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the persisted data.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}

// Set writes directly to the backing map, bypassing failure injection.
// Used to simulate another process writing to the store.
func (s *MemoryStore) Set(tag, query string) {
	s.mu.Lock()
	s.data[tag] = query
	s.mu.Unlock()
}

// Calls returns the recorded operations in order.
func (s *MemoryStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Closed reports whether Close was called.
func (s *MemoryStore) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
