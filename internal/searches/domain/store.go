package domain

import "context"

// Store is the persistence port for saved searches: a durable string-keyed
// string-valued map. Put and Remove must be durable when they return nil.
// Implementations may use SQLite, BoltDB, a TOML file, or memory.
type Store interface {
	// LoadAll returns every persisted tag and its query.
	LoadAll(ctx context.Context) (map[string]string, error)

	// Put creates or overwrites the query saved under tag.
	Put(ctx context.Context, tag, query string) error

	// Remove deletes tag. Removing a missing tag is not an error.
	Remove(ctx context.Context, tag string) error

	// Close releases any resources held by the store.
	Close() error
}
