// Package storage opens the configured saved-search backend.
package storage

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/tagsearch/internal/config"
	"github.com/zjrosen/tagsearch/internal/infrastructure/bbolt"
	"github.com/zjrosen/tagsearch/internal/infrastructure/sqlite"
	"github.com/zjrosen/tagsearch/internal/infrastructure/tomlfile"
	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/searches/domain"
	"github.com/zjrosen/tagsearch/internal/tracing"
)

// Opened is a store plus the file it lives in, for the watcher.
type Opened struct {
	Store   domain.Store
	Path    string
	Backend string
}

// Watchable reports whether other processes can write the store while it
// is open here. bolt holds an exclusive file lock for as long as the store
// is open, so nothing else can change the file and watching it is pointless.
func (o *Opened) Watchable() bool {
	return o.Backend != config.BackendBolt
}

// Open opens the backend named in cfg. When tracer is non-nil every store
// call is wrapped in a span.
func Open(cfg config.StoreConfig, tracer trace.Tracer) (*Opened, error) {
	if err := config.ValidateStore(cfg); err != nil {
		return nil, err
	}
	path := cfg.ResolvedPath()

	var (
		store domain.Store
		err   error
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err = sqlite.Open(path)
	case config.BackendBolt:
		store, err = bbolt.Open(path)
	case config.BackendTOML:
		store, err = tomlfile.Open(path)
	}
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to open store", err, "backend", cfg.Backend, "path", path)
		return nil, fmt.Errorf("opening %s store at %s: %w", cfg.Backend, path, err)
	}

	log.Info(log.CatStore, "Opened store", "backend", cfg.Backend, "path", path)
	return &Opened{
		Store:   tracing.WrapStore(store, tracer, cfg.Backend),
		Path:    path,
		Backend: cfg.Backend,
	}, nil
}
