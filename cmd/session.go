package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/tagsearch/internal/flags"
	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/searches/registry"
	"github.com/zjrosen/tagsearch/internal/storage"
	"github.com/zjrosen/tagsearch/internal/tracing"
)

// session is an open store plus the registry loaded from it, shared by the
// TUI and the one-shot commands.
type session struct {
	reg      *registry.Registry
	opened   *storage.Opened
	provider *tracing.Provider
	flags    *flags.Registry
}

// openSession validates cfg, opens the configured backend and loads the
// registry.
func openSession(ctx context.Context) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	opened, err := storage.Open(cfg.Store, provider.Tracer())
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	ff := flags.New(cfg.Flags)
	reg, err := registry.Open(ctx, opened.Store,
		registry.WithStrictTags(ff.Enabled(flags.FlagStrictTags)))
	if err != nil {
		_ = opened.Store.Close()
		_ = provider.Shutdown(ctx)
		return nil, fmt.Errorf("loading saved searches: %w", err)
	}

	log.Debug(log.CatCLI, "Session opened", "backend", opened.Backend, "searches", reg.Len(), "flags", ff.EnabledNames())
	return &session{
		reg:      reg,
		opened:   opened,
		provider: provider,
		flags:    ff,
	}, nil
}

// Close closes the registry and its store, then flushes spans.
func (s *session) Close(ctx context.Context) error {
	return errors.Join(s.reg.Close(), s.provider.Shutdown(ctx))
}
