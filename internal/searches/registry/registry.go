// Package registry implements the tagged-search registry: the single owner
// of the tag → query map and of the case-insensitively sorted tag index
// shown to the user.
//
// Every mutation writes to the durable store first and touches memory only
// after the store confirmed the write, so a store failure leaves the
// registry exactly as it was before the call.
package registry

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/pubsub"
	"github.com/zjrosen/tagsearch/internal/searches/domain"
)

// Change describes a registry mutation published to subscribers.
type Change struct {
	// Tag is the saved search that changed. Empty for reloads.
	Tag string
	// IndexChanged is true when the ordered tag list changed.
	IndexChanged bool
}

// SaveResult reports what Save did.
type SaveResult struct {
	// Created is true when the tag was new and got inserted into the index.
	Created bool
	// Index is the tag's position in ListTags after the save.
	Index int
}

// Registry is the tagged-search registry. All methods are safe for
// concurrent use; mutations are serialized.
type Registry struct {
	mu       sync.RWMutex
	store    domain.Store
	searches map[string]string
	tags     []string

	strictTags bool
	broker     *pubsub.Broker[Change]
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrictTags rejects new tags that differ from an existing tag only by
// letter case. Off by default.
func WithStrictTags(strict bool) Option {
	return func(r *Registry) {
		r.strictTags = strict
	}
}

// WithBroker publishes changes on the given broker instead of a private one.
func WithBroker(b *pubsub.Broker[Change]) Option {
	return func(r *Registry) {
		r.broker = b
	}
}

// New creates an empty registry over store. Call Load before use.
func New(store domain.Store, opts ...Option) *Registry {
	r := &Registry{
		store:    store,
		searches: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.broker == nil {
		r.broker = pubsub.NewBroker[Change]()
	}
	return r
}

// Open creates a registry and loads it from store.
func Open(ctx context.Context, store domain.Store, opts ...Option) (*Registry, error) {
	r := New(store, opts...)
	if err := r.Load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Load replaces the in-memory state with the contents of the store.
// On failure the previous state is kept and a *domain.PersistenceError is
// returned.
func (r *Registry) Load(ctx context.Context) error {
	_, err := r.load(ctx)
	return err
}

// Reload re-reads the store, typically after another process wrote to it.
// It reports whether anything differed and notifies subscribers if so.
func (r *Registry) Reload(ctx context.Context) (bool, error) {
	changed, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		r.broker.Publish(pubsub.ReloadedEvent, Change{IndexChanged: true})
	}
	return changed, nil
}

func (r *Registry) load(ctx context.Context) (bool, error) {
	loaded, err := r.store.LoadAll(ctx)
	if err != nil {
		log.ErrorErr(log.CatRegistry, "Failed to load saved searches", err)
		return false, &domain.PersistenceError{Op: "load", Err: err}
	}

	// Every stored pair is indexed, even one Save would reject, so the
	// index always matches the store and Delete can still remove it.
	searches := maps.Clone(loaded)
	if searches == nil {
		searches = make(map[string]string)
	}
	for tag, query := range searches {
		if err := (domain.SavedSearch{Tag: tag, Query: query}).Validate(); err != nil {
			log.Warn(log.CatRegistry, "Loaded invalid stored search", "tag", tag, "error", err)
		}
	}
	tags := slices.Collect(maps.Keys(searches))
	domain.SortTags(tags)

	r.mu.Lock()
	changed := !maps.Equal(r.searches, searches)
	r.searches = searches
	r.tags = tags
	r.mu.Unlock()

	log.Info(log.CatRegistry, "Loaded saved searches", "count", len(tags))
	return changed, nil
}

// ListTags returns a copy of the ordered tag index.
func (r *Registry) ListTags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tags)
}

// GetQuery returns the query saved under tag. The boolean is false when the
// tag is unknown.
func (r *Registry) GetQuery(tag string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	query, ok := r.searches[tag]
	return query, ok
}

// Searches returns every saved search in index order.
func (r *Registry) Searches() []domain.SavedSearch {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SavedSearch, len(r.tags))
	for i, tag := range r.tags {
		out[i] = domain.SavedSearch{Tag: tag, Query: r.searches[tag]}
	}
	return out
}

// Len returns the number of saved searches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tags)
}

// IndexOf returns the position of tag in ListTags, or -1.
func (r *Registry) IndexOf(tag string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, found := slices.BinarySearchFunc(r.tags, tag, domain.CompareTags)
	if !found {
		return -1
	}
	return i
}

// Save stores query under tag, overwriting any previous query.
//
// A new tag is inserted at its sorted position. An existing tag keeps its
// position; only the query changes. Empty input fails with
// domain.ErrInvalidInput before anything is written.
func (r *Registry) Save(ctx context.Context, tag, query string) (SaveResult, error) {
	if err := (domain.SavedSearch{Tag: tag, Query: query}).Validate(); err != nil {
		return SaveResult{}, err
	}

	r.mu.Lock()
	_, exists := r.searches[tag]
	if !exists && r.strictTags {
		if existing, ok := r.caseVariantLocked(tag); ok {
			r.mu.Unlock()
			return SaveResult{}, &domain.DuplicateTagError{Tag: tag, Existing: existing}
		}
	}

	if err := r.store.Put(ctx, tag, query); err != nil {
		r.mu.Unlock()
		log.ErrorErr(log.CatRegistry, "Failed to persist saved search", err, "tag", tag)
		return SaveResult{}, &domain.PersistenceError{Op: "put", Tag: tag, Err: err}
	}

	r.searches[tag] = query
	var result SaveResult
	if exists {
		result = SaveResult{Created: false, Index: slices.Index(r.tags, tag)}
	} else {
		idx := r.insertionPointLocked(tag)
		r.tags = slices.Insert(r.tags, idx, tag)
		result = SaveResult{Created: true, Index: idx}
	}
	r.mu.Unlock()

	if result.Created {
		log.Info(log.CatRegistry, "Saved new search", "tag", tag, "index", result.Index)
		r.broker.Publish(pubsub.CreatedEvent, Change{Tag: tag, IndexChanged: true})
	} else {
		log.Info(log.CatRegistry, "Updated search", "tag", tag)
		r.broker.Publish(pubsub.UpdatedEvent, Change{Tag: tag})
	}
	return result, nil
}

// Delete removes tag. Unknown tags fail with domain.ErrNotFound and change
// nothing.
func (r *Registry) Delete(ctx context.Context, tag string) error {
	r.mu.Lock()
	if _, ok := r.searches[tag]; !ok {
		r.mu.Unlock()
		return &domain.NotFoundError{Tag: tag}
	}

	if err := r.store.Remove(ctx, tag); err != nil {
		r.mu.Unlock()
		log.ErrorErr(log.CatRegistry, "Failed to remove saved search", err, "tag", tag)
		return &domain.PersistenceError{Op: "remove", Tag: tag, Err: err}
	}

	delete(r.searches, tag)
	if idx := slices.Index(r.tags, tag); idx >= 0 {
		r.tags = slices.Delete(r.tags, idx, idx+1)
	}
	r.mu.Unlock()

	log.Info(log.CatRegistry, "Deleted search", "tag", tag)
	r.broker.Publish(pubsub.DeletedEvent, Change{Tag: tag, IndexChanged: true})
	return nil
}

// Broker exposes the change broker for tea listeners.
func (r *Registry) Broker() *pubsub.Broker[Change] {
	return r.broker
}

// Close closes the change broker and the underlying store.
func (r *Registry) Close() error {
	r.broker.Close()
	return r.store.Close()
}

// insertionPointLocked returns the sorted position for a tag not yet in
// the index.
func (r *Registry) insertionPointLocked(tag string) int {
	i, _ := slices.BinarySearchFunc(r.tags, tag, domain.CompareTags)
	return i
}

// caseVariantLocked finds an existing tag equal to tag ignoring case.
func (r *Registry) caseVariantLocked(tag string) (string, bool) {
	i := domain.FoldedPosition(r.tags, tag)
	if i < len(r.tags) && domain.SameTagFold(r.tags[i], tag) {
		return r.tags[i], true
	}
	return "", false
}
