package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tagsearch/internal/searches/domain"
)

// Builder accumulates saved searches and writes them into a store.
type Builder struct {
	t        *testing.T
	store    domain.Store
	searches []domain.SavedSearch
}

// NewBuilder creates a builder for the given store.
func NewBuilder(t *testing.T, store domain.Store) *Builder {
	t.Helper()
	return &Builder{t: t, store: store}
}

// WithSearch adds a saved search.
func (b *Builder) WithSearch(tag, query string) *Builder {
	b.searches = append(b.searches, domain.SavedSearch{Tag: tag, Query: query})
	return b
}

// WithScenario adds the news/sports/art fixture used across tests.
func (b *Builder) WithScenario() *Builder {
	b.searches = append(b.searches, Scenario()...)
	return b
}

// Build writes all accumulated searches in insertion order.
func (b *Builder) Build() {
	b.t.Helper()
	for _, s := range b.searches {
		require.NoError(b.t, b.store.Put(context.Background(), s.Tag, s.Query))
	}
}

// Scenario returns the three searches of the reference scenario, in the
// order they are saved.
func Scenario() []domain.SavedSearch {
	return []domain.SavedSearch{
		{Tag: "news", Query: "golang release"},
		{Tag: "Sports", Query: "world cup"},
		{Tag: "art", Query: "impressionism"},
	}
}
