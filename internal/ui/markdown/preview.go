package markdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/tagsearch/internal/cachemanager"
	"github.com/zjrosen/tagsearch/internal/log"
)

// PreviewTTL is how long a rendered preview stays cached.
const PreviewTTL = 5 * time.Minute

// PreviewKey identifies a rendered preview. It embeds everything that
// affects the output so edits and resizes miss naturally.
type PreviewKey string

// PreviewInput is what gets rendered on a cache miss.
type PreviewInput struct {
	Tag   string
	Query string
	URL   string
	Width int
}

// Key returns the cache key for the input rendered in style.
func (in PreviewInput) Key(style string) PreviewKey {
	return PreviewKey(fmt.Sprintf("%s|%d|%q|%q|%q", style, in.Width, in.Tag, in.Query, in.URL))
}

// Previewer renders saved-search previews through a read-through cache.
// Renderers are created per width and reused.
type Previewer struct {
	style string
	cache *cachemanager.ReadThroughCache[PreviewKey, string, PreviewInput]

	mu        sync.Mutex
	renderers map[int]*Renderer
}

// NewPreviewer creates a previewer. With skipCache every call renders.
func NewPreviewer(style string, skipCache bool) *Previewer {
	if style == "" {
		style = "dark"
	}
	p := &Previewer{
		style:     style,
		renderers: make(map[int]*Renderer),
	}
	manager := cachemanager.NewInMemoryCacheManager[PreviewKey, string](
		"previews", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	p.cache = cachemanager.NewReadThroughCache[PreviewKey, string, PreviewInput](manager, p.render, skipCache)
	return p
}

// Render returns the styled preview for in, rendering on a cache miss.
func (p *Previewer) Render(ctx context.Context, in PreviewInput) (string, error) {
	return p.cache.GetWithRefresh(ctx, in.Key(p.style), in, PreviewTTL)
}

// Invalidate drops every cached preview.
func (p *Previewer) Invalidate(ctx context.Context) {
	if err := p.cache.Invalidate(ctx); err != nil {
		log.ErrorErr(log.CatCache, "Failed to flush preview cache", err)
	}
}

func (p *Previewer) render(_ context.Context, in PreviewInput) (string, error) {
	r, err := p.rendererFor(in.Width)
	if err != nil {
		return "", err
	}
	return r.Render(Document(in.Tag, in.Query, in.URL))
}

func (p *Previewer) rendererFor(width int) (*Renderer, error) {
	if width < 10 {
		width = 10
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.renderers[width]; ok {
		return r, nil
	}
	r, err := New(width, p.style)
	if err != nil {
		return nil, err
	}
	p.renderers[width] = r
	return r, nil
}
