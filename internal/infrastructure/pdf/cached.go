package pdf

import (
	"context"
	"fmt"

	"facturador/internal/domain/invoice"
	"facturador/internal/infrastructure/cache"
	"facturador/pkg/logger"
)

// CachedRenderer memoizes rendered documents per layout and invoice id.
type CachedRenderer struct {
	next  Renderer
	cache *cache.DocumentCache
}

var _ Renderer = (*CachedRenderer)(nil)

// NewCachedRenderer wraps next with c.
func NewCachedRenderer(next Renderer, c *cache.DocumentCache) *CachedRenderer {
	return &CachedRenderer{next: next, cache: c}
}

// Layout implements Renderer.
func (r *CachedRenderer) Layout() string { return r.next.Layout() }

// Render implements Renderer.
func (r *CachedRenderer) Render(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	key := fmt.Sprintf("%s:%d", r.next.Layout(), inv.ID)
	if doc, ok := r.cache.Get(ctx, key); ok {
		logger.Debug(ctx, "document cache hit", "key", key)
		return doc, nil
	}

	doc, err := r.next.Render(ctx, inv)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, key, doc)
	return doc, nil
}
