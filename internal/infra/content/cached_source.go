package content

import (
	"context"
	"time"

	gcache "github.com/patrickmn/go-cache"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
)

const (
	quotesKey = "quotes"
	factsKey  = "facts"
)

// CachedSource memoizes another source for a reload interval so collections
// are not re-read on every request.
type CachedSource struct {
	next  enrichment.ContentSource
	cache *gcache.Cache
}

// NewCachedSource wraps next. A non-positive ttl keeps the first successful
// load forever.
func NewCachedSource(next enrichment.ContentSource, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = gcache.NoExpiration
	}
	return &CachedSource{
		next:  next,
		cache: gcache.New(ttl, time.Minute),
	}
}

// Quotes implements enrichment.ContentSource.
func (s *CachedSource) Quotes(ctx context.Context) ([]enrichment.Quote, error) {
	if v, ok := s.cache.Get(quotesKey); ok {
		if quotes, ok := v.([]enrichment.Quote); ok {
			return quotes, nil
		}
	}
	quotes, err := s.next.Quotes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(quotesKey, quotes)
	return quotes, nil
}

// Facts implements enrichment.ContentSource.
func (s *CachedSource) Facts(ctx context.Context) ([]enrichment.FunFact, error) {
	if v, ok := s.cache.Get(factsKey); ok {
		if facts, ok := v.([]enrichment.FunFact); ok {
			return facts, nil
		}
	}
	facts, err := s.next.Facts(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(factsKey, facts)
	return facts, nil
}

// Invalidate drops the memoized collections.
func (s *CachedSource) Invalidate() {
	s.cache.Flush()
}

var _ enrichment.ContentSource = (*CachedSource)(nil)
