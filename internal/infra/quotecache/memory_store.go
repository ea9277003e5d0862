package quotecache

import (
	"context"
	"time"

	gcache "github.com/patrickmn/go-cache"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
)

// MemoryStore keeps generated quotes in process memory.
type MemoryStore struct {
	cache *gcache.Cache
}

// NewMemoryStore constructs a store whose entries without an explicit TTL
// live for defaultTTL.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	if defaultTTL <= 0 {
		defaultTTL = gcache.NoExpiration
	}
	return &MemoryStore{cache: gcache.New(defaultTTL, 10*time.Minute)}
}

// Get implements enrichment.QuoteCache.
func (s *MemoryStore) Get(_ context.Context, bucket string) (enrichment.Quote, bool, error) {
	v, ok := s.cache.Get(bucket)
	if !ok {
		return enrichment.Quote{}, false, nil
	}
	quote, ok := v.(enrichment.Quote)
	return quote, ok, nil
}

// Save implements enrichment.QuoteCache.
func (s *MemoryStore) Save(_ context.Context, bucket string, quote enrichment.Quote, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gcache.DefaultExpiration
	}
	s.cache.Set(bucket, quote, ttl)
	return nil
}

var _ enrichment.QuoteCache = (*MemoryStore)(nil)
