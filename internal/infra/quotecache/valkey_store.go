package quotecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
)

// ValkeyStore persists generated quotes in a Valkey-compatible database so
// every replica can serve them while the provider is throttled.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "agemaster"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements enrichment.QuoteCache.
func (s *ValkeyStore) Get(ctx context.Context, bucket string) (enrichment.Quote, bool, error) {
	cmd := s.client.B().Get().Key(s.key(bucket)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return enrichment.Quote{}, false, nil
		}
		return enrichment.Quote{}, false, err
	}
	var quote enrichment.Quote
	if err := json.Unmarshal([]byte(payload), &quote); err != nil {
		return enrichment.Quote{}, false, err
	}
	return quote, true, nil
}

// Save implements enrichment.QuoteCache.
func (s *ValkeyStore) Save(ctx context.Context, bucket string, quote enrichment.Quote, ttl time.Duration) error {
	payload, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(bucket)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(bucket string) string {
	return fmt.Sprintf("%s:quote:%s", s.prefix, bucket)
}

var _ enrichment.QuoteCache = (*ValkeyStore)(nil)
