package enrichment

import (
	"context"
	"errors"
	"time"
)

// ErrQuotaExceeded marks provider failures caused by rate or quota limits.
var ErrQuotaExceeded = errors.New("generative provider quota exceeded")

// ContentSource provides the canned quote and fact collections.
type ContentSource interface {
	Quotes(ctx context.Context) ([]Quote, error)
	Facts(ctx context.Context) ([]FunFact, error)
}

// Generator produces free text from a prompt. Implementations wrap
// ErrQuotaExceeded when the provider signals quota exhaustion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (GeneratedText, error)
}

// QuoteCache keeps recently generated quotes per age bucket.
type QuoteCache interface {
	Get(ctx context.Context, bucket string) (Quote, bool, error)
	Save(ctx context.Context, bucket string, quote Quote, ttl time.Duration) error
}
