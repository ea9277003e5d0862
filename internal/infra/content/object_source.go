package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
)

// maxObjectBytes caps how much of a collection object is read.
const maxObjectBytes = 4 << 20

// ObjectReader fetches an object by key.
type ObjectReader interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// BucketReader reads collection objects from an S3-compatible bucket.
type BucketReader struct {
	client *minio.Client
	bucket string
}

// BucketOptions locates the bucket that holds the collections.
type BucketOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// NewBucketReader constructs a minio client for the configured endpoint.
func NewBucketReader(opts BucketOptions) (*BucketReader, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("content bucket cannot be empty")
	}
	useSSL := strings.HasPrefix(strings.ToLower(strings.TrimSpace(opts.Endpoint)), "https")
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &BucketReader{client: client, bucket: opts.Bucket}, nil
}

// Get fetches an object for reading.
func (r *BucketReader) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces a missing key.
	if _, statErr := obj.Stat(); statErr != nil {
		_ = obj.Close()
		return nil, statErr
	}
	return obj, nil
}

// ObjectSource loads the collections from object storage.
type ObjectSource struct {
	reader    ObjectReader
	quotesKey string
	factsKey  string
	logger    *slog.Logger
}

// NewObjectSource builds a source over reader. Empty keys use the file names
// of the data directory layout.
func NewObjectSource(reader ObjectReader, quotesKey, factsKey string, logger *slog.Logger) *ObjectSource {
	if quotesKey == "" {
		quotesKey = quotesFile
	}
	if factsKey == "" {
		factsKey = factsFile
	}
	return &ObjectSource{
		reader:    reader,
		quotesKey: quotesKey,
		factsKey:  factsKey,
		logger:    logger.With("component", "content.object_source"),
	}
}

// Quotes implements enrichment.ContentSource.
func (s *ObjectSource) Quotes(ctx context.Context) ([]enrichment.Quote, error) {
	raw, err := s.fetch(ctx, s.quotesKey)
	if err != nil {
		return nil, err
	}
	return decodeQuotes(raw)
}

// Facts implements enrichment.ContentSource.
func (s *ObjectSource) Facts(ctx context.Context) ([]enrichment.FunFact, error) {
	raw, err := s.fetch(ctx, s.factsKey)
	if err != nil {
		return nil, err
	}
	return decodeFacts(raw)
}

func (s *ObjectSource) fetch(ctx context.Context, key string) ([]byte, error) {
	body, err := s.reader.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer body.Close()
	raw, err := io.ReadAll(io.LimitReader(body, maxObjectBytes))
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	s.logger.Debug("collection fetched", "key", key, "bytes", len(raw))
	return raw, nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

var (
	_ ObjectReader              = (*BucketReader)(nil)
	_ enrichment.ContentSource = (*ObjectSource)(nil)
)
