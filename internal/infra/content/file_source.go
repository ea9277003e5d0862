package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
)

const (
	quotesFile = "quotes.json"
	factsFile  = "fun_facts.json"
)

//go:embed defaults/*.json
var defaults embed.FS

// FileSource reads the quote and fact collections from a data directory.
// Files missing from the directory fall back to the embedded defaults.
type FileSource struct {
	dir string
}

// NewFileSource builds a source rooted at dir. An empty dir serves only the
// embedded collections.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: strings.TrimSpace(dir)}
}

// Quotes implements enrichment.ContentSource.
func (s *FileSource) Quotes(_ context.Context) ([]enrichment.Quote, error) {
	raw, err := s.read(quotesFile)
	if err != nil {
		return nil, err
	}
	return decodeQuotes(raw)
}

// Facts implements enrichment.ContentSource.
func (s *FileSource) Facts(_ context.Context) ([]enrichment.FunFact, error) {
	raw, err := s.read(factsFile)
	if err != nil {
		return nil, err
	}
	return decodeFacts(raw)
}

func (s *FileSource) read(name string) ([]byte, error) {
	if s.dir != "" {
		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	return defaults.ReadFile("defaults/" + name)
}

func decodeQuotes(raw []byte) ([]enrichment.Quote, error) {
	var quotes []enrichment.Quote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	out := quotes[:0]
	for _, q := range quotes {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func decodeFacts(raw []byte) ([]enrichment.FunFact, error) {
	var facts []enrichment.FunFact
	if err := json.Unmarshal(raw, &facts); err != nil {
		return nil, fmt.Errorf("decode fun facts: %w", err)
	}
	out := facts[:0]
	for _, f := range facts {
		if strings.TrimSpace(f.Fact) == "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

var _ enrichment.ContentSource = (*FileSource)(nil)
