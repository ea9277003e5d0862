package metrics

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// TokenCounter estimates token counts for prompts and completions.
type TokenCounter interface {
	Count(model, text string) int
}

// TiktokenCounter counts tokens with the BPE encoding of the requested model.
// Models tiktoken does not know (Gemini, local models) use cl100k_base, and a
// word count is used when no encoding can be loaded at all.
type TiktokenCounter struct {
	mu        sync.Mutex
	encodings map[string]*tiktoken.Tiktoken
}

// NewTiktokenCounter constructs a counter with a lazily populated encoding cache.
func NewTiktokenCounter() *TiktokenCounter {
	return &TiktokenCounter{encodings: make(map[string]*tiktoken.Tiktoken)}
}

// Count implements TokenCounter.
func (c *TiktokenCounter) Count(model, text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	enc := c.encoding(model)
	if enc == nil {
		return WordCount(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func (c *TiktokenCounter) encoding(model string) *tiktoken.Tiktoken {
	c.mu.Lock()
	defer c.mu.Unlock()
	if enc, ok := c.encodings[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			enc = nil
		}
	}
	c.encodings[model] = enc
	return enc
}

// WordCount is the crude estimate used when no tokenizer is available.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Usage assembles a TokenUsage from prompt and completion text.
func Usage(counter TokenCounter, model, prompt, completion string) TokenUsage {
	if counter == nil {
		return TokenUsage{}
	}
	p := counter.Count(model, prompt)
	c := counter.Count(model, completion)
	return TokenUsage{PromptTokens: p, CompletionTokens: c, TotalTokens: p + c}
}
