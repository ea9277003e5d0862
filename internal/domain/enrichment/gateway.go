package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/yanqian/agemaster/pkg/metrics"
)

const defaultPrompt = "Create a short, meaningful quote about time or aging."

// Gateway supplies quotes and fun facts. Both content operations are total:
// every failure resolves to local or literal content.
type Gateway interface {
	Quote(ctx context.Context, age *AgeContext) Quote
	FunFact(ctx context.Context, age AgeContext) FunFact
	Status() ThrottleStatus
}

type gateway struct {
	cfg       Config
	source    ContentSource
	generator Generator
	cache     QuoteCache
	counter   metrics.TokenCounter
	throttle  *Throttle
	logger    *slog.Logger
	roll      func() float64
	pick      func(n int) int
}

// NewGateway wires the enrichment gateway. generator and cache may be nil,
// in which case only local content is served.
func NewGateway(cfg Config, source ContentSource, generator Generator, cache QuoteCache, counter metrics.TokenCounter, throttle *Throttle, logger *slog.Logger) Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if throttle == nil {
		throttle = NewThrottle(cfg.Throttle, nil)
	}
	return &gateway{
		cfg:       cfg,
		source:    source,
		generator: generator,
		cache:     cache,
		counter:   counter,
		throttle:  throttle,
		logger:    logger.With("component", "enrichment.gateway"),
		roll:      rand.Float64,
		pick:      rand.IntN,
	}
}

func (g *gateway) Quote(ctx context.Context, age *AgeContext) Quote {
	bucket := bucketFor(age)
	if g.generator != nil && g.roll() < g.cfg.AIProbability {
		if g.throttle.ShouldAttemptRemote() {
			quote, err := g.generateQuote(ctx, age)
			if err == nil {
				g.throttle.RecordOutcome(OutcomeSuccess)
				g.remember(ctx, bucket.name, quote)
				return quote
			}
			outcome := OutcomeError
			if errors.Is(err, ErrQuotaExceeded) {
				outcome = OutcomeQuotaExceeded
			}
			g.throttle.RecordOutcome(outcome)
			g.logger.Warn("ai quote failed, using local content", "error", err, "quota", outcome == OutcomeQuotaExceeded)
		} else if cached, ok := g.recall(ctx, bucket.name); ok {
			return cached
		}
	}
	return g.localQuote(ctx, bucket)
}

func (g *gateway) FunFact(ctx context.Context, age AgeContext) FunFact {
	facts, err := g.source.Facts(ctx)
	if err != nil {
		g.logger.Warn("fun facts unavailable", "error", err)
	}
	if len(facts) > 0 {
		fact := facts[g.pick(len(facts))]
		fact.Source = SourceLocal
		return fact
	}
	if age.TotalDays > 0 {
		calculated := calculatedFacts(age)
		return calculated[g.pick(len(calculated))]
	}
	return fallbackFact()
}

func (g *gateway) Status() ThrottleStatus {
	if g.generator == nil {
		return ThrottleStatus{Enabled: false, Available: false}
	}
	return g.throttle.Status()
}

func (g *gateway) generateQuote(ctx context.Context, age *AgeContext) (Quote, error) {
	prompt := g.buildPrompt(age)
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	out, err := g.generator.Generate(ctx, prompt)
	if err != nil {
		return Quote{}, err
	}
	text := cleanGenerated(out.Text)
	if text == "" {
		return Quote{}, errors.New("provider returned empty text")
	}
	usage := metrics.Usage(g.counter, out.Model, prompt, text)
	quote := Quote{
		Text:        text,
		Author:      "AI Wisdom",
		Category:    aiCategories[g.pick(len(aiCategories))],
		Source:      SourceAI,
		AIGenerated: true,
		Model:       out.Model,
	}
	if !usage.IsZero() {
		quote.TokenUsage = &usage
	}
	return quote, nil
}

var aiCategories = []string{"wisdom", "time", "life", "reflection"}

func (g *gateway) buildPrompt(age *AgeContext) string {
	base := strings.TrimSpace(g.cfg.Prompt)
	if base == "" {
		base = defaultPrompt
	}
	parts := []string{base}
	if age != nil {
		parts = append(parts, fmt.Sprintf("The person is %d years old (%s days).", age.Years, formatInt(int64(age.TotalDays))))
	}
	parts = append(parts,
		"Make it personal, positive, and philosophical. 1 sentence max.",
		"Return only the quote text, no JSON, no formatting.",
	)
	return strings.Join(parts, " ")
}

func cleanGenerated(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.Trim(text, "\"“”'`")
	return strings.TrimSpace(text)
}

func (g *gateway) remember(ctx context.Context, bucket string, quote Quote) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Save(ctx, bucket, quote, g.cfg.CacheTTL); err != nil {
		g.logger.Warn("quote cache save failed", "bucket", bucket, "error", err)
	}
}

func (g *gateway) recall(ctx context.Context, bucket string) (Quote, bool) {
	if g.cache == nil {
		return Quote{}, false
	}
	quote, ok, err := g.cache.Get(ctx, bucket)
	if err != nil {
		g.logger.Warn("quote cache lookup failed", "bucket", bucket, "error", err)
		return Quote{}, false
	}
	if !ok {
		return Quote{}, false
	}
	quote.Source = SourceAICache
	quote.AIGenerated = true
	quote.TokenUsage = nil
	return quote, true
}

func (g *gateway) localQuote(ctx context.Context, bucket ageBucket) Quote {
	quotes, err := g.source.Quotes(ctx)
	if err != nil {
		g.logger.Warn("local quotes unavailable", "error", err)
		return fallbackQuote()
	}
	candidates := filterByKeywords(quotes, bucket.keywords)
	if len(candidates) == 0 {
		candidates = quotes
	}
	if len(candidates) == 0 {
		return fallbackQuote()
	}
	quote := candidates[g.pick(len(candidates))]
	quote.Source = SourceLocal
	quote.AIGenerated = false
	quote.Model = ""
	quote.TokenUsage = nil
	return quote
}

func fallbackQuote() Quote {
	return Quote{
		Text:     "The years teach much which the days never know.",
		Author:   "Ralph Waldo Emerson",
		Category: "wisdom",
		Source:   SourceFallback,
	}
}

func fallbackFact() FunFact {
	return FunFact{
		Fact:   "Your heart beats about 100,000 times per day!",
		Icon:   "❤️",
		Source: SourceFallback,
	}
}
