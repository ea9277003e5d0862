package enrichment

import (
	"time"

	"github.com/yanqian/agemaster/pkg/metrics"
)

// Content sources reported on quotes and facts.
const (
	SourceAI         = "ai"
	SourceAICache    = "ai_cache"
	SourceLocal      = "local"
	SourceCalculated = "calculated"
	SourceFallback   = "fallback"
)

// Quote is a quote record returned to clients.
type Quote struct {
	Text        string              `json:"text"`
	Author      string              `json:"author"`
	Category    string              `json:"category,omitempty"`
	Source      string              `json:"source"`
	AIGenerated bool                `json:"ai_generated"`
	Model       string              `json:"model,omitempty"`
	TokenUsage  *metrics.TokenUsage `json:"token_usage,omitempty"`
}

// FunFact is a short trivia line with an icon.
type FunFact struct {
	Fact   string `json:"fact"`
	Icon   string `json:"icon"`
	Source string `json:"source"`
}

// AgeContext is the slice of an age record that content selection uses.
type AgeContext struct {
	Years     int
	TotalDays int
}

// GeneratedText is the raw output of a generative provider.
type GeneratedText struct {
	Text  string
	Model string
}

// Config holds runtime knobs for the enrichment gateway.
type Config struct {
	// AIProbability is the share of requests that consider the remote provider.
	AIProbability float64
	// Timeout bounds a single remote generation.
	Timeout time.Duration
	// CacheTTL controls how long generated quotes stay reusable.
	CacheTTL time.Duration
	// Prompt overrides the instruction sent to the provider.
	Prompt   string
	Throttle ThrottleConfig
}
