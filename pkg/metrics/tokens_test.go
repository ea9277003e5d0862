package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedCounter map[string]int

func (f fixedCounter) Count(_ string, text string) int {
	return f[text]
}

func TestUsageSumsPromptAndCompletion(t *testing.T) {
	counter := fixedCounter{"prompt": 12, "answer": 5}
	usage := Usage(counter, "gpt-4o-mini", "prompt", "answer")
	require.Equal(t, TokenUsage{PromptTokens: 12, CompletionTokens: 5, TotalTokens: 17}, usage)
	require.False(t, usage.IsZero())
}

func TestUsageWithoutCounter(t *testing.T) {
	require.True(t, Usage(nil, "m", "a", "b").IsZero())
}

func TestWordCount(t *testing.T) {
	require.Equal(t, 4, WordCount("  time is a  river "))
	require.Equal(t, 0, WordCount(""))
}
