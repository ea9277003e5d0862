package enrichment

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ageBucket struct {
	name     string
	keywords []string
}

var (
	bucketAny    = ageBucket{name: "any"}
	bucketYouth  = ageBucket{name: "youth", keywords: []string{"youth", "growth", "future", "learning", "dream"}}
	bucketAdult  = ageBucket{name: "adult", keywords: []string{"experience", "opportunity", "journey", "discovery"}}
	bucketMiddle = ageBucket{name: "midlife", keywords: []string{"wisdom", "midlife", "reflection", "purpose"}}
	bucketSenior = ageBucket{name: "senior", keywords: []string{"wisdom", "legacy", "time", "life", "memory"}}
)

func bucketFor(age *AgeContext) ageBucket {
	if age == nil {
		return bucketAny
	}
	switch {
	case age.Years < 20:
		return bucketYouth
	case age.Years < 40:
		return bucketAdult
	case age.Years < 60:
		return bucketMiddle
	default:
		return bucketSenior
	}
}

// filterByKeywords keeps quotes whose text or category mentions a keyword.
func filterByKeywords(quotes []Quote, keywords []string) []Quote {
	if len(keywords) == 0 {
		return nil
	}
	var out []Quote
	for _, q := range quotes {
		text := strings.ToLower(q.Text)
		category := strings.ToLower(q.Category)
		for _, kw := range keywords {
			if strings.Contains(text, kw) || strings.Contains(category, kw) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

var printer = message.NewPrinter(language.English)

func formatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

func calculatedFacts(age AgeContext) []FunFact {
	days := int64(age.TotalDays)
	years := int64(age.Years)
	return []FunFact{
		{
			Fact:   printer.Sprintf("In %d years, your heart has beaten approximately %s times!", years, formatInt(days*100000)),
			Icon:   "❤️",
			Source: SourceCalculated,
		},
		{
			Fact:   printer.Sprintf("You have blinked about %s times in %d years!", formatInt(days*15000), years),
			Icon:   "👁️",
			Source: SourceCalculated,
		},
		{
			Fact:   printer.Sprintf("You have lived through %s sunrises and sunsets!", formatInt(years*365)),
			Icon:   "🌅",
			Source: SourceCalculated,
		},
	}
}
