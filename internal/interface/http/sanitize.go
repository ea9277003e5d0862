package http

import (
	"regexp"
	"strings"
)

var (
	markupPattern = regexp.MustCompile(`<[^>]*>`)
	unsafePattern = regexp.MustCompile("[<>\"';()&|$`]")
)

// sanitizeText strips markup and shell/script metacharacters from client
// visible text and caps it at maxRunes characters.
func sanitizeText(text string, maxRunes int) string {
	if text == "" {
		return ""
	}
	text = markupPattern.ReplaceAllString(text, "")
	text = unsafePattern.ReplaceAllString(text, "")
	if runes := []rune(text); len(runes) > maxRunes {
		text = string(runes[:maxRunes])
	}
	return strings.TrimSpace(text)
}
