package service

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Channel and group references recognized in free text. Handles are 5+
// alphanumeric/underscore characters, per platform rules.
var mentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@[a-zA-Z0-9_]{5,}`),
	regexp.MustCompile(`t\.me/[a-zA-Z0-9_]{5,}`),
	regexp.MustCompile(`telegram\.me/[a-zA-Z0-9_]{5,}`),
}

// KeywordMatch is the evidence returned by MatchKeywords.
type KeywordMatch struct {
	// Matched is true when the text contains a channel mention or any of the
	// configured keywords.
	Matched bool
	// Keywords lists every configured keyword found in the text, not just the
	// first.
	Keywords []string
}

// MatchKeywords checks free text against the configured suspicious keywords
// (case-insensitive substring match) and the channel mention patterns.
// Pure and deterministic; empty text never matches.
func MatchKeywords(text string, keywords []string) KeywordMatch {
	if text == "" {
		return KeywordMatch{Keywords: []string{}}
	}

	textLower := strings.ToLower(text)
	found := lo.Filter(keywords, func(keyword string, _ int) bool {
		return keyword != "" && strings.Contains(textLower, strings.ToLower(keyword))
	})

	return KeywordMatch{
		Matched:  HasChannelMention(text) || len(found) > 0,
		Keywords: found,
	}
}

// HasChannelMention reports whether the text references a channel or group
// via @handle, t.me/handle or telegram.me/handle.
func HasChannelMention(text string) bool {
	if text == "" {
		return false
	}
	return lo.SomeBy(mentionPatterns, func(pattern *regexp.Regexp) bool {
		return pattern.MatchString(text)
	})
}
