package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKeywordsSubstrings(t *testing.T) {
	assert := assert.New(t)

	keywords := []string{"casino", "crypto", "promo"}

	match := MatchKeywords("Welcome to the Crypto Casino VIP lounge", keywords)
	assert.True(match.Matched)
	assert.Equal([]string{"casino", "crypto"}, match.Keywords)

	match = MatchKeywords("just a regular greeting", keywords)
	assert.False(match.Matched)
	assert.Empty(match.Keywords)
}

func TestMatchKeywordsCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	match := MatchKeywords("BIG PROMO today", []string{"promo"})
	assert.True(match.Matched)
	assert.Equal([]string{"promo"}, match.Keywords)

	match = MatchKeywords("big promo today", []string{"PROMO"})
	assert.True(match.Matched)
	assert.Equal([]string{"PROMO"}, match.Keywords)
}

func TestMatchKeywordsEmptyText(t *testing.T) {
	assert := assert.New(t)

	match := MatchKeywords("", []string{"casino"})
	assert.False(match.Matched)
	assert.Empty(match.Keywords)
}

func TestHasChannelMention(t *testing.T) {
	assert := assert.New(t)

	assert.True(HasChannelMention("join @abcde now"))
	assert.True(HasChannelMention("see t.me/abcde"))
	assert.True(HasChannelMention("see telegram.me/abcde"))

	// Handles need 5+ characters.
	assert.False(HasChannelMention("ping @abcd"))
	assert.False(HasChannelMention("see t.me/abcd"))
	assert.False(HasChannelMention(""))
	assert.False(HasChannelMention("no links here"))
}

func TestMatchKeywordsMentionWithoutKeyword(t *testing.T) {
	assert := assert.New(t)

	match := MatchKeywords("my channel: t.me/funstuff", []string{"casino"})
	assert.True(match.Matched)
	assert.Empty(match.Keywords)
}
