package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/domain"
)

func TestScoreNsfwCleanChannel(t *testing.T) {
	assert := assert.New(t)

	result := ScoreNsfw(ChannelContent{Title: "Cooking recipes", Description: "Daily dinner ideas"})
	assert.False(result.IsNsfw)
	assert.Equal(0, result.Score)
	assert.Equal(domain.ConfidenceNone, result.Confidence)
	assert.Empty(result.Reasons)
}

func TestScoreNsfwTitleAndDescriptionWeights(t *testing.T) {
	assert := assert.New(t)

	// One title keyword: +2.
	result := ScoreNsfw(ChannelContent{Title: "adult stories"})
	assert.Equal(2, result.Score)
	assert.Equal(domain.ConfidenceLow, result.Confidence)
	assert.True(result.IsNsfw)

	// Same keyword in the description only: +1.
	result = ScoreNsfw(ChannelContent{Description: "adult stories"})
	assert.Equal(1, result.Score)
	assert.Equal(domain.ConfidenceLow, result.Confidence)

	// All keyword occurrences count, not just the first.
	result = ScoreNsfw(ChannelContent{Title: "nsfw adult leaked"})
	assert.Equal(6, result.Score)
	assert.Equal(domain.ConfidenceHigh, result.Confidence)
	assert.Len(result.Reasons, 3)
}

func TestScoreNsfwProtectedContent(t *testing.T) {
	assert := assert.New(t)

	result := ScoreNsfw(ChannelContent{Title: "plain", HasProtectedContent: true})
	assert.Equal(1, result.Score)
	assert.Contains(result.Reasons, "Protected content enabled")
}

func TestScoreNsfwMessageRatio(t *testing.T) {
	assert := assert.New(t)

	messages := func(media, clean int) []SampledMessage {
		msgs := make([]SampledMessage, 0, media+clean)
		for i := 0; i < media; i++ {
			msgs = append(msgs, SampledMessage{HasMedia: true})
		}
		for i := 0; i < clean; i++ {
			msgs = append(msgs, SampledMessage{Text: "hello"})
		}
		return msgs
	}

	// 15 of 20 messages with media: ratio 0.75 > 0.5, +3.
	result := ScoreNsfw(ChannelContent{Title: "news", Messages: messages(15, 5)})
	assert.Equal(3, result.Score)
	assert.Equal(domain.ConfidenceMedium, result.Confidence)
	assert.True(result.IsNsfw)
	assert.Contains(result.Reasons[0], "High NSFW content ratio")

	// 8 of 20: ratio 0.4, moderate bucket, +1.
	result = ScoreNsfw(ChannelContent{Title: "news", Messages: messages(8, 12)})
	assert.Equal(1, result.Score)
	assert.Contains(result.Reasons[0], "Moderate NSFW content ratio")

	// 4 of 20: ratio 0.2, no score change.
	result = ScoreNsfw(ChannelContent{Title: "news", Messages: messages(4, 16)})
	assert.Equal(0, result.Score)
	assert.False(result.IsNsfw)

	// Keyword text counts the same as media.
	result = ScoreNsfw(ChannelContent{Title: "news", Messages: []SampledMessage{
		{Text: "onlyfans link in bio"},
		{Text: "fine"},
	}})
	assert.Equal(1, result.Score)
}

func TestScoreNsfwMonotonic(t *testing.T) {
	assert := assert.New(t)

	base := ScoreNsfw(ChannelContent{Title: "adult"})
	more := ScoreNsfw(ChannelContent{Title: "adult", Description: "adult", HasProtectedContent: true})
	assert.GreaterOrEqual(more.Score, base.Score)
}

func TestConfidenceBuckets(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(domain.ConfidenceNone, confidenceForScore(0))
	assert.Equal(domain.ConfidenceLow, confidenceForScore(1))
	assert.Equal(domain.ConfidenceLow, confidenceForScore(2))
	assert.Equal(domain.ConfidenceMedium, confidenceForScore(3))
	assert.Equal(domain.ConfidenceMedium, confidenceForScore(4))
	assert.Equal(domain.ConfidenceHigh, confidenceForScore(5))
	assert.Equal(domain.ConfidenceHigh, confidenceForScore(11))
}

func TestBenignNsfwResult(t *testing.T) {
	assert := assert.New(t)

	result := BenignNsfwResult()
	assert.False(result.IsNsfw)
	assert.Equal(0, result.Score)
	assert.Equal(domain.ConfidenceNone, result.Confidence)
	assert.Empty(result.Reasons)
}
