package service

import (
	"fmt"
	"strings"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/domain"
)

// Fixed NSFW indicator list, independent from the configurable suspicious
// keywords.
var nsfwKeywords = []string{
	"nsfw", "18+", "adult", "porn", "sex", "xxx", "nude", "naked",
	"onlyfans", "premium content", "hot girls", "sexy", "leaked",
	"nudes", "explicit", "adult content", "mature", "erotic",
}

// ChannelContent is the material the NSFW scorer inspects: channel metadata
// plus a bounded sample of its most recent messages.
type ChannelContent struct {
	Title               string
	Description         string
	HasProtectedContent bool
	Messages            []SampledMessage
}

// SampledMessage is one message from the bounded history sample.
type SampledMessage struct {
	Text     string
	HasMedia bool
}

// NsfwSampleLimit bounds how many recent messages the scorer inspects.
const NsfwSampleLimit = 20

// ScoreNsfw runs the NSFW heuristic over channel content. Pure function:
// keyword hits in the title score 2, in the description 1, protected content
// 1, and the media/keyword ratio over the sampled messages adds 3 above 50%
// or 1 above 30%. Confidence is a step function of the total score.
func ScoreNsfw(content ChannelContent) domain.NsfwResult {
	score := 0
	reasons := []string{}

	titleLower := strings.ToLower(content.Title)
	descLower := strings.ToLower(content.Description)

	for _, keyword := range nsfwKeywords {
		if strings.Contains(titleLower, keyword) {
			reasons = append(reasons, fmt.Sprintf("Title contains: '%s'", keyword))
			score += 2
		}
	}
	for _, keyword := range nsfwKeywords {
		if strings.Contains(descLower, keyword) {
			reasons = append(reasons, fmt.Sprintf("Description contains: '%s'", keyword))
			score += 1
		}
	}

	if content.HasProtectedContent {
		reasons = append(reasons, "Protected content enabled")
		score += 1
	}

	if checked := len(content.Messages); checked > 0 {
		flagged := 0
		for _, msg := range content.Messages {
			if messageLooksNsfw(msg) {
				flagged++
			}
		}
		ratio := float64(flagged) / float64(checked)
		switch {
		case ratio > 0.5:
			reasons = append(reasons, fmt.Sprintf("High NSFW content ratio (%d%%)", int(ratio*100)))
			score += 3
		case ratio > 0.3:
			reasons = append(reasons, fmt.Sprintf("Moderate NSFW content ratio (%d%%)", int(ratio*100)))
			score += 1
		}
	}

	return domain.NsfwResult{
		IsNsfw:     score > 0,
		Confidence: confidenceForScore(score),
		Score:      score,
		Reasons:    reasons,
	}
}

// BenignNsfwResult is what fetch failures degrade to: NSFW status defaults to
// benign on uncertainty, never to suspicious.
func BenignNsfwResult() domain.NsfwResult {
	return domain.NsfwResult{
		IsNsfw:     false,
		Confidence: domain.ConfidenceNone,
		Score:      0,
		Reasons:    []string{},
	}
}

func messageLooksNsfw(msg SampledMessage) bool {
	if msg.HasMedia {
		return true
	}
	if msg.Text == "" {
		return false
	}
	textLower := strings.ToLower(msg.Text)
	for _, keyword := range nsfwKeywords {
		if strings.Contains(textLower, keyword) {
			return true
		}
	}
	return false
}

func confidenceForScore(score int) domain.Confidence {
	switch {
	case score >= 5:
		return domain.ConfidenceHigh
	case score >= 3:
		return domain.ConfidenceMedium
	case score >= 1:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceNone
	}
}
