package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	analysisdomain "github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
)

func fullPolicy() Policy {
	return Policy{
		EnableNsfwDetection:     true,
		AutoBanNsfwOnJoin:       true,
		AutoBanSuspiciousOnJoin: true,
		Action:                  domain.ActionBan,
	}
}

func channelAnalyses(n int) []analysisdomain.ChannelAnalysis {
	out := make([]analysisdomain.ChannelAnalysis, n)
	for i := range out {
		out[i] = analysisdomain.ChannelAnalysis{
			Channel: analysisdomain.OwnedChannel{ID: int64(-100 - i), Title: "Channel"},
		}
	}
	return out
}

func TestDecideNilAnalysisIsIgnored(t *testing.T) {
	assert := assert.New(t)

	decision := Decide(nil, fullPolicy())

	assert.Equal(domain.OutcomeIgnored, decision.Outcome)
	assert.False(decision.Instant)
	assert.Contains(decision.Reason, "cannot analyze")
}

func TestDecideNsfwWinsOverSuspicious(t *testing.T) {
	assert := assert.New(t)

	analysis := &analysisdomain.ProfileAnalysis{
		SuspiciousChannels: channelAnalyses(3),
		NsfwChannels:       channelAnalyses(2),
		IsSuspicious:       true,
	}

	decision := Decide(analysis, fullPolicy())

	assert.True(decision.Instant)
	assert.Equal("NSFW channels detected (2)", decision.Reason)
}

func TestDecideNsfwDisabledFallsToSuspicious(t *testing.T) {
	assert := assert.New(t)

	analysis := &analysisdomain.ProfileAnalysis{
		SuspiciousChannels: channelAnalyses(1),
		NsfwChannels:       channelAnalyses(1),
		IsSuspicious:       true,
	}
	policy := fullPolicy()
	policy.EnableNsfwDetection = false

	decision := Decide(analysis, policy)

	assert.True(decision.Instant)
	assert.Equal("Suspicious channels detected (1)", decision.Reason)
}

func TestDecideSuspiciousWithoutAutoBanWarns(t *testing.T) {
	assert := assert.New(t)

	analysis := &analysisdomain.ProfileAnalysis{
		SuspiciousChannels: channelAnalyses(1),
		IsSuspicious:       true,
	}
	policy := fullPolicy()
	policy.AutoBanSuspiciousOnJoin = false

	decision := Decide(analysis, policy)

	assert.Equal(domain.OutcomeWarned, decision.Outcome)
	assert.False(decision.Instant)
}

func TestDecideBioOnlySuspicionWarns(t *testing.T) {
	assert := assert.New(t)

	// Keyword hits in the bio alone never trigger an instant action.
	analysis := &analysisdomain.ProfileAnalysis{
		HasBioMentions: true,
		BioKeywords:    []string{"casino"},
		IsSuspicious:   true,
	}

	decision := Decide(analysis, fullPolicy())

	assert.Equal(domain.OutcomeWarned, decision.Outcome)
}

func TestDecideCleanProfileIsIgnored(t *testing.T) {
	assert := assert.New(t)

	decision := Decide(&analysisdomain.ProfileAnalysis{}, fullPolicy())

	assert.Equal(domain.OutcomeIgnored, decision.Outcome)
	assert.False(decision.Instant)
}
