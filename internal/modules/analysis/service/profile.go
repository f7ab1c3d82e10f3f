package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/platform/telegram"
)

// Analyzer produces one ProfileAnalysis per check: bio keyword evidence,
// discovered channels, and per-channel keyword/NSFW verdicts.
type Analyzer struct {
	client     telegram.Client
	discoverer *Discoverer
}

func NewAnalyzer(client telegram.Client, discoverer *Discoverer) *Analyzer {
	return &Analyzer{
		client:     client,
		discoverer: discoverer,
	}
}

// AnalyzeProfile inspects the user's bio and owned channels against the
// configured suspicious keywords. A nil result with an error means the
// profile could not be analyzed at all (private, deleted, inaccessible) --
// distinct from "analyzed and clean".
func (a *Analyzer) AnalyzeProfile(ctx context.Context, userID int64, keywords []string) (*domain.ProfileAnalysis, error) {
	slog.Debug("Starting profile analysis", "user_id", userID)

	user, err := a.client.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	channels := a.discoverer.OwnedChannels(ctx, userID)
	slog.Info("Channel discovery complete", "user_id", userID, "channels", len(channels))

	bioMatch := MatchKeywords(user.Bio, keywords)
	if bioMatch.Matched {
		slog.Warn("Bio contains suspicious content", "user_id", userID, "keywords", bioMatch.Keywords)
	}

	var suspicious []domain.ChannelAnalysis
	var nsfw []domain.ChannelAnalysis

	for _, channel := range channels {
		slog.Debug("Analyzing channel", "channel_id", channel.ID, "title", channel.Title)

		matchedKeyword, keywordHit := firstChannelKeyword(channel, keywords)
		if keywordHit {
			slog.Warn("Channel matched keyword", "title", channel.Title, "keyword", matchedKeyword)
		}

		nsfwResult := a.checkChannelNsfw(ctx, channel.ID)
		if nsfwResult.IsNsfw {
			slog.Warn("NSFW channel detected", "title", channel.Title, "confidence", nsfwResult.Confidence)
			nsfw = append(nsfw, domain.ChannelAnalysis{
				Channel:        channel,
				MatchedKeyword: matchedKeyword,
				Nsfw:           nsfwResult,
			})
			// NSFW channels are suspicious even without a keyword hit.
			if !keywordHit {
				keywordHit = true
				matchedKeyword = fmt.Sprintf("NSFW (%s)", nsfwResult.Confidence)
			}
		}

		if keywordHit {
			suspicious = append(suspicious, domain.ChannelAnalysis{
				Channel:        channel,
				MatchedKeyword: matchedKeyword,
				Nsfw:           nsfwResult,
			})
		}
	}

	totalJoins := lo.SumBy(channels, func(ch domain.OwnedChannel) int {
		return len(ch.RecentJoins)
	})

	analysis := &domain.ProfileAnalysis{
		UserID:             userID,
		Bio:                user.Bio,
		HasBioMentions:     bioMatch.Matched,
		BioKeywords:        bioMatch.Keywords,
		TotalChannels:      len(channels),
		Channels:           channels,
		SuspiciousChannels: suspicious,
		NsfwChannels:       nsfw,
		TotalRecentJoins:   totalJoins,
		IsSuspicious:       bioMatch.Matched || len(suspicious) > 0 || len(nsfw) > 0,
	}

	slog.Info("Profile analysis complete",
		"user_id", userID,
		"suspicious_channels", len(suspicious),
		"nsfw_channels", len(nsfw),
		"is_suspicious", analysis.IsSuspicious)

	return analysis, nil
}

// firstChannelKeyword checks a channel's title and username for the first
// configured keyword hit. Mention patterns do not apply to channel names.
func firstChannelKeyword(channel domain.OwnedChannel, keywords []string) (string, bool) {
	titleMatch := MatchKeywords(channel.Title, keywords)
	if len(titleMatch.Keywords) > 0 {
		return titleMatch.Keywords[0], true
	}
	usernameMatch := MatchKeywords(channel.Username, keywords)
	if len(usernameMatch.Keywords) > 0 {
		return usernameMatch.Keywords[0], true
	}
	return "", false
}

// checkChannelNsfw fetches the channel metadata and a bounded history sample
// and runs the NSFW heuristic. Fetch failures degrade to a benign result.
func (a *Analyzer) checkChannelNsfw(ctx context.Context, channelID int64) domain.NsfwResult {
	chat, err := a.client.GetChat(ctx, channelID)
	if err != nil {
		slog.Debug("Could not fetch channel for NSFW check", "channel_id", channelID, "error", err)
		return BenignNsfwResult()
	}

	content := ChannelContent{
		Title:               chat.Title,
		Description:         chat.Description,
		HasProtectedContent: chat.HasProtectedContent,
	}

	messages, err := a.client.ListRecentMessages(ctx, channelID, NsfwSampleLimit)
	if err != nil {
		slog.Debug("Could not fetch channel history for NSFW check", "channel_id", channelID, "error", err)
	} else {
		content.Messages = lo.Map(messages, func(msg telegram.ChannelMessage, _ int) SampledMessage {
			return SampledMessage{Text: msg.Text, HasMedia: msg.HasMedia}
		})
	}

	return ScoreNsfw(content)
}

// ScanReactors returns the deduplicated, non-bot users who reacted to a
// message. Order of reactors is not guaranteed or meaningful.
func ScanReactors(ctx context.Context, client telegram.Client, chatID int64, messageID int, reactions []telegram.Reaction) []int64 {
	seen := map[int64]struct{}{}
	var reactors []int64

	for _, reaction := range reactions {
		users, err := client.ListReactors(ctx, chatID, messageID, reaction.Emoji)
		if err != nil {
			slog.Debug("Could not list reactors", "chat_id", chatID, "message_id", messageID, "emoji", reaction.Emoji, "error", err)
			continue
		}
		for _, user := range users {
			if user.IsBot {
				continue
			}
			if _, dup := seen[user.ID]; dup {
				continue
			}
			seen[user.ID] = struct{}{}
			reactors = append(reactors, user.ID)
		}
	}

	return reactors
}
