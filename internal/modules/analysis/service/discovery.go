package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/platform/telegram"
)

const (
	// reactionSampleLimit bounds the history scan used to collect reaction
	// samples on a discovered channel.
	reactionSampleLimit = 10
	// defaultJoinWindow is how far back member joins count as "recent".
	defaultJoinWindow = 7 * 24 * time.Hour
)

// Discoverer resolves the channels a user plausibly owns: first the channel
// declared on their profile, then channels shared with the bot where the user
// holds the owner role. Results are deduplicated by channel id; the profile
// method wins on collision.
type Discoverer struct {
	client     telegram.Client
	joinWindow time.Duration
}

func NewDiscoverer(client telegram.Client) *Discoverer {
	return &Discoverer{
		client:     client,
		joinWindow: defaultJoinWindow,
	}
}

// OwnedChannels returns every channel discovered for the user. A failure on
// one channel is logged and skips only that channel; discovery as a whole
// does not abort.
func (d *Discoverer) OwnedChannels(ctx context.Context, userID int64) []domain.OwnedChannel {
	var channels []domain.OwnedChannel
	seen := map[int64]struct{}{}

	// Method 1: personal channel declared on the profile (primary).
	if ref, ok, err := d.client.PersonalChannelRef(ctx, userID); err != nil {
		slog.Debug("Could not read personal channel from profile", "user_id", userID, "error", err)
	} else if ok {
		channelID := NormalizeChannelID(ref)
		if channel, ok := d.collectChannel(ctx, channelID, domain.ChannelSourceProfile); ok {
			channels = append(channels, channel)
			seen[channelID] = struct{}{}
		}
	}

	// Method 2: chats shared with the bot where the user is the owner
	// (fallback).
	commonChats, err := d.client.ListCommonChats(ctx, userID)
	if err != nil {
		slog.Debug("Could not list common chats", "user_id", userID, "error", err)
		return channels
	}

	for _, chat := range commonChats {
		if _, dup := seen[chat.ID]; dup {
			continue
		}
		if chat.Type != "channel" {
			continue
		}
		owner, err := d.isChannelOwner(ctx, chat.ID, userID)
		if err != nil {
			slog.Debug("Could not check channel ownership", "channel_id", chat.ID, "user_id", userID, "error", err)
			continue
		}
		if !owner {
			continue
		}
		if channel, ok := d.collectChannel(ctx, chat.ID, domain.ChannelSourceCommonChats); ok {
			channels = append(channels, channel)
			seen[chat.ID] = struct{}{}
		}
	}

	return channels
}

// NormalizeChannelID converts a profile channel reference into the canonical
// channel-id encoding: negative references are already canonical, positive
// ones carry the -1000000000000 offset.
func NormalizeChannelID(ref int64) int64 {
	if ref < 0 {
		return ref
	}
	return -1_000_000_000_000 - ref
}

func (d *Discoverer) collectChannel(ctx context.Context, channelID int64, source domain.ChannelSource) (domain.OwnedChannel, bool) {
	chat, err := d.client.GetChat(ctx, channelID)
	if err != nil {
		slog.Debug("Could not fetch channel stats", "channel_id", channelID, "error", err)
		return domain.OwnedChannel{}, false
	}
	// Private groups and other non-channel chats are excluded.
	if chat.Type != "channel" {
		return domain.OwnedChannel{}, false
	}

	return domain.OwnedChannel{
		ID:              channelID,
		Title:           chat.Title,
		Username:        chat.Username,
		Description:     chat.Description,
		MemberCount:     chat.MemberCount,
		RecentReactions: d.recentReactions(ctx, channelID),
		RecentJoins:     d.recentJoins(ctx, channelID),
		Source:          source,
	}, true
}

func (d *Discoverer) isChannelOwner(ctx context.Context, channelID, userID int64) (bool, error) {
	admins, err := d.client.ListAdministrators(ctx, channelID)
	if err != nil {
		return false, err
	}
	return lo.SomeBy(admins, func(admin telegram.ChatMember) bool {
		return admin.IsOwner && admin.User.ID == userID
	}), nil
}

// recentReactions samples the last few messages that carry reactions, with
// per-emoji counts.
func (d *Discoverer) recentReactions(ctx context.Context, channelID int64) []domain.MessageReactions {
	messages, err := d.client.ListRecentMessages(ctx, channelID, reactionSampleLimit)
	if err != nil {
		slog.Debug("Could not fetch recent messages", "channel_id", channelID, "error", err)
		return nil
	}

	return lo.FilterMap(messages, func(msg telegram.ChannelMessage, _ int) (domain.MessageReactions, bool) {
		if len(msg.Reactions) == 0 {
			return domain.MessageReactions{}, false
		}
		total := lo.SumBy(msg.Reactions, func(r telegram.Reaction) int { return r.Count })
		counts := lo.Map(msg.Reactions, func(r telegram.Reaction, _ int) domain.ReactionCount {
			return domain.ReactionCount{Emoji: r.Emoji, Count: r.Count}
		})
		return domain.MessageReactions{
			MessageID:  msg.ID,
			Date:       msg.Date,
			TotalCount: total,
			Reactions:  counts,
		}, true
	})
}

// recentJoins lists members whose join timestamp falls inside the recency
// window. Requires elevated access; without it the client yields an empty
// list and that is not an error.
func (d *Discoverer) recentJoins(ctx context.Context, channelID int64) []domain.MemberJoin {
	members, err := d.client.ListMembers(ctx, channelID)
	if err != nil {
		slog.Debug("Could not list channel members", "channel_id", channelID, "error", err)
		return nil
	}

	cutoff := time.Now().Add(-d.joinWindow)
	return lo.FilterMap(members, func(member telegram.ChatMember, _ int) (domain.MemberJoin, bool) {
		if member.JoinedAt.IsZero() || member.JoinedAt.Before(cutoff) {
			return domain.MemberJoin{}, false
		}
		return domain.MemberJoin{UserID: member.User.ID, JoinedAt: member.JoinedAt}, true
	})
}
