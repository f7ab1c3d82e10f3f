// Package telegram wraps the messaging platform behind a narrow client
// interface so that analysis and moderation code never talk to the bot
// library directly.
package telegram

import (
	"context"
	"time"
)

// User is the platform identity of a chat member.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	IsBot     bool
	Bio       string
}

// FullName returns the display name used in logs and notifications.
func (u User) FullName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// Chat carries the metadata the analysis pipeline needs about a chat or
// channel.
type Chat struct {
	ID                  int64
	Type                string
	Title               string
	Username            string
	Description         string
	MemberCount         int
	HasProtectedContent bool
}

// ChatMember is a member record with the ownership and join information
// discovery relies on. JoinedAt is zero when the platform does not expose it.
type ChatMember struct {
	User     User
	IsOwner  bool
	JoinedAt time.Time
}

// Reaction is a per-emoji reaction count on a message.
type Reaction struct {
	Emoji string
	Count int
}

// ChannelMessage is one sampled message from a channel's recent history.
type ChannelMessage struct {
	ID        int
	Date      time.Time
	Text      string
	HasMedia  bool
	Reactions []Reaction
}

// Client is the platform surface consumed by the core. Listing methods that
// the underlying transport cannot serve return empty results rather than
// errors; callers treat absence as "no data", never as suspicion.
type Client interface {
	GetUser(ctx context.Context, userID int64) (*User, error)
	GetChat(ctx context.Context, chatID int64) (*Chat, error)

	// PersonalChannelRef returns the channel a user linked to their profile.
	// ok is false when no channel is declared or the transport cannot see it.
	PersonalChannelRef(ctx context.Context, userID int64) (ref int64, ok bool, err error)

	ListCommonChats(ctx context.Context, userID int64) ([]Chat, error)
	ListAdministrators(ctx context.Context, chatID int64) ([]ChatMember, error)
	ListRecentMessages(ctx context.Context, chatID int64, limit int) ([]ChannelMessage, error)
	ListMembers(ctx context.Context, chatID int64) ([]ChatMember, error)
	ListReactors(ctx context.Context, chatID int64, messageID int, emoji string) ([]User, error)

	Ban(ctx context.Context, chatID, userID int64) error
	Unban(ctx context.Context, chatID, userID int64) error
	Mute(ctx context.Context, chatID, userID int64) error
	SendMessage(ctx context.Context, chatID int64, text string) error
}
