package domain

import "time"

// ReactionCount is a per-emoji count on one channel message.
type ReactionCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// MessageReactions is the reaction sample attached to a discovered channel.
type MessageReactions struct {
	MessageID  int             `json:"message_id"`
	Date       time.Time       `json:"date"`
	TotalCount int             `json:"total_count"`
	Reactions  []ReactionCount `json:"reactions"`
}

// MemberJoin records one member whose join fell inside the recency window.
type MemberJoin struct {
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// OwnedChannel is a channel a user plausibly owns, recomputed on every
// analysis pass and never persisted.
type OwnedChannel struct {
	ID              int64              `json:"channel_id"`
	Title           string             `json:"title"`
	Username        string             `json:"username"`
	Description     string             `json:"description"`
	MemberCount     int                `json:"members_count"`
	RecentReactions []MessageReactions `json:"recent_reactions"`
	RecentJoins     []MemberJoin       `json:"recent_joins"`
	Source          ChannelSource      `json:"source"`
}

// NsfwResult is the outcome of the NSFW heuristic for one channel.
// Confidence is a deterministic step function of Score.
type NsfwResult struct {
	IsNsfw     bool       `json:"is_nsfw"`
	Confidence Confidence `json:"confidence"`
	Score      int        `json:"score"`
	Reasons    []string   `json:"reasons"`
}

// ChannelAnalysis attaches keyword and NSFW evidence to a discovered channel.
// MatchedKeyword is synthesized as "NSFW (<confidence>)" when the channel is
// flagged by the NSFW scorer alone.
type ChannelAnalysis struct {
	Channel        OwnedChannel `json:"channel"`
	MatchedKeyword string       `json:"matched_keyword"`
	Nsfw           NsfwResult   `json:"nsfw_info"`
}

// ProfileAnalysis is the aggregate verdict over one user for one check.
// Produced fresh per check; profile content may change between checks.
type ProfileAnalysis struct {
	UserID             int64             `json:"user_id"`
	Bio                string            `json:"bio"`
	HasBioMentions     bool              `json:"has_bio_mentions"`
	BioKeywords        []string          `json:"bio_keywords"`
	TotalChannels      int               `json:"total_channels"`
	Channels           []OwnedChannel    `json:"channels"`
	SuspiciousChannels []ChannelAnalysis `json:"suspicious_channels"`
	NsfwChannels       []ChannelAnalysis `json:"nsfw_channels"`
	TotalRecentJoins   int               `json:"total_recent_joins"`
	IsSuspicious       bool              `json:"is_suspicious"`
}
