package domain

import "time"

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// ActivityType classifies a tracked group event
// ENUM(join,message,reaction)
type ActivityType string

// ActivityRecord is one append-only entry in the per-chat activity log.
// Records are never mutated after insert; they age out of the log once they
// fall behind the retention window.
type ActivityRecord struct {
	ChatID    int64        `json:"chat_id"`
	UserID    int64        `json:"user_id"`
	Type      ActivityType `json:"activity_type"`
	Details   string       `json:"details"`
	Timestamp time.Time    `json:"timestamp"`
}

// Query filters a time-windowed activity lookup. Zero values mean "any".
type Query struct {
	Since  time.Time
	UserID int64
	Type   ActivityType
	Limit  int
}

// Stats summarizes one user's tracked activity over a window.
type Stats struct {
	TotalActivities int        `json:"total_activities"`
	Messages        int        `json:"messages"`
	Reactions       int        `json:"reactions"`
	Joins           int        `json:"joins"`
	FirstSeen       *time.Time `json:"first_seen,omitempty"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
}

// ComprehensiveReport joins a user's recent join/message/reaction records
// with their longer-window stats, used when inspecting a member in depth.
type ComprehensiveReport struct {
	UserID          int64             `json:"user_id"`
	UserName        string            `json:"user_name"`
	RecentJoins     []*ActivityRecord `json:"recent_joins"`
	RecentMessages  []*ActivityRecord `json:"recent_messages"`
	RecentReactions []*ActivityRecord `json:"recent_reactions"`
	Stats           *Stats            `json:"stats"`
}
