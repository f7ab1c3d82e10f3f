package domain

import "time"

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// Action is the enforcement primitive applied to a user
// ENUM(ban,kick,mute)
type Action string

// Outcome is the terminal state of one decision pass for one join event
// ENUM(pending,ignored,warned,banned,kicked,muted,action_failed)
type Outcome string

// Verb returns the past-tense form used in notifications.
func (x Action) Verb() string {
	switch x {
	case ActionBan:
		return "banned"
	case ActionKick:
		return "kicked"
	case ActionMute:
		return "muted"
	}
	return string(x)
}

// Executed maps an action onto the outcome reached when it succeeds.
func (x Action) Executed() Outcome {
	switch x {
	case ActionBan:
		return OutcomeBanned
	case ActionKick:
		return OutcomeKicked
	case ActionMute:
		return OutcomeMuted
	}
	return OutcomeActionFailed
}

// WarningRecord counts accumulated warnings for a (chat, user) pair. The
// count only ever increments; amnesty deletes the record.
type WarningRecord struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
	Count  int   `json:"count"`
}

// WhitelistEntry exempts a user from all automated checks in one chat.
type WhitelistEntry struct {
	ChatID  int64     `json:"chat_id"`
	UserID  int64     `json:"user_id"`
	AddedAt time.Time `json:"added_at"`
}

// ChatConfig is the per-chat moderation configuration; a process-wide
// default applies when a chat has none.
type ChatConfig struct {
	Mode         string `json:"mode"`
	WarningLimit int    `json:"warning_limit"`
	Penalty      Action `json:"penalty"`
}

// ActionRecord is the audit trail entry for one enforcement attempt.
type ActionRecord struct {
	ChatID         int64     `json:"chat_id"`
	UserID         int64     `json:"user_id"`
	UserName       string    `json:"user_name"`
	Action         Action    `json:"action"`
	Outcome        Outcome   `json:"outcome"`
	Reason         string    `json:"reason"`
	ExampleChannel string    `json:"example_channel,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
