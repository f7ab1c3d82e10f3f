package repository

import (
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
)

// Repository defines the interface for moderation state persistence:
// warnings, whitelist, per-chat config and the enforcement audit log, all
// keyed by (chat_id, user_id) or chat_id.
// This abstraction allows easy replacement of storage implementations
// (e.g., FileStorage -> PostgreSQL -> MongoDB)
type Repository interface {
	// IncrementWarning atomically bumps the warning count and returns the
	// new value. Implementations must not read-modify-write in callers.
	IncrementWarning(chatID, userID int64) (int, error)
	Warnings(chatID, userID int64) (int, error)
	ResetWarnings(chatID, userID int64) error

	IsWhitelisted(chatID, userID int64) (bool, error)
	AddWhitelist(chatID, userID int64) error
	RemoveWhitelist(chatID, userID int64) error
	Whitelist(chatID int64) ([]int64, error)

	// Config returns the per-chat config, or ok=false when the chat has
	// none and the process-wide default applies.
	Config(chatID int64) (*domain.ChatConfig, bool, error)
	SaveConfig(chatID int64, cfg *domain.ChatConfig) error

	AppendAction(record *domain.ActionRecord) error
	RecentActions(chatID int64, limit int) ([]*domain.ActionRecord, error)
}
