package repository

import (
	"time"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/domain"
)

// Repository defines the interface for activity log persistence
// This abstraction allows easy replacement of storage implementations
// (e.g., FileStorage -> PostgreSQL -> MongoDB)
type Repository interface {
	// Append inserts one record. Records are immutable once inserted.
	Append(record *domain.ActivityRecord) error
	// Query returns records for a chat matching the query, newest first.
	Query(chatID int64, q domain.Query) ([]*domain.ActivityRecord, error)
	// DeleteBefore removes records older than cutoff within one chat and
	// returns how many were removed. Idempotent under concurrent callers.
	DeleteBefore(chatID int64, cutoff time.Time) (int, error)
}
