package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/repository"
	"github.com/reshetovitsme/channel-protector-bot/internal/platform/telegram"
)

// recentActivityLimit caps how many records a windowed query returns.
const recentActivityLimit = 100

// Service tracks join/message/reaction events per chat and answers
// time-windowed queries over them. Store writes are best-effort telemetry:
// failures are logged, never propagated into event handling.
type Service struct {
	repo      repository.Repository
	retention time.Duration
}

func New(repo repository.Repository, retentionDays int) *Service {
	return &Service{
		repo:      repo,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Track appends one activity record and prunes expired records in the same
// chat. Pruning is a delete-by-predicate, so concurrent events racing through
// here stay consistent.
func (s *Service) Track(chatID, userID int64, activityType domain.ActivityType, details string) {
	record := &domain.ActivityRecord{
		ChatID:    chatID,
		UserID:    userID,
		Type:      activityType,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := s.repo.Append(record); err != nil {
		slog.Error("Error tracking user activity", "chat_id", chatID, "user_id", userID, "error", err)
		return
	}
	slog.Debug("Tracked activity", "user_id", userID, "type", activityType, "details", details)

	cutoff := time.Now().Add(-s.retention)
	removed, err := s.repo.DeleteBefore(chatID, cutoff)
	if err != nil {
		slog.Error("Error pruning activity log", "chat_id", chatID, "error", err)
		return
	}
	if removed > 0 {
		slog.Debug("Cleaned up old activity records", "chat_id", chatID, "removed", removed)
	}
}

// RecentActivity returns records in the window, optionally filtered to one
// user (userID 0 means any).
func (s *Service) RecentActivity(chatID int64, window time.Duration, userID int64) []*domain.ActivityRecord {
	return s.query(chatID, domain.Query{
		Since:  time.Now().Add(-window),
		UserID: userID,
		Limit:  recentActivityLimit,
	})
}

// RecentJoins returns join records in the window, newest first.
func (s *Service) RecentJoins(chatID int64, window time.Duration) []*domain.ActivityRecord {
	return s.query(chatID, domain.Query{
		Since: time.Now().Add(-window),
		Type:  domain.ActivityTypeJoin,
	})
}

// UserRecentMessages returns one user's message records in the window.
func (s *Service) UserRecentMessages(chatID, userID int64, window time.Duration) []*domain.ActivityRecord {
	return s.query(chatID, domain.Query{
		Since:  time.Now().Add(-window),
		UserID: userID,
		Type:   domain.ActivityTypeMessage,
	})
}

// UserRecentReactions returns one user's reaction records in the window.
func (s *Service) UserRecentReactions(chatID, userID int64, window time.Duration) []*domain.ActivityRecord {
	return s.query(chatID, domain.Query{
		Since:  time.Now().Add(-window),
		UserID: userID,
		Type:   domain.ActivityTypeReaction,
	})
}

// UserStats aggregates one user's tracked activity over the window.
func (s *Service) UserStats(chatID, userID int64, window time.Duration) *domain.Stats {
	records := s.query(chatID, domain.Query{
		Since:  time.Now().Add(-window),
		UserID: userID,
	})

	stats := &domain.Stats{TotalActivities: len(records)}
	for _, record := range records {
		switch record.Type {
		case domain.ActivityTypeMessage:
			stats.Messages++
		case domain.ActivityTypeReaction:
			stats.Reactions++
		case domain.ActivityTypeJoin:
			stats.Joins++
		}

		ts := record.Timestamp
		if stats.FirstSeen == nil || ts.Before(*stats.FirstSeen) {
			first := ts
			stats.FirstSeen = &first
		}
		if stats.LastSeen == nil || ts.After(*stats.LastSeen) {
			last := ts
			stats.LastSeen = &last
		}
	}
	return stats
}

// ComprehensiveCheck joins a user's recent activity with their 7-day stats
// and logs the summary. The user name falls back to the numeric id when the
// platform cannot resolve the profile.
func (s *Service) ComprehensiveCheck(ctx context.Context, client telegram.Client, chatID, userID int64, window time.Duration) *domain.ComprehensiveReport {
	userName := fmt.Sprintf("User %d", userID)
	if user, err := client.GetUser(ctx, userID); err != nil {
		slog.Warn("Could not fetch user info", "user_id", userID, "error", err)
	} else {
		userName = user.FullName()
	}

	report := &domain.ComprehensiveReport{
		UserID:          userID,
		UserName:        userName,
		RecentJoins:     s.query(chatID, domain.Query{Since: time.Now().Add(-window), UserID: userID, Type: domain.ActivityTypeJoin}),
		RecentMessages:  s.UserRecentMessages(chatID, userID, window),
		RecentReactions: s.UserRecentReactions(chatID, userID, window),
		Stats:           s.UserStats(chatID, userID, 7*24*time.Hour),
	}

	slog.Info("Comprehensive check",
		"user", userName,
		"user_id", userID,
		"recent_joins", len(report.RecentJoins),
		"recent_messages", len(report.RecentMessages),
		"recent_reactions", len(report.RecentReactions),
		"week_messages", report.Stats.Messages,
		"week_reactions", report.Stats.Reactions)

	return report
}

// query wraps repository reads; a failed read degrades to an empty result
// and a log line, matching the best-effort telemetry contract.
func (s *Service) query(chatID int64, q domain.Query) []*domain.ActivityRecord {
	records, err := s.repo.Query(chatID, q)
	if err != nil {
		slog.Error("Error querying activity log", "chat_id", chatID, "error", err)
		return nil
	}
	return records
}
