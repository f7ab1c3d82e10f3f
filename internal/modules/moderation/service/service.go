package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	activitydomain "github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/domain"
	activityservice "github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/service"
	analysisdomain "github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/domain"
	analysisservice "github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/service"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/repository"
	"github.com/reshetovitsme/channel-protector-bot/internal/platform/telegram"
	"github.com/reshetovitsme/channel-protector-bot/internal/shared/config"
)

const comprehensiveWindow = 24 * time.Hour

// Service runs the moderation pipeline: whitelist short-circuit, profile
// analysis, policy decision, enforcement, audit trail and notification.
type Service struct {
	client   telegram.Client
	repo     repository.Repository
	analyzer *analysisservice.Analyzer
	activity *activityservice.Service

	keywords       []string
	policy         Policy
	defaultLimit   int
	defaultPenalty domain.Action
	silent         bool
	checkJoins     bool
}

func New(
	client telegram.Client,
	repo repository.Repository,
	analyzer *analysisservice.Analyzer,
	activity *activityservice.Service,
	cfg *config.Config,
) *Service {
	return &Service{
		client:   client,
		repo:     repo,
		analyzer: analyzer,
		activity: activity,
		keywords: cfg.SuspiciousKeywords,
		policy: Policy{
			EnableNsfwDetection:     cfg.EnableNsfwDetection,
			AutoBanNsfwOnJoin:       cfg.AutoBanNsfwOnJoin,
			AutoBanSuspiciousOnJoin: cfg.AutoBanSuspiciousOnJoin,
			Action:                  lo.Must(domain.ParseAction(cfg.AutoBanAction)),
		},
		defaultLimit:   cfg.DefaultWarningLimit,
		defaultPenalty: lo.Must(domain.ParseAction(cfg.DefaultPenalty)),
		silent:         cfg.SilentMode,
		checkJoins:     cfg.CheckNewMembers,
	}
}

// ChecksNewMembers reports whether join events should be analyzed at all.
func (s *Service) ChecksNewMembers() bool {
	return s.checkJoins
}

// HandleJoin runs the full pipeline for one new member. Whitelisted users are
// exempt before any analysis happens. A profile that cannot be analyzed is
// never punished.
func (s *Service) HandleJoin(ctx context.Context, chatID, userID int64) {
	s.activity.Track(chatID, userID, activitydomain.ActivityTypeJoin, "new member")

	if s.isWhitelisted(chatID, userID) {
		slog.Info("User is whitelisted, skipping checks", "chat_id", chatID, "user_id", userID)
		return
	}

	report := s.activity.ComprehensiveCheck(ctx, s.client, chatID, userID, comprehensiveWindow)
	slog.Debug("Comprehensive check complete",
		"chat_id", chatID,
		"user_id", userID,
		"recent_joins", len(report.RecentJoins),
		"total_activities", report.Stats.TotalActivities)

	analysis, err := s.analyzer.AnalyzeProfile(ctx, userID, s.keywords)
	if err != nil {
		if telegram.IsGone(err) {
			slog.Info("Cannot analyze profile, user inaccessible", "chat_id", chatID, "user_id", userID)
		} else {
			slog.Warn("Profile analysis failed", "chat_id", chatID, "user_id", userID, "error", err)
		}
		analysis = nil
	}

	decision := Decide(analysis, s.policy)
	slog.Info("Join decision",
		"chat_id", chatID,
		"user_id", userID,
		"outcome", decision.Outcome,
		"instant", decision.Instant,
		"reason", decision.Reason)

	switch {
	case decision.Instant:
		outcome := s.enforce(ctx, chatID, userID, s.policy.Action)
		s.recordAction(&domain.ActionRecord{
			ChatID:         chatID,
			UserID:         userID,
			UserName:       report.UserName,
			Action:         s.policy.Action,
			Outcome:        outcome,
			Reason:         decision.Reason,
			ExampleChannel: exampleChannel(analysis),
		})
		if outcome == s.policy.Action.Executed() {
			s.notifyJoin(ctx, chatID, userID, report.UserName, s.policy.Action, decision.Reason, analysis)
		}

	case decision.Outcome == domain.OutcomeWarned:
		slog.Warn("Suspicious member joined, auto-ban disabled",
			"chat_id", chatID,
			"user_id", userID,
			"suspicious_channels", len(analysis.SuspiciousChannels),
			"nsfw_channels", len(analysis.NsfwChannels))
		s.recordAction(&domain.ActionRecord{
			ChatID:         chatID,
			UserID:         userID,
			UserName:       report.UserName,
			Action:         s.policy.Action,
			Outcome:        domain.OutcomeWarned,
			Reason:         decision.Reason,
			ExampleChannel: exampleChannel(analysis),
		})
	}
}

// ScanUser re-checks an existing member after a sampled message or reaction.
// A suspicious profile accumulates a warning; crossing the chat's warning
// limit triggers the configured penalty and resets the counter.
func (s *Service) ScanUser(ctx context.Context, chatID, userID int64, trigger string) {
	if s.isWhitelisted(chatID, userID) {
		return
	}

	analysis, err := s.analyzer.AnalyzeProfile(ctx, userID, s.keywords)
	if err != nil {
		slog.Debug("Scan skipped, cannot analyze profile", "chat_id", chatID, "user_id", userID, "error", err)
		return
	}
	if !analysis.IsSuspicious {
		return
	}

	count, err := s.repo.IncrementWarning(chatID, userID)
	if err != nil {
		slog.Error("Failed to record warning", "chat_id", chatID, "user_id", userID, "error", err)
		return
	}

	limit, penalty := s.chatPolicy(chatID)
	slog.Warn("Suspicious profile detected on scan",
		"chat_id", chatID,
		"user_id", userID,
		"trigger", trigger,
		"warnings", count,
		"limit", limit)

	if count <= limit {
		return
	}

	userName := s.displayName(ctx, userID)
	outcome := s.enforce(ctx, chatID, userID, penalty)
	reason := fmt.Sprintf("Exceeded warning limit (%d warnings)", count)
	s.recordAction(&domain.ActionRecord{
		ChatID:         chatID,
		UserID:         userID,
		UserName:       userName,
		Action:         penalty,
		Outcome:        outcome,
		Reason:         reason,
		ExampleChannel: exampleChannel(analysis),
	})

	if outcome == penalty.Executed() {
		if err := s.repo.ResetWarnings(chatID, userID); err != nil {
			slog.Error("Failed to reset warnings after penalty", "chat_id", chatID, "user_id", userID, "error", err)
		}
		s.notifyJoin(ctx, chatID, userID, userName, penalty, reason, analysis)
	}
}

// enforce applies one action and maps its errors onto a terminal outcome.
// Gone users are a no-op, permission failures are downgraded to a logged
// action_failed.
func (s *Service) enforce(ctx context.Context, chatID, userID int64, action domain.Action) domain.Outcome {
	var err error
	switch action {
	case domain.ActionBan:
		err = s.client.Ban(ctx, chatID, userID)
	case domain.ActionKick:
		err = s.client.Ban(ctx, chatID, userID)
		if err == nil {
			err = s.client.Unban(ctx, chatID, userID)
		}
	case domain.ActionMute:
		err = s.client.Mute(ctx, chatID, userID)
	default:
		slog.Error("Unknown enforcement action", "action", action)
		return domain.OutcomeActionFailed
	}

	if err == nil {
		slog.Info("Enforcement applied", "chat_id", chatID, "user_id", userID, "action", action)
		return action.Executed()
	}

	if telegram.IsGone(err) {
		slog.Info("User already gone, nothing to enforce", "chat_id", chatID, "user_id", userID)
		return domain.OutcomeIgnored
	}
	if telegram.IsPermission(err) {
		slog.Error("Missing permissions to enforce action", "chat_id", chatID, "user_id", userID, "action", action, "error", err)
	} else {
		slog.Error("Enforcement failed", "chat_id", chatID, "user_id", userID, "action", action, "error", err)
	}
	return domain.OutcomeActionFailed
}

// notifyJoin posts the moderation notice to the group unless silent mode is
// on. Send failures only log; the enforcement already happened.
func (s *Service) notifyJoin(ctx context.Context, chatID, userID int64, userName string, action domain.Action, reason string, analysis *analysisdomain.ProfileAnalysis) {
	if s.silent {
		slog.Debug("Silent mode on, skipping notification", "chat_id", chatID, "user_id", userID)
		return
	}

	text := fmt.Sprintf("**🚫 [%s](tg://user?id=%d) has been %s on join!**\n**Reason:** %s",
		userName, userID, action.Verb(), reason)
	if analysis != nil && len(analysis.SuspiciousChannels) > 0 {
		text += fmt.Sprintf("\n**Suspicious Channels:** %d", len(analysis.SuspiciousChannels))
		text += fmt.Sprintf("\n**Example:** %s", analysis.SuspiciousChannels[0].Channel.Title)
	}

	if err := s.client.SendMessage(ctx, chatID, text); err != nil {
		slog.Error("Failed to send notification", "chat_id", chatID, "error", err)
	}
}

// isWhitelisted fails closed: a store read error counts as not whitelisted so
// a broken store never disables moderation.
func (s *Service) isWhitelisted(chatID, userID int64) bool {
	listed, err := s.repo.IsWhitelisted(chatID, userID)
	if err != nil {
		slog.Error("Whitelist lookup failed", "chat_id", chatID, "user_id", userID, "error", err)
		return false
	}
	return listed
}

// chatPolicy resolves the per-chat warning limit and penalty, falling back to
// the process-wide defaults. Read failures also fall back.
func (s *Service) chatPolicy(chatID int64) (int, domain.Action) {
	cfg, ok, err := s.repo.Config(chatID)
	if err != nil {
		slog.Error("Chat config lookup failed", "chat_id", chatID, "error", err)
		return s.defaultLimit, s.defaultPenalty
	}
	if !ok {
		return s.defaultLimit, s.defaultPenalty
	}
	return cfg.WarningLimit, cfg.Penalty
}

func (s *Service) displayName(ctx context.Context, userID int64) string {
	user, err := s.client.GetUser(ctx, userID)
	if err != nil || user.FullName() == "" {
		return fmt.Sprintf("User %d", userID)
	}
	return user.FullName()
}

func (s *Service) recordAction(record *domain.ActionRecord) {
	if err := s.repo.AppendAction(record); err != nil {
		slog.Error("Failed to append action record", "chat_id", record.ChatID, "user_id", record.UserID, "error", err)
	}
}

// exampleChannel picks the channel title shown in audit records, preferring
// the suspicious list since it includes NSFW hits.
func exampleChannel(analysis *analysisdomain.ProfileAnalysis) string {
	if analysis == nil {
		return ""
	}
	if len(analysis.SuspiciousChannels) > 0 {
		return analysis.SuspiciousChannels[0].Channel.Title
	}
	if len(analysis.NsfwChannels) > 0 {
		return analysis.NsfwChannels[0].Channel.Title
	}
	return ""
}

// Whitelist management and per-chat settings, exposed to the command layer.

func (s *Service) AddWhitelist(chatID, userID int64) error {
	return s.repo.AddWhitelist(chatID, userID)
}

func (s *Service) RemoveWhitelist(chatID, userID int64) error {
	return s.repo.RemoveWhitelist(chatID, userID)
}

func (s *Service) WhitelistedUsers(chatID int64) ([]int64, error) {
	return s.repo.Whitelist(chatID)
}

func (s *Service) ResetWarnings(chatID, userID int64) error {
	return s.repo.ResetWarnings(chatID, userID)
}

func (s *Service) Warnings(chatID, userID int64) (int, error) {
	return s.repo.Warnings(chatID, userID)
}

// SetPenalty overrides the warning-limit penalty for one chat.
func (s *Service) SetPenalty(chatID int64, action domain.Action) error {
	cfg := s.chatConfig(chatID)
	cfg.Penalty = action
	return s.repo.SaveConfig(chatID, cfg)
}

// SetWarningLimit overrides the warning limit for one chat.
func (s *Service) SetWarningLimit(chatID int64, limit int) error {
	cfg := s.chatConfig(chatID)
	cfg.WarningLimit = limit
	return s.repo.SaveConfig(chatID, cfg)
}

// ChatSettings returns the effective settings for one chat.
func (s *Service) ChatSettings(chatID int64) *domain.ChatConfig {
	return s.chatConfig(chatID)
}

func (s *Service) chatConfig(chatID int64) *domain.ChatConfig {
	cfg, ok, err := s.repo.Config(chatID)
	if err != nil || !ok {
		return &domain.ChatConfig{
			Mode:         "default",
			WarningLimit: s.defaultLimit,
			Penalty:      s.defaultPenalty,
		}
	}
	return cfg
}
