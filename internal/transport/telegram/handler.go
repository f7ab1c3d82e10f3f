package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	activityDomain "github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/domain"
	activityService "github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/service"
	moderationDomain "github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
	moderationService "github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/service"
	"github.com/reshetovitsme/channel-protector-bot/internal/shared/config"
	"github.com/reshetovitsme/channel-protector-bot/internal/shared/sampling"
)

// Handler handles Telegram bot interactions
type Handler struct {
	cfg               *config.Config
	moderationService *moderationService.Service
	activityService   *activityService.Service
	sampler           sampling.Sampler
}

// New creates a new Telegram handler
func New(cfg *config.Config, moderationService *moderationService.Service, activityService *activityService.Service, sampler sampling.Sampler) *Handler {
	return &Handler{
		cfg:               cfg,
		moderationService: moderationService,
		activityService:   activityService,
		sampler:           sampler,
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, h.handleStatus)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/whitelist", bot.MatchTypePrefix, h.handleWhitelist)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/unwhitelist", bot.MatchTypePrefix, h.handleUnwhitelist)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/whitelisted", bot.MatchTypeExact, h.handleWhitelisted)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/setaction", bot.MatchTypePrefix, h.handleSetAction)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/setlimit", bot.MatchTypePrefix, h.handleSetLimit)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/resetwarns", bot.MatchTypePrefix, h.handleResetWarns)
}

// HandleUpdate processes updates that are not commands: new members, group
// messages and message reactions.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.MessageReaction != nil {
		h.processReaction(ctx, update.MessageReaction)
		return
	}

	if update.Message == nil {
		return
	}

	if len(update.Message.NewChatMembers) > 0 {
		h.processNewMembers(ctx, update.Message)
		return
	}

	if update.Message.Chat.Type == "group" || update.Message.Chat.Type == "supergroup" {
		h.processGroupMessage(ctx, update.Message)
	}
}

func (h *Handler) processNewMembers(ctx context.Context, msg *models.Message) {
	chatID := msg.Chat.ID

	for _, member := range msg.NewChatMembers {
		if member.IsBot {
			continue
		}

		slog.Info("New member joined", "chat_id", chatID, "user_id", member.ID, "username", member.Username)

		if !h.moderationService.ChecksNewMembers() {
			h.activityService.Track(chatID, member.ID, activityDomain.ActivityTypeJoin, "new member")
			continue
		}

		h.moderationService.HandleJoin(ctx, chatID, member.ID)
	}
}

func (h *Handler) processGroupMessage(ctx context.Context, msg *models.Message) {
	if msg.From == nil || msg.From.IsBot {
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	h.activityService.Track(chatID, userID, activityDomain.ActivityTypeMessage, truncate(msg.Text, 100))

	if h.sampler.Hit(h.cfg.MessageScanProbability) {
		slog.Debug("Message sampled for scan", "chat_id", chatID, "user_id", userID)
		h.moderationService.ScanUser(ctx, chatID, userID, "message")
	}
}

func (h *Handler) processReaction(ctx context.Context, reaction *models.MessageReactionUpdated) {
	if reaction.User == nil || reaction.User.IsBot {
		return
	}

	chatID := reaction.Chat.ID
	userID := reaction.User.ID

	h.activityService.Track(chatID, userID, activityDomain.ActivityTypeReaction, fmt.Sprintf("message %d", reaction.MessageID))

	if h.sampler.Hit(h.cfg.ReactionScanProbability) {
		slog.Debug("Reaction sampled for scan", "chat_id", chatID, "user_id", userID)
		h.moderationService.ScanUser(ctx, chatID, userID, "reaction")
	}
}

// isChatAdmin checks whether the sender may run moderation commands.
func (h *Handler) isChatAdmin(ctx context.Context, b *bot.Bot, chatID, userID int64) bool {
	admins, err := b.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{
		ChatID: chatID,
	})
	if err != nil {
		slog.Error("Failed to get chat administrators", "chat_id", chatID, "error", err)
		return false
	}

	for _, admin := range admins {
		if admin.Owner != nil && admin.Owner.User.ID == userID {
			return true
		}
		if admin.Administrator != nil && admin.Administrator.User.ID == userID {
			return true
		}
	}
	return false
}

// targetUser resolves the user a command applies to: the replied-to message's
// author, or a numeric user id argument.
func targetUser(msg *models.Message) (int64, bool) {
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		return msg.ReplyToMessage.From.ID, true
	}

	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		return 0, false
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (h *Handler) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if !h.isChatAdmin(ctx, b, update.Message.Chat.ID, update.Message.From.ID) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Only chat administrators can use this command.",
		})
		return false
	}
	return true
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	text := `🛡️ Channel Protector Bot

I analyze the profiles of new and active members and act on users who own
suspicious or NSFW channels.

Admin commands:
/status - Show moderation settings for this chat
/whitelist <user_id> - Exempt a user from checks (or reply to their message)
/unwhitelist <user_id> - Remove a user from the whitelist
/whitelisted - List whitelisted users
/setaction <ban|kick|mute> - Set the penalty for repeat offenders
/setlimit <n> - Set the warning limit before the penalty applies
/resetwarns <user_id> - Clear a user's warnings

Example:
/whitelist 123456789`

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	chatID := update.Message.Chat.ID
	settings := h.moderationService.ChatSettings(chatID)
	whitelisted, err := h.moderationService.WhitelistedUsers(chatID)
	if err != nil {
		slog.Error("Failed to read whitelist", "chat_id", chatID, "error", err)
	}

	text := fmt.Sprintf(`📊 Moderation Status:

Check new members: %t
NSFW detection: %t
Auto-ban on join: %s
Warning limit: %d
Penalty: %s
Whitelisted users: %d
Silent mode: %t`,
		h.cfg.CheckNewMembers,
		h.cfg.EnableNsfwDetection,
		h.cfg.AutoBanAction,
		settings.WarningLimit,
		settings.Penalty,
		len(whitelisted),
		h.cfg.SilentMode)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

func (h *Handler) handleWhitelist(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	userID, ok := targetUser(update.Message)
	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Usage: /whitelist <user_id> or reply to the user's message",
		})
		return
	}

	if err := h.moderationService.AddWhitelist(update.Message.Chat.ID, userID); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   fmt.Sprintf("❌ Failed to whitelist user: %v", err),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   fmt.Sprintf("✅ User %d is now exempt from checks.", userID),
	})
}

func (h *Handler) handleUnwhitelist(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	userID, ok := targetUser(update.Message)
	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Usage: /unwhitelist <user_id> or reply to the user's message",
		})
		return
	}

	if err := h.moderationService.RemoveWhitelist(update.Message.Chat.ID, userID); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   fmt.Sprintf("❌ Failed to remove user from whitelist: %v", err),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   fmt.Sprintf("✅ User %d is checked again.", userID),
	})
}

func (h *Handler) handleWhitelisted(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	users, err := h.moderationService.WhitelistedUsers(update.Message.Chat.ID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   fmt.Sprintf("❌ Failed to read whitelist: %v", err),
		})
		return
	}

	if len(users) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "📭 No whitelisted users in this chat.",
		})
		return
	}

	var text strings.Builder
	text.WriteString("📋 Whitelisted users:\n\n")
	for i, userID := range users {
		text.WriteString(fmt.Sprintf("%d. %d\n", i+1, userID))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text.String(),
	})
}

func (h *Handler) handleSetAction(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Usage: /setaction <ban|kick|mute>",
		})
		return
	}

	action, err := moderationDomain.ParseAction(strings.ToLower(parts[1]))
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Invalid action. Choose ban, kick or mute.",
		})
		return
	}

	if err := h.moderationService.SetPenalty(update.Message.Chat.ID, action); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   fmt.Sprintf("❌ Failed to save setting: %v", err),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   fmt.Sprintf("✅ Repeat offenders will now be %s.", action.Verb()),
	})
}

func (h *Handler) handleSetLimit(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Usage: /setlimit <n>",
		})
		return
	}

	limit, err := strconv.Atoi(parts[1])
	if err != nil || limit < 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ The limit must be a non-negative number.",
		})
		return
	}

	if err := h.moderationService.SetWarningLimit(update.Message.Chat.ID, limit); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   fmt.Sprintf("❌ Failed to save setting: %v", err),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   fmt.Sprintf("✅ Warning limit set to %d.", limit),
	})
}

func (h *Handler) handleResetWarns(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	userID, ok := targetUser(update.Message)
	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Usage: /resetwarns <user_id> or reply to the user's message",
		})
		return
	}

	if err := h.moderationService.ResetWarnings(update.Message.Chat.ID, userID); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   fmt.Sprintf("❌ Failed to reset warnings: %v", err),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   fmt.Sprintf("✅ Warnings cleared for user %d.", userID),
	})
}

// truncate shortens s to maxLen runes so multibyte text is never cut
// mid-sequence.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
