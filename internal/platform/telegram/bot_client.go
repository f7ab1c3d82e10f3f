package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"
)

// BotClient implements Client on top of the Bot API via go-telegram/bot.
//
// The Bot API cannot enumerate common chats, channel history, channel members
// or per-message reactors; those require an MTProto session. The corresponding
// methods return empty results, which the analysis pipeline already treats as
// "no data". Swapping in an MTProto-backed Client restores those signals
// without touching the core.
type BotClient struct {
	bot *bot.Bot
}

func NewBotClient() *BotClient {
	return &BotClient{}
}

// SetBot wires the underlying bot once the DI container has constructed it.
func (c *BotClient) SetBot(b *bot.Bot) {
	c.bot = b
}

func (c *BotClient) GetUser(ctx context.Context, userID int64) (*User, error) {
	info, err := c.getChatInfo(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        info.ID,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Username:  info.Username,
		Bio:       info.Bio,
	}, nil
}

func (c *BotClient) GetChat(ctx context.Context, chatID int64) (*Chat, error) {
	info, err := c.getChatInfo(ctx, chatID)
	if err != nil {
		return nil, err
	}
	chat := &Chat{
		ID:                  info.ID,
		Type:                string(info.Type),
		Title:               info.Title,
		Username:            info.Username,
		Description:         info.Description,
		HasProtectedContent: info.HasProtectedContent,
	}
	if count, err := c.bot.GetChatMemberCount(ctx, &bot.GetChatMemberCountParams{ChatID: chatID}); err == nil {
		chat.MemberCount = count
	}
	return chat, nil
}

func (c *BotClient) PersonalChannelRef(ctx context.Context, userID int64) (int64, bool, error) {
	info, err := c.getChatInfo(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if info.PersonalChat == nil {
		return 0, false, nil
	}
	return info.PersonalChat.ID, true, nil
}

func (c *BotClient) ListCommonChats(ctx context.Context, userID int64) ([]Chat, error) {
	// Not exposed by the Bot API.
	slog.Debug("ListCommonChats unavailable over Bot API", "user_id", userID)
	return nil, nil
}

func (c *BotClient) ListAdministrators(ctx context.Context, chatID int64) ([]ChatMember, error) {
	if c.bot == nil {
		return nil, oops.Errorf("bot not initialized")
	}
	admins, err := c.bot.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{ChatID: chatID})
	if err != nil {
		return nil, classifyAPIError(err)
	}
	members := make([]ChatMember, 0, len(admins))
	for _, admin := range admins {
		var user *models.User
		isOwner := false
		switch {
		case admin.Owner != nil:
			user = admin.Owner.User
			isOwner = true
		case admin.Administrator != nil:
			user = &admin.Administrator.User
		}
		if user == nil {
			continue
		}
		members = append(members, ChatMember{
			User: User{
				ID:        user.ID,
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Username:  user.Username,
				IsBot:     user.IsBot,
			},
			IsOwner: isOwner,
		})
	}
	return members, nil
}

func (c *BotClient) ListRecentMessages(ctx context.Context, chatID int64, limit int) ([]ChannelMessage, error) {
	// Channel history requires an MTProto session.
	slog.Debug("ListRecentMessages unavailable over Bot API", "chat_id", chatID, "limit", limit)
	return nil, nil
}

func (c *BotClient) ListMembers(ctx context.Context, chatID int64) ([]ChatMember, error) {
	// Member enumeration requires elevated MTProto access; absence is not an
	// error, discovery just sees no recent joins.
	slog.Debug("ListMembers unavailable over Bot API", "chat_id", chatID)
	return nil, nil
}

func (c *BotClient) ListReactors(ctx context.Context, chatID int64, messageID int, emoji string) ([]User, error) {
	slog.Debug("ListReactors unavailable over Bot API", "chat_id", chatID, "message_id", messageID, "emoji", emoji)
	return nil, nil
}

func (c *BotClient) Ban(ctx context.Context, chatID, userID int64) error {
	if c.bot == nil {
		return oops.Errorf("bot not initialized")
	}
	_, err := c.bot.BanChatMember(ctx, &bot.BanChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	return classifyAPIError(err)
}

func (c *BotClient) Unban(ctx context.Context, chatID, userID int64) error {
	if c.bot == nil {
		return oops.Errorf("bot not initialized")
	}
	_, err := c.bot.UnbanChatMember(ctx, &bot.UnbanChatMemberParams{
		ChatID:       chatID,
		UserID:       userID,
		OnlyIfBanned: true,
	})
	return classifyAPIError(err)
}

func (c *BotClient) Mute(ctx context.Context, chatID, userID int64) error {
	if c.bot == nil {
		return oops.Errorf("bot not initialized")
	}
	// Permanent until manually lifted.
	_, err := c.bot.RestrictChatMember(ctx, &bot.RestrictChatMemberParams{
		ChatID: chatID,
		UserID: userID,
		Permissions: &models.ChatPermissions{
			CanSendMessages: false,
		},
	})
	return classifyAPIError(err)
}

func (c *BotClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	if c.bot == nil {
		return oops.Errorf("bot not initialized")
	}
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	return classifyAPIError(err)
}

func (c *BotClient) getChatInfo(ctx context.Context, chatID int64) (*models.ChatFullInfo, error) {
	if c.bot == nil {
		return nil, oops.Errorf("bot not initialized")
	}
	info, err := c.bot.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
	if err != nil {
		return nil, classifyAPIError(err)
	}
	return info, nil
}
