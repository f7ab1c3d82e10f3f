package service

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"github.com/samber/oops"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/repository"
)

const feedItemLimit = 50

// Service renders the moderation audit trail of a chat as an RSS feed so
// admins can follow enforcement from any feed reader.
type Service struct {
	moderationRepo repository.Repository
}

// New creates a new feed service
func New(moderationRepo repository.Repository) *Service {
	return &Service{
		moderationRepo: moderationRepo,
	}
}

// GenerateFeed builds the RSS feed for one chat from its most recent
// moderation actions, newest first.
func (s *Service) GenerateFeed(chatID int64, baseURL string) (*feeds.Feed, error) {
	actions, err := s.moderationRepo.RecentActions(chatID, feedItemLimit)
	if err != nil {
		return nil, oops.With("chat_id", chatID, "context", "failed to get moderation actions").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Moderation Log - Chat %d", chatID),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/feed/%d", baseURL, chatID)},
		Description: fmt.Sprintf("Automated moderation actions for chat %d", chatID),
		Created:     time.Now(),
	}
	if len(actions) > 0 {
		feed.Updated = actions[0].CreatedAt
	}

	var items []*feeds.Item
	for _, action := range actions {
		items = append(items, s.actionToFeedItem(action, baseURL))
	}

	feed.Items = items
	return feed, nil
}

func (s *Service) actionToFeedItem(action *domain.ActionRecord, baseURL string) *feeds.Item {
	description := fmt.Sprintf("User %s (%d): %s. Reason: %s",
		action.UserName, action.UserID, action.Outcome, action.Reason)
	if action.ExampleChannel != "" {
		description += fmt.Sprintf(" Example channel: %s", action.ExampleChannel)
	}

	content := fmt.Sprintf("<p><strong>%s</strong> (%d)</p><p>Outcome: %s</p><p>Reason: %s</p>",
		escapeHTML(action.UserName), action.UserID, action.Outcome, escapeHTML(action.Reason))
	if action.ExampleChannel != "" {
		content += fmt.Sprintf("<p>Example channel: %s</p>", escapeHTML(action.ExampleChannel))
	}

	return &feeds.Item{
		Title:       fmt.Sprintf("[%s] %s", action.Outcome, truncate(action.UserName, 100)),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/feed/%d", baseURL, action.ChatID)},
		Description: description,
		Content:     content,
		Author:      &feeds.Author{Name: "channel-protector-bot"},
		Created:     action.CreatedAt,
		Id:          fmt.Sprintf("%d-%d-%d", action.ChatID, action.UserID, action.CreatedAt.UnixNano()),
	}
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

func escapeHTML(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '<':
			result = append(result, []rune("&lt;")...)
		case '>':
			result = append(result, []rune("&gt;")...)
		case '&':
			result = append(result, []rune("&amp;")...)
		case '"':
			result = append(result, []rune("&quot;")...)
		case '\'':
			result = append(result, []rune("&#39;")...)
		default:
			result = append(result, r)
		}
	}
	return string(result)
}
