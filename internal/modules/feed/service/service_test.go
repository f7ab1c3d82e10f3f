package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/repository"
)

func TestGenerateFeedFromActions(t *testing.T) {
	assert := assert.New(t)

	repo, err := repository.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.AppendAction(&domain.ActionRecord{
		ChatID:         -1001,
		UserID:         42,
		UserName:       "Spam Bot",
		Action:         domain.ActionBan,
		Outcome:        domain.OutcomeBanned,
		Reason:         "Suspicious channels detected (1)",
		ExampleChannel: "Crypto Casino VIP",
		CreatedAt:      time.Now(),
	}))

	feed, err := New(repo).GenerateFeed(-1001, "http://localhost:8080")
	require.NoError(t, err)

	assert.Contains(feed.Title, "-1001")
	assert.Equal("http://localhost:8080/feed/-1001", feed.Link.Href)
	require.Len(t, feed.Items, 1)
	assert.Contains(feed.Items[0].Title, "banned")
	assert.Contains(feed.Items[0].Description, "Crypto Casino VIP")
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	assert := assert.New(t)

	got := truncate("привет мир привет мир", 10)

	assert.Equal("привет мир...", got)
}

func TestGenerateFeedEmptyChat(t *testing.T) {
	assert := assert.New(t)

	repo, err := repository.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	feed, err := New(repo).GenerateFeed(-1002, "http://localhost:8080")
	require.NoError(t, err)
	assert.Empty(feed.Items)
}
