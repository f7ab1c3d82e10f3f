package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/repository"
)

func newTestService(t *testing.T) (*Service, repository.Repository) {
	t.Helper()
	repo, err := repository.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return New(repo, 7), repo
}

func TestTrackAndQueryWindow(t *testing.T) {
	assert := assert.New(t)
	svc, _ := newTestService(t)

	svc.Track(5, 10, domain.ActivityTypeJoin, "Joined group")
	svc.Track(5, 10, domain.ActivityTypeMessage, "")
	svc.Track(5, 11, domain.ActivityTypeMessage, "")

	all := svc.RecentActivity(5, time.Hour, 0)
	assert.Len(all, 3)

	mine := svc.RecentActivity(5, time.Hour, 10)
	assert.Len(mine, 2)

	joins := svc.RecentJoins(5, time.Hour)
	assert.Len(joins, 1)
	assert.Equal(int64(10), joins[0].UserID)

	messages := svc.UserRecentMessages(5, 10, time.Hour)
	assert.Len(messages, 1)

	// Another chat's log is untouched.
	assert.Empty(svc.RecentActivity(6, time.Hour, 0))
}

func TestRetentionPruneOnInsert(t *testing.T) {
	assert := assert.New(t)
	svc, repo := newTestService(t)

	// Seed a record already older than the 7-day retention window.
	old := &domain.ActivityRecord{
		ChatID:    5,
		UserID:    10,
		Type:      domain.ActivityTypeMessage,
		Timestamp: time.Now().Add(-8 * 24 * time.Hour),
	}
	assert.NoError(repo.Append(old))

	records, err := repo.Query(5, domain.Query{})
	assert.NoError(err)
	assert.Len(records, 1)

	// The next insert prunes it.
	svc.Track(5, 11, domain.ActivityTypeJoin, "")

	records, err = repo.Query(5, domain.Query{})
	assert.NoError(err)
	assert.Len(records, 1)
	assert.Equal(int64(11), records[0].UserID)
}

func TestPruneScopedToChat(t *testing.T) {
	assert := assert.New(t)
	svc, repo := newTestService(t)

	expired := &domain.ActivityRecord{
		ChatID:    6,
		UserID:    10,
		Type:      domain.ActivityTypeMessage,
		Timestamp: time.Now().Add(-8 * 24 * time.Hour),
	}
	assert.NoError(repo.Append(expired))

	// Insert in chat 5 must not prune chat 6.
	svc.Track(5, 11, domain.ActivityTypeJoin, "")

	records, err := repo.Query(6, domain.Query{})
	assert.NoError(err)
	assert.Len(records, 1)
}

func TestUserStats(t *testing.T) {
	assert := assert.New(t)
	svc, _ := newTestService(t)

	svc.Track(5, 10, domain.ActivityTypeJoin, "")
	svc.Track(5, 10, domain.ActivityTypeMessage, "")
	svc.Track(5, 10, domain.ActivityTypeMessage, "")
	svc.Track(5, 10, domain.ActivityTypeReaction, "")
	svc.Track(5, 99, domain.ActivityTypeMessage, "")

	stats := svc.UserStats(5, 10, 7*24*time.Hour)
	assert.Equal(4, stats.TotalActivities)
	assert.Equal(2, stats.Messages)
	assert.Equal(1, stats.Reactions)
	assert.Equal(1, stats.Joins)
	assert.NotNil(stats.FirstSeen)
	assert.NotNil(stats.LastSeen)
	assert.False(stats.LastSeen.Before(*stats.FirstSeen))
}

func TestQueryNewestFirstAndLimit(t *testing.T) {
	assert := assert.New(t)
	_, repo := newTestService(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		assert.NoError(repo.Append(&domain.ActivityRecord{
			ChatID:    5,
			UserID:    int64(i),
			Type:      domain.ActivityTypeMessage,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := repo.Query(5, domain.Query{Limit: 3})
	assert.NoError(err)
	assert.Len(records, 3)
	assert.Equal(int64(4), records[0].UserID)
	assert.Equal(int64(2), records[2].UserID)
}
