package repository

import (
	"os"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/domain"
)

func newStorage(t *testing.T) *FileStorage {
	t.Helper()
	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestAppendAndQuery(t *testing.T) {
	assert := assert.New(t)
	s := newStorage(t)

	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(&domain.ActivityRecord{
			ChatID:    5,
			UserID:    int64(10 + i),
			Type:      domain.ActivityTypeMessage,
			Details:   "text message",
			Timestamp: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.Append(&domain.ActivityRecord{
		ChatID:    5,
		UserID:    10,
		Type:      domain.ActivityTypeJoin,
		Details:   "new member",
		Timestamp: now,
	}))

	records, err := s.Query(5, domain.Query{UserID: 10})
	assert.NoError(err)
	assert.Len(records, 2)

	records, err = s.Query(5, domain.Query{Type: domain.ActivityTypeMessage, Limit: 2})
	assert.NoError(err)
	assert.Len(records, 2)
	// Newest first.
	assert.Equal(int64(12), records[0].UserID)

	records, err = s.Query(5, domain.Query{Since: now.Add(90 * time.Second)})
	assert.NoError(err)
	assert.Len(records, 1)
}

func TestDeleteBefore(t *testing.T) {
	assert := assert.New(t)
	s := newStorage(t)

	now := time.Now()
	require.NoError(t, s.Append(&domain.ActivityRecord{
		ChatID: 5, UserID: 10, Type: domain.ActivityTypeMessage, Timestamp: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, s.Append(&domain.ActivityRecord{
		ChatID: 5, UserID: 10, Type: domain.ActivityTypeMessage, Timestamp: now,
	}))

	removed, err := s.DeleteBefore(5, now.Add(-24*time.Hour))
	assert.NoError(err)
	assert.Equal(1, removed)

	// Nothing left to prune.
	removed, err = s.DeleteBefore(5, now.Add(-24*time.Hour))
	assert.NoError(err)
	assert.Equal(0, removed)

	records, err := s.Query(5, domain.Query{})
	assert.NoError(err)
	assert.Len(records, 1)
}

func TestCorruptActivityLogSurfacesError(t *testing.T) {
	assert := assert.New(t)
	s := newStorage(t)

	require.NoError(t, os.WriteFile(s.chatPath(5), []byte("{not json"), 0644))

	_, err := s.Query(5, domain.Query{})
	assert.Error(err)
	oopsErr, ok := oops.AsOops(err)
	assert.True(ok)
	assert.Equal(int64(5), oopsErr.Context()["chat_id"])
	assert.Equal("failed to unmarshal activity log", oopsErr.Context()["context"])

	assert.Error(s.Append(&domain.ActivityRecord{ChatID: 5, UserID: 10, Type: domain.ActivityTypeMessage}))
}
