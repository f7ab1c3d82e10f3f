package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/domain"
)

// FileStorage keeps one JSON file per chat under <base>/activity. All
// mutation happens under the write lock, so append-then-prune sequences from
// concurrent events cannot corrupt the log.
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStorage(basePath string) (*FileStorage, error) {
	dir := filepath.Join(basePath, "activity")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create activity directory").Wrap(err)
	}
	return &FileStorage{basePath: basePath}, nil
}

func (s *FileStorage) Append(record *domain.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readChat(record.ChatID)
	if err != nil {
		return err
	}
	records = append(records, record)
	return s.writeChat(record.ChatID, records)
}

func (s *FileStorage) Query(chatID int64, q domain.Query) ([]*domain.ActivityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readChat(chatID)
	if err != nil {
		return nil, err
	}

	matched := lo.Filter(records, func(r *domain.ActivityRecord, _ int) bool {
		if !q.Since.IsZero() && r.Timestamp.Before(q.Since) {
			return false
		}
		if q.UserID != 0 && r.UserID != q.UserID {
			return false
		}
		if q.Type != "" && r.Type != q.Type {
			return false
		}
		return true
	})

	// Newest first.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *FileStorage) DeleteBefore(chatID int64, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readChat(chatID)
	if err != nil {
		return 0, err
	}

	kept := lo.Filter(records, func(r *domain.ActivityRecord, _ int) bool {
		return !r.Timestamp.Before(cutoff)
	})
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.writeChat(chatID, kept)
}

func (s *FileStorage) chatPath(chatID int64) string {
	return filepath.Join(s.basePath, "activity", fmt.Sprintf("%d.json", chatID))
}

func (s *FileStorage) readChat(chatID int64) ([]*domain.ActivityRecord, error) {
	data, err := os.ReadFile(s.chatPath(chatID))
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.ActivityRecord{}, nil
		}
		return nil, oops.With("chat_id", chatID, "context", "failed to read activity log").Wrap(err)
	}

	var records []*domain.ActivityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, oops.With("chat_id", chatID, "context", "failed to unmarshal activity log").Wrap(err)
	}
	return records, nil
}

func (s *FileStorage) writeChat(chatID int64, records []*domain.ActivityRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return oops.With("chat_id", chatID, "context", "failed to marshal activity log").Wrap(err)
	}
	return os.WriteFile(s.chatPath(chatID), data, 0644)
}
