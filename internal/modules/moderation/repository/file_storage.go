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

	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
)

// FileStorage persists moderation state as JSON files under the base path.
// The single write lock makes warning increments atomic within the process;
// the store is the only resource shared across concurrent event handlers.
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStorage(basePath string) (*FileStorage, error) {
	dirs := []string{"warnings", "whitelist", "config", "actions"}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0755); err != nil {
			return nil, oops.With("base_path", basePath, "context", "failed to create "+dir+" directory").Wrap(err)
		}
	}
	return &FileStorage{basePath: basePath}, nil
}

func (s *FileStorage) IncrementWarning(chatID, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.readWarning(chatID, userID)
	if err != nil {
		return 0, err
	}
	if record == nil {
		record = &domain.WarningRecord{ChatID: chatID, UserID: userID}
	}
	record.Count++
	if err := writeJSON(s.warningPath(chatID, userID), record); err != nil {
		return 0, err
	}
	return record.Count, nil
}

func (s *FileStorage) Warnings(chatID, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, err := s.readWarning(chatID, userID)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, nil
	}
	return record.Count, nil
}

func (s *FileStorage) ResetWarnings(chatID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.warningPath(chatID, userID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStorage) IsWhitelisted(chatID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.readWhitelist(chatID)
	if err != nil {
		return false, err
	}
	return lo.SomeBy(entries, func(e domain.WhitelistEntry) bool {
		return e.UserID == userID
	}), nil
}

func (s *FileStorage) AddWhitelist(chatID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readWhitelist(chatID)
	if err != nil {
		return err
	}
	if lo.SomeBy(entries, func(e domain.WhitelistEntry) bool { return e.UserID == userID }) {
		return nil
	}
	entries = append(entries, domain.WhitelistEntry{ChatID: chatID, UserID: userID, AddedAt: time.Now()})
	return writeJSON(s.whitelistPath(chatID), entries)
}

func (s *FileStorage) RemoveWhitelist(chatID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readWhitelist(chatID)
	if err != nil {
		return err
	}
	kept := lo.Filter(entries, func(e domain.WhitelistEntry, _ int) bool {
		return e.UserID != userID
	})
	return writeJSON(s.whitelistPath(chatID), kept)
}

func (s *FileStorage) Whitelist(chatID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.readWhitelist(chatID)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(e domain.WhitelistEntry, _ int) int64 {
		return e.UserID
	}), nil
}

func (s *FileStorage) Config(chatID int64) (*domain.ChatConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(s.basePath, "config", fmt.Sprintf("%d.json", chatID))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, oops.With("chat_id", chatID, "context", "failed to read chat config").Wrap(err)
	}
	var cfg domain.ChatConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, false, oops.With("chat_id", chatID, "context", "failed to unmarshal chat config").Wrap(err)
	}
	return &cfg, true, nil
}

func (s *FileStorage) SaveConfig(chatID int64, cfg *domain.ChatConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(filepath.Join(s.basePath, "config", fmt.Sprintf("%d.json", chatID)), cfg)
}

func (s *FileStorage) AppendAction(record *domain.ActionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	records, err := s.readActions(record.ChatID)
	if err != nil {
		return err
	}
	records = append(records, record)
	return writeJSON(s.actionsPath(record.ChatID), records)
}

func (s *FileStorage) RecentActions(chatID int64, limit int) ([]*domain.ActionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readActions(chatID)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *FileStorage) warningPath(chatID, userID int64) string {
	return filepath.Join(s.basePath, "warnings", fmt.Sprintf("%d_%d.json", chatID, userID))
}

func (s *FileStorage) whitelistPath(chatID int64) string {
	return filepath.Join(s.basePath, "whitelist", fmt.Sprintf("%d.json", chatID))
}

func (s *FileStorage) actionsPath(chatID int64) string {
	return filepath.Join(s.basePath, "actions", fmt.Sprintf("%d.json", chatID))
}

func (s *FileStorage) readWarning(chatID, userID int64) (*domain.WarningRecord, error) {
	data, err := os.ReadFile(s.warningPath(chatID, userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.With("chat_id", chatID, "user_id", userID, "context", "failed to read warning record").Wrap(err)
	}
	var record domain.WarningRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, oops.With("chat_id", chatID, "user_id", userID, "context", "failed to unmarshal warning record").Wrap(err)
	}
	return &record, nil
}

func (s *FileStorage) readWhitelist(chatID int64) ([]domain.WhitelistEntry, error) {
	data, err := os.ReadFile(s.whitelistPath(chatID))
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.WhitelistEntry{}, nil
		}
		return nil, oops.With("chat_id", chatID, "context", "failed to read whitelist").Wrap(err)
	}
	var entries []domain.WhitelistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, oops.With("chat_id", chatID, "context", "failed to unmarshal whitelist").Wrap(err)
	}
	return entries, nil
}

func (s *FileStorage) readActions(chatID int64) ([]*domain.ActionRecord, error) {
	data, err := os.ReadFile(s.actionsPath(chatID))
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.ActionRecord{}, nil
		}
		return nil, oops.With("chat_id", chatID, "context", "failed to read action log").Wrap(err)
	}
	var records []*domain.ActionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, oops.With("chat_id", chatID, "context", "failed to unmarshal action log").Wrap(err)
	}
	return records, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return oops.With("file", filepath.Base(path), "context", "failed to marshal record").Wrap(err)
	}
	return os.WriteFile(path, data, 0644)
}
