package service

import (
	"context"
	"errors"

	"github.com/reshetovitsme/channel-protector-bot/internal/platform/telegram"
)

// fakeClient implements telegram.Client for tests. Unset maps behave like a
// transport without the corresponding access.
type fakeClient struct {
	users          map[int64]*telegram.User
	chats          map[int64]*telegram.Chat
	personal       map[int64]int64
	commonChats    map[int64][]telegram.Chat
	administrators map[int64][]telegram.ChatMember
	messages       map[int64][]telegram.ChannelMessage
	members        map[int64][]telegram.ChatMember
	reactors       map[string][]telegram.User

	getUserErr error
	chatErrs   map[int64]error

	getUserCalls  int
	personalCalls int
	banned        []int64
	unbanned      []int64
	muted         []int64
	sent          []string
}

var errFakeNotFound = errors.New("fake: not found")

func newFakeClient() *fakeClient {
	return &fakeClient{
		users:          map[int64]*telegram.User{},
		chats:          map[int64]*telegram.Chat{},
		personal:       map[int64]int64{},
		commonChats:    map[int64][]telegram.Chat{},
		administrators: map[int64][]telegram.ChatMember{},
		messages:       map[int64][]telegram.ChannelMessage{},
		members:        map[int64][]telegram.ChatMember{},
		reactors:       map[string][]telegram.User{},
		chatErrs:       map[int64]error{},
	}
}

func (f *fakeClient) GetUser(ctx context.Context, userID int64) (*telegram.User, error) {
	f.getUserCalls++
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeClient) GetChat(ctx context.Context, chatID int64) (*telegram.Chat, error) {
	if err, ok := f.chatErrs[chatID]; ok {
		return nil, err
	}
	if chat, ok := f.chats[chatID]; ok {
		return chat, nil
	}
	return nil, errFakeNotFound
}

func (f *fakeClient) PersonalChannelRef(ctx context.Context, userID int64) (int64, bool, error) {
	f.personalCalls++
	ref, ok := f.personal[userID]
	return ref, ok, nil
}

func (f *fakeClient) ListCommonChats(ctx context.Context, userID int64) ([]telegram.Chat, error) {
	return f.commonChats[userID], nil
}

func (f *fakeClient) ListAdministrators(ctx context.Context, chatID int64) ([]telegram.ChatMember, error) {
	return f.administrators[chatID], nil
}

func (f *fakeClient) ListRecentMessages(ctx context.Context, chatID int64, limit int) ([]telegram.ChannelMessage, error) {
	msgs := f.messages[chatID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (f *fakeClient) ListMembers(ctx context.Context, chatID int64) ([]telegram.ChatMember, error) {
	return f.members[chatID], nil
}

func (f *fakeClient) ListReactors(ctx context.Context, chatID int64, messageID int, emoji string) ([]telegram.User, error) {
	return f.reactors[emoji], nil
}

func (f *fakeClient) Ban(ctx context.Context, chatID, userID int64) error {
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeClient) Unban(ctx context.Context, chatID, userID int64) error {
	f.unbanned = append(f.unbanned, userID)
	return nil
}

func (f *fakeClient) Mute(ctx context.Context, chatID, userID int64) error {
	f.muted = append(f.muted, userID)
	return nil
}

func (f *fakeClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.sent = append(f.sent, text)
	return nil
}
