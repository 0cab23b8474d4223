package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"interno-chat/internal/migration"
	"interno-chat/internal/model"
	"interno-chat/internal/pkg/testdb"
	"interno-chat/internal/repository"
)

type fakeCache struct {
	mu       sync.Mutex
	messages map[uint][]model.Message
	dirty    map[uint]bool
	gets     int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		messages: make(map[uint][]model.Message),
		dirty:    make(map[uint]bool),
	}
}

func (c *fakeCache) GetMessages(_ context.Context, chatID uint) ([]model.Message, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	msgs, ok := c.messages[chatID]
	return msgs, ok, nil
}

func (c *fakeCache) SetMessages(_ context.Context, chatID uint, messages []model.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[chatID] = messages
	return nil
}

func (c *fakeCache) DeleteMessages(_ context.Context, chatID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.messages, chatID)
	return nil
}

func (c *fakeCache) MarkDirty(_ context.Context, chatID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty[chatID] = true
	return nil
}

func (c *fakeCache) IsDirty(_ context.Context, chatID uint) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty[chatID], nil
}

func (c *fakeCache) clearDirty(chatID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.dirty, chatID)
}

type fakePublisher struct {
	published []model.MessageDraft
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, draft model.MessageDraft) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, draft)
	return nil
}

type fixture struct {
	db       *gorm.DB
	chats    *repository.ChatRepository
	messages *repository.MessageRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.OpenMigrated(t, migration.Models()...)
	return &fixture{
		db:       db,
		chats:    repository.NewChatRepository(db),
		messages: repository.NewMessageRepository(db),
	}
}

func (f *fixture) chat(t *testing.T, userID uint) *model.Chat {
	t.Helper()
	svc := NewChatService(f.chats, f.messages, nil)
	chat, err := svc.CreateChat(context.Background(), CreateChatInput{UserID: userID, Title: "test"})
	require.NoError(t, err)
	return chat
}

func strPtr(s string) *string { return &s }

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, ErrInvalidInput)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, field, fe.Field)
}
