package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"interno-chat/internal/model"
)

func TestChatService_ListConversations(t *testing.T) {
	f := newFixture(t)
	svc := NewChatService(f.chats, f.messages, nil)
	ctx := context.Background()

	empty, err := svc.ListConversations(ctx, 77)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	_, err = svc.ListConversations(ctx, 0)
	requireFieldError(t, err, "user_id")

	chat := f.chat(t, 77)
	require.Equal(t, "primo", chat.DBID)
	require.Len(t, chat.ExternalID, 36)
	require.NoError(t, f.messages.Create(ctx, &model.Message{ChatID: chat.ID, UserID: 77, Role: model.RoleUser, Content: "q"}))

	got, err := svc.ListConversations(ctx, 77)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].MessageCount)
}

func TestChatService_GetMessagesUsesCache(t *testing.T) {
	f := newFixture(t)
	cache := newFakeCache()
	chatSvc := NewChatService(f.chats, f.messages, cache)
	msgSvc := NewMessageService(f.chats, f.messages, nil, cache)
	ctx := context.Background()
	chat := f.chat(t, 1)

	empty, err := chatSvc.GetMessages(ctx, chat.ID+50)
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = msgSvc.CreateMessage(ctx, model.MessageDraft{ChatID: chat.ID, Role: model.RoleUser, Content: "q"})
	require.NoError(t, err)

	dirty, _ := cache.IsDirty(ctx, chat.ID)
	require.True(t, dirty)
	cache.clearDirty(chat.ID)

	first, err := chatSvc.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// served from cache: rows written behind its back are not visible
	require.NoError(t, f.messages.Create(ctx, &model.Message{ChatID: chat.ID, UserID: 1, Role: model.RoleBot, Content: "a"}))
	second, err := chatSvc.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)

	require.NoError(t, chatSvc.DeleteChat(ctx, chat.ID))
	after, err := chatSvc.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Empty(t, after)
}

func TestChatService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	svc := NewChatService(f.chats, f.messages, nil)
	ctx := context.Background()
	chat := f.chat(t, 1)

	updated, err := svc.UpdateChatTitle(ctx, chat.ID, "  revenue  ")
	require.NoError(t, err)
	require.Equal(t, "revenue", updated.Title)

	same, err := svc.UpdateChatTitle(ctx, chat.ID, "revenue")
	require.NoError(t, err)
	require.Equal(t, chat.ID, same.ID)

	_, err = svc.UpdateChatTitle(ctx, chat.ID+1, "x")
	require.ErrorIs(t, err, ErrChatNotFound)

	require.NoError(t, svc.DeleteChat(ctx, chat.ID))
	require.ErrorIs(t, svc.DeleteChat(ctx, chat.ID), ErrChatNotFound)

	_, err = svc.CreateChat(ctx, CreateChatInput{UserID: 1, ExternalID: "0123456789012345678901234567890123456789"})
	requireFieldError(t, err, "external_id")
}
