package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"interno-chat/internal/model"
)

func newTestCache(t *testing.T, messagesTTL, dirtyTTL time.Duration) (*MessageCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewMessageCache(client, messagesTTL, dirtyTTL), mr
}

func TestMessageCache_GetSetDelete(t *testing.T) {
	c, mr := newTestCache(t, time.Minute, 5*time.Second)
	ctx := context.Background()

	messages, hit, err := c.GetMessages(ctx, 7)
	require.NoError(t, err)
	require.False(t, hit)
	require.Nil(t, messages)

	conversationID := "3f1c1d2e-0000-4000-8000-000000000001"
	stored := []model.Message{
		{ID: 1, ChatID: 7, Role: model.RoleUser, Content: "top products?", ConversationID: &conversationID},
		{ID: 2, ChatID: 7, Role: model.RoleBot, Content: "done", Output: datatypes.JSON(`{"sql":"SELECT 1"}`), ConversationID: &conversationID},
	}
	require.NoError(t, c.SetMessages(ctx, 7, stored))

	require.True(t, mr.Exists("chat:messages:7"))
	require.Equal(t, time.Minute, mr.TTL("chat:messages:7"))

	messages, hit, err = c.GetMessages(ctx, 7)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, messages, 2)
	require.Equal(t, "done", messages[1].Content)
	require.JSONEq(t, `{"sql":"SELECT 1"}`, string(messages[1].Output))
	require.Equal(t, conversationID, *messages[0].ConversationID)

	require.NoError(t, c.DeleteMessages(ctx, 7))
	_, hit, err = c.GetMessages(ctx, 7)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestMessageCache_DirtyMarkerExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute, 5*time.Second)
	ctx := context.Background()

	dirty, err := c.IsDirty(ctx, 3)
	require.NoError(t, err)
	require.False(t, dirty)

	require.NoError(t, c.MarkDirty(ctx, 3))
	require.True(t, mr.Exists("chat:messages:dirty:3"))
	require.Equal(t, 5*time.Second, mr.TTL("chat:messages:dirty:3"))

	dirty, err = c.IsDirty(ctx, 3)
	require.NoError(t, err)
	require.True(t, dirty)

	mr.FastForward(6 * time.Second)
	dirty, err = c.IsDirty(ctx, 3)
	require.NoError(t, err)
	require.False(t, dirty)
}

func TestMessageCache_DefaultTTLs(t *testing.T) {
	c, mr := newTestCache(t, 0, 0)
	ctx := context.Background()

	require.NoError(t, c.SetMessages(ctx, 1, []model.Message{}))
	require.NoError(t, c.MarkDirty(ctx, 1))
	require.Equal(t, 60*time.Second, mr.TTL("chat:messages:1"))
	require.Equal(t, 5*time.Second, mr.TTL("chat:messages:dirty:1"))
}

func TestMessageCache_CorruptPayload(t *testing.T) {
	c, mr := newTestCache(t, time.Minute, time.Second)
	require.NoError(t, mr.Set("chat:messages:9", "not-json"))

	_, hit, err := c.GetMessages(context.Background(), 9)
	require.Error(t, err)
	require.False(t, hit)
}
