package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"interno-chat/internal/model"
	"interno-chat/internal/pkg/testdb"
)

func TestFavoriteRepository_ListAndScope(t *testing.T) {
	db := testdb.OpenMigrated(t, &model.FavoriteQuestion{})
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	first := &model.FavoriteQuestion{UserID: 5, Title: "a", QuestionText: "q", SQLCorrect: "SELECT 1", Dialect: model.DialectMySQL, CreatedAt: base}
	second := &model.FavoriteQuestion{UserID: 5, Title: "b", QuestionText: "q", SQLCorrect: "SELECT 2", Dialect: model.DialectMySQL, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, &model.FavoriteQuestion{UserID: 6, Title: "c", QuestionText: "q", SQLCorrect: "SELECT 3", Dialect: model.DialectMySQL}))

	got, err := repo.ListByUserID(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, second.ID, got[0].ID)
	require.Equal(t, first.ID, got[1].ID)

	other, err := repo.GetByIDAndUserID(ctx, first.ID, 6)
	require.NoError(t, err)
	require.Nil(t, other)

	deleted, err := repo.DeleteByIDAndUserID(ctx, first.ID, 6)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = repo.DeleteByIDAndUserID(ctx, first.ID, 5)
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestFavoriteRepository_UpdateAndMarkUsed(t *testing.T) {
	db := testdb.OpenMigrated(t, &model.FavoriteQuestion{})
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	fav := &model.FavoriteQuestion{UserID: 5, Title: "old", QuestionText: "q", SQLCorrect: "SELECT 1", Dialect: model.DialectMySQL}
	require.NoError(t, repo.Create(ctx, fav))

	conv := "c0ffee00-0000-4000-8000-000000000001"
	require.NoError(t, repo.Update(ctx, fav, map[string]any{"conversation_id": conv}))
	require.Equal(t, "old", fav.Title)
	require.NotNil(t, fav.ConversationID)
	require.Equal(t, conv, *fav.ConversationID)

	byConv, err := repo.GetByConversationAndUserID(ctx, conv, 5)
	require.NoError(t, err)
	require.Equal(t, fav.ID, byConv.ID)

	usedAt := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	ok, err := repo.MarkUsed(ctx, fav.ID, 5, usedAt)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.MarkUsed(ctx, fav.ID, 5, usedAt)
	require.NoError(t, err)
	require.True(t, ok)

	reloaded, err := repo.GetByIDAndUserID(ctx, fav.ID, 5)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.UsageCount)
	require.NotNil(t, reloaded.LastUsedAt)
	require.True(t, usedAt.Equal(*reloaded.LastUsedAt))

	ok, err = repo.MarkUsed(ctx, fav.ID, 6, usedAt)
	require.NoError(t, err)
	require.False(t, ok)
}
