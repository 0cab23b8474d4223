package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"interno-chat/internal/model"
	"interno-chat/internal/repository"
)

func TestFavoriteService_AddFavoriteValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewFavoriteService(repository.NewFavoriteRepository(f.db))
	ctx := context.Background()

	valid := FavoriteInput{Title: "t", QuestionText: "q", SQLCorrect: "SELECT 1"}

	tests := []struct {
		name   string
		mutate func(in *FavoriteInput)
		field  string
	}{
		{name: "title", mutate: func(in *FavoriteInput) { in.Title = " " }, field: "title"},
		{name: "question", mutate: func(in *FavoriteInput) { in.QuestionText = "" }, field: "question_text"},
		{name: "sql", mutate: func(in *FavoriteInput) { in.SQLCorrect = "" }, field: "sql_correct"},
		{name: "dialect", mutate: func(in *FavoriteInput) { in.Dialect = "oracle" }, field: "dialect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := svc.AddFavorite(ctx, 1, in)
			requireFieldError(t, err, tt.field)
		})
	}

	fav, err := svc.AddFavorite(ctx, 1, valid)
	require.NoError(t, err)
	require.Equal(t, model.DialectMySQL, fav.Dialect)
	require.Nil(t, fav.ConversationID)
}

func TestFavoriteService_ConversationPropagation(t *testing.T) {
	f := newFixture(t)
	svc := NewFavoriteService(repository.NewFavoriteRepository(f.db))
	ctx := context.Background()

	conv := "9f1c2d3e-4b5a-6789-abcd-ef0123456789"
	fav, err := svc.AddFavorite(ctx, 4, FavoriteInput{
		Title:          "monthly revenue",
		QuestionText:   "revenue per month?",
		SQLCorrect:     "SELECT month, SUM(total) FROM orders GROUP BY month",
		Tags:           []string{"finance", " ", "monthly"},
		ConversationID: &conv,
	})
	require.NoError(t, err)
	require.JSONEq(t, `["finance","monthly"]`, string(fav.Tags))

	list, err := svc.ListFavorites(ctx, 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, conv, *list[0].ConversationID)

	byConv, err := svc.GetFavoriteByConversation(ctx, 4, conv)
	require.NoError(t, err)
	require.Equal(t, fav.ID, byConv.ID)

	// title-only patch keeps the correlation
	updated, err := svc.UpdateFavorite(ctx, 4, fav.ID, FavoritePatch{Title: strPtr("revenue")})
	require.NoError(t, err)
	require.Equal(t, "revenue", updated.Title)
	require.Equal(t, conv, *updated.ConversationID)
	require.Equal(t, fav.SQLCorrect, updated.SQLCorrect)

	other := "11111111-2222-3333-4444-555555555555"
	updated, err = svc.UpdateFavorite(ctx, 4, fav.ID, FavoritePatch{ConversationID: &other})
	require.NoError(t, err)
	require.Equal(t, other, *updated.ConversationID)

	updated, err = svc.UpdateFavorite(ctx, 4, fav.ID, FavoritePatch{ConversationID: strPtr("")})
	require.NoError(t, err)
	require.Nil(t, updated.ConversationID)
	require.Equal(t, "revenue", updated.Title)

	_, err = svc.GetFavoriteByConversation(ctx, 4, conv)
	require.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavoriteService_ScopedToOwner(t *testing.T) {
	f := newFixture(t)
	svc := NewFavoriteService(repository.NewFavoriteRepository(f.db))
	used := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	svc.now = func() time.Time { return used }
	ctx := context.Background()

	fav, err := svc.AddFavorite(ctx, 1, FavoriteInput{Title: "t", QuestionText: "q", SQLCorrect: "SELECT 1"})
	require.NoError(t, err)

	_, err = svc.UpdateFavorite(ctx, 2, fav.ID, FavoritePatch{Title: strPtr("stolen")})
	require.ErrorIs(t, err, ErrFavoriteNotFound)
	_, err = svc.UpdateFavorite(ctx, 1, fav.ID+10, FavoritePatch{Title: strPtr("x")})
	require.ErrorIs(t, err, ErrFavoriteNotFound)
	_, err = svc.UseFavorite(ctx, 2, fav.ID)
	require.ErrorIs(t, err, ErrFavoriteNotFound)
	require.ErrorIs(t, svc.DeleteFavorite(ctx, 2, fav.ID), ErrFavoriteNotFound)

	usedFav, err := svc.UseFavorite(ctx, 1, fav.ID)
	require.NoError(t, err)
	require.Equal(t, 1, usedFav.UsageCount)
	require.True(t, used.Equal(*usedFav.LastUsedAt))

	require.NoError(t, svc.DeleteFavorite(ctx, 1, fav.ID))
	list, err := svc.ListFavorites(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, list)
}
