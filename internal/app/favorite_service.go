package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"interno-chat/internal/model"
	"interno-chat/internal/repository"
)

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	now          func() time.Time
}

type FavoriteInput struct {
	Title          string
	QuestionText   string
	SQLCorrect     string
	Dialect        string
	Tags           []string
	IsPinned       bool
	ConversationID *string
}

// FavoritePatch holds the fields to change; nil means keep. A blank
// ConversationID clears the correlation.
type FavoritePatch struct {
	Title          *string
	ConversationID *string
	QuestionText   *string
	SQLCorrect     *string
	Dialect        *string
	Tags           *[]string
	IsPinned       *bool
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		now:          time.Now,
	}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID uint, input FavoriteInput) (*model.FavoriteQuestion, error) {
	if userID == 0 {
		return nil, fieldError("user_id", "must be a positive integer")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fieldError("title", "is required")
	}
	questionText := strings.TrimSpace(input.QuestionText)
	if questionText == "" {
		return nil, fieldError("question_text", "is required")
	}
	sqlCorrect := strings.TrimSpace(input.SQLCorrect)
	if sqlCorrect == "" {
		return nil, fieldError("sql_correct", "is required")
	}

	dialect := strings.TrimSpace(input.Dialect)
	if dialect == "" {
		dialect = model.DialectMySQL
	}
	if !model.IsValidDialect(dialect) {
		return nil, fieldError("dialect", "must be mysql or postgres")
	}

	conversationID, err := normalizeConversationID(input.ConversationID)
	if err != nil {
		return nil, err
	}
	tags, err := encodeTags(input.Tags)
	if err != nil {
		return nil, err
	}

	favorite := &model.FavoriteQuestion{
		UserID:         userID,
		Title:          title,
		QuestionText:   questionText,
		SQLCorrect:     sqlCorrect,
		Dialect:        dialect,
		Tags:           tags,
		IsPinned:       input.IsPinned,
		ConversationID: conversationID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint) ([]model.FavoriteQuestion, error) {
	if userID == 0 {
		return nil, fieldError("user_id", "must be a positive integer")
	}
	return s.favoriteRepo.ListByUserID(ctx, userID)
}

func (s *FavoriteService) GetFavoriteByConversation(ctx context.Context, userID uint, conversationID string) (*model.FavoriteQuestion, error) {
	conversationID = strings.TrimSpace(conversationID)
	if userID == 0 || conversationID == "" {
		return nil, ErrInvalidInput
	}
	favorite, err := s.favoriteRepo.GetByConversationAndUserID(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, ErrFavoriteNotFound
	}
	return favorite, nil
}

func (s *FavoriteService) UpdateFavorite(ctx context.Context, userID, favoriteID uint, patch FavoritePatch) (*model.FavoriteQuestion, error) {
	if userID == 0 || favoriteID == 0 {
		return nil, ErrInvalidInput
	}

	updates, err := patchColumns(patch)
	if err != nil {
		return nil, err
	}

	favorite, err := s.favoriteRepo.GetByIDAndUserID(ctx, favoriteID, userID)
	if err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, ErrFavoriteNotFound
	}

	if err := s.favoriteRepo.Update(ctx, favorite, updates); err != nil {
		return nil, err
	}
	return favorite, nil
}

// UseFavorite records that the saved question was run again.
func (s *FavoriteService) UseFavorite(ctx context.Context, userID, favoriteID uint) (*model.FavoriteQuestion, error) {
	if userID == 0 || favoriteID == 0 {
		return nil, ErrInvalidInput
	}
	ok, err := s.favoriteRepo.MarkUsed(ctx, favoriteID, userID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrFavoriteNotFound
	}
	return s.favoriteRepo.GetByIDAndUserID(ctx, favoriteID, userID)
}

func (s *FavoriteService) DeleteFavorite(ctx context.Context, userID, favoriteID uint) error {
	if userID == 0 || favoriteID == 0 {
		return ErrInvalidInput
	}
	deleted, err := s.favoriteRepo.DeleteByIDAndUserID(ctx, favoriteID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFavoriteNotFound
	}
	return nil
}

func patchColumns(patch FavoritePatch) (map[string]any, error) {
	updates := make(map[string]any)

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fieldError("title", "must not be empty")
		}
		updates["title"] = title
	}
	if patch.QuestionText != nil {
		text := strings.TrimSpace(*patch.QuestionText)
		if text == "" {
			return nil, fieldError("question_text", "must not be empty")
		}
		updates["question_text"] = text
	}
	if patch.SQLCorrect != nil {
		sql := strings.TrimSpace(*patch.SQLCorrect)
		if sql == "" {
			return nil, fieldError("sql_correct", "must not be empty")
		}
		updates["sql_correct"] = sql
	}
	if patch.Dialect != nil {
		dialect := strings.TrimSpace(*patch.Dialect)
		if !model.IsValidDialect(dialect) {
			return nil, fieldError("dialect", "must be mysql or postgres")
		}
		updates["dialect"] = dialect
	}
	if patch.ConversationID != nil {
		id, err := normalizeConversationID(patch.ConversationID)
		if err != nil {
			return nil, err
		}
		if id == nil {
			updates["conversation_id"] = nil
		} else {
			updates["conversation_id"] = *id
		}
	}
	if patch.Tags != nil {
		tags, err := encodeTags(*patch.Tags)
		if err != nil {
			return nil, err
		}
		updates["tags"] = tags
	}
	if patch.IsPinned != nil {
		updates["is_pinned"] = *patch.IsPinned
	}
	return updates, nil
}

func encodeTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		return nil, nil
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("encode tags failed: %w", err)
	}
	return datatypes.JSON(raw), nil
}
