package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"interno-chat/internal/model"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, chat *model.Chat) error {
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		return fmt.Errorf("create chat failed: %w", err)
	}
	return nil
}

func (r *ChatRepository) GetByID(ctx context.Context, chatID uint) (*model.Chat, error) {
	var chat model.Chat
	if err := r.db.WithContext(ctx).First(&chat, chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat failed: %w", err)
	}
	return &chat, nil
}

// ListSummariesByUserID returns the user's chats newest first, each with the
// number of messages it holds.
func (r *ChatRepository) ListSummariesByUserID(ctx context.Context, userID uint) ([]model.ConversationSummary, error) {
	var chats []model.Chat
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("list chats failed: %w", err)
	}

	summaries := make([]model.ConversationSummary, 0, len(chats))
	if len(chats) == 0 {
		return summaries, nil
	}

	ids := make([]uint, 0, len(chats))
	for _, c := range chats {
		ids = append(ids, c.ID)
	}
	counts, err := r.countMessages(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range chats {
		summaries = append(summaries, model.ConversationSummary{
			ID:           c.ID,
			UserID:       c.UserID,
			DBID:         c.DBID,
			Title:        c.Title,
			CreatedAt:    c.CreatedAt,
			MessageCount: counts[c.ID],
		})
	}
	return summaries, nil
}

func (r *ChatRepository) countMessages(ctx context.Context, chatIDs []uint) (map[uint]int64, error) {
	var rows []struct {
		ChatID uint
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Select("chat_id, COUNT(*) AS total").
		Where("chat_id IN ?", chatIDs).
		Group("chat_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count chat messages failed: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ChatID] = row.Total
	}
	return counts, nil
}

// UpdateTitle reports false when no chat has the given id.
func (r *ChatRepository) UpdateTitle(ctx context.Context, chatID uint, title string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Chat{}).Where("id = ?", chatID).Update("title", title)
	if result.Error != nil {
		return false, fmt.Errorf("update chat title failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteWithMessages removes the chat, every message in it and the ratings
// given to those messages.
func (r *ChatRepository) DeleteWithMessages(ctx context.Context, chatID uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chatMessages := tx.Model(&model.Message{}).Select("id").Where("chat_id = ?", chatID)
		if err := tx.Where("message_id IN (?)", chatMessages).Delete(&model.MessageRating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chat_id = ?", chatID).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Chat{}, chatID)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete chat failed: %w", err)
	}
	return deleted, nil
}
