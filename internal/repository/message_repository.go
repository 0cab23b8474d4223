package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"interno-chat/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) Exists(ctx context.Context, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Message{}).Where("id = ?", messageID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check message failed: %w", err)
	}
	return count > 0, nil
}

func (r *MessageRepository) ListByChatID(ctx context.Context, chatID uint) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	if err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID string) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list conversation messages failed: %w", err)
	}
	return messages, nil
}

// FindLatestByConversation returns the newest message with the given
// conversation id and role, or nil. Nothing enforces one row per role, so the
// newest one wins.
func (r *MessageRepository) FindLatestByConversation(ctx context.Context, conversationID, role string) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND role = ?", conversationID, role).
		Order("created_at DESC").
		Order("id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find message by conversation failed: %w", err)
	}
	return &message, nil
}

func (r *MessageRepository) FindLatestByChatAndRole(ctx context.Context, chatID uint, role string) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND role = ?", chatID, role).
		Order("created_at DESC").
		Order("id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest chat message failed: %w", err)
	}
	return &message, nil
}
