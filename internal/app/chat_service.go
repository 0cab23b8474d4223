package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"interno-chat/internal/model"
	"interno-chat/internal/repository"
)

const defaultDBID = "primo"

// MessageListCache holds the ordered message list of a chat. A dirty marker
// keeps readers off the cache while a write for that chat is in flight.
type MessageListCache interface {
	GetMessages(ctx context.Context, chatID uint) ([]model.Message, bool, error)
	SetMessages(ctx context.Context, chatID uint, messages []model.Message) error
	DeleteMessages(ctx context.Context, chatID uint) error
	MarkDirty(ctx context.Context, chatID uint) error
	IsDirty(ctx context.Context, chatID uint) (bool, error)
}

type ChatService struct {
	chatRepo    *repository.ChatRepository
	messageRepo *repository.MessageRepository
	cache       MessageListCache
}

type CreateChatInput struct {
	ExternalID string
	UserID     uint
	DBID       string
	Title      string
}

func NewChatService(
	chatRepo *repository.ChatRepository,
	messageRepo *repository.MessageRepository,
	cache MessageListCache,
) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		cache:       cache,
	}
}

func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]model.ConversationSummary, error) {
	if userID == 0 {
		return nil, fieldError("user_id", "must be a positive integer")
	}
	return s.chatRepo.ListSummariesByUserID(ctx, userID)
}

// GetMessages returns the chat's messages oldest first. An unknown chat
// yields an empty list.
func (s *ChatService) GetMessages(ctx context.Context, chatID uint) ([]model.Message, error) {
	if chatID == 0 {
		return nil, fieldError("chat_id", "must be a positive integer")
	}

	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, chatID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetMessages(ctx, chatID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	messages, err := s.messageRepo.ListByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, chatID); dirtyErr == nil && !dirty {
			_ = s.cache.SetMessages(ctx, chatID, messages)
		}
	}
	return messages, nil
}

func (s *ChatService) CreateChat(ctx context.Context, input CreateChatInput) (*model.Chat, error) {
	if input.UserID == 0 {
		return nil, fieldError("user_id", "must be a positive integer")
	}

	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		externalID = uuid.NewString()
	}
	if len(externalID) > 36 {
		return nil, fieldError("external_id", "must be at most 36 characters")
	}

	dbID := strings.TrimSpace(input.DBID)
	if dbID == "" {
		dbID = defaultDBID
	}

	chat := &model.Chat{
		ExternalID: externalID,
		UserID:     input.UserID,
		DBID:       dbID,
		Title:      strings.TrimSpace(input.Title),
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) UpdateChatTitle(ctx context.Context, chatID uint, title string) (*model.Chat, error) {
	if chatID == 0 {
		return nil, fieldError("chat_id", "must be a positive integer")
	}

	ok, err := s.chatRepo.UpdateTitle(ctx, chatID, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}
	if !ok {
		// mysql reports zero affected rows when the title is unchanged
		chat, getErr := s.chatRepo.GetByID(ctx, chatID)
		if getErr != nil {
			return nil, getErr
		}
		if chat == nil {
			return nil, ErrChatNotFound
		}
		return chat, nil
	}
	return s.chatRepo.GetByID(ctx, chatID)
}

func (s *ChatService) DeleteChat(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return fieldError("chat_id", "must be a positive integer")
	}

	deleted, err := s.chatRepo.DeleteWithMessages(ctx, chatID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrChatNotFound
	}
	invalidateMessages(ctx, s.cache, chatID)
	return nil
}

func invalidateMessages(ctx context.Context, cache MessageListCache, chatID uint) {
	if cache == nil {
		return
	}
	_ = cache.MarkDirty(ctx, chatID)
	_ = cache.DeleteMessages(ctx, chatID)
}
