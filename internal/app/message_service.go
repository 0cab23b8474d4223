package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"interno-chat/internal/model"
	"interno-chat/internal/repository"
)

const maxConversationIDLength = 36

type MessagePublisher interface {
	Publish(ctx context.Context, draft model.MessageDraft) error
}

type MessageService struct {
	chatRepo    *repository.ChatRepository
	messageRepo *repository.MessageRepository
	publisher   MessagePublisher
	cache       MessageListCache
	newID       func() string
}

func NewMessageService(
	chatRepo *repository.ChatRepository,
	messageRepo *repository.MessageRepository,
	publisher MessagePublisher,
	cache MessageListCache,
) *MessageService {
	return &MessageService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		publisher:   publisher,
		cache:       cache,
		newID:       uuid.NewString,
	}
}

// FindByConversation returns the message with the given role in the pair, or
// nil when nothing matches. An empty conversation id never matches.
func (s *MessageService) FindByConversation(ctx context.Context, conversationID, role string) (*model.Message, error) {
	if !model.IsValidRole(role) {
		return nil, fieldError("role", "must be user or bot")
	}
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, nil
	}
	return s.messageRepo.FindLatestByConversation(ctx, conversationID, role)
}

func (s *MessageService) ListConversationMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, fieldError("conversation_id", "is required")
	}
	messages, err := s.messageRepo.ListByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ErrConversationNotFound
	}
	return messages, nil
}

// CreateMessage stores a message. When the draft carries no conversation id a
// user message opens a new pair, and a bot message joins the chat's latest
// user message unless that one was already answered.
func (s *MessageService) CreateMessage(ctx context.Context, draft model.MessageDraft) (*model.Message, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.GetByID(ctx, draft.ChatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	conversationID, err := s.resolveConversationID(ctx, draft)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		ChatID:         chat.ID,
		UserID:         chat.UserID,
		Role:           draft.Role,
		Content:        draft.Content,
		Output:         draft.Output,
		SQLText:        sqlFromDraft(draft),
		SQLDialect:     draft.Dialect,
		ConversationID: &conversationID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	invalidateMessages(ctx, s.cache, chat.ID)
	return message, nil
}

// EnqueueMessage hands the draft to the ingestion queue. User messages get
// their conversation id here so the caller can correlate the answer.
func (s *MessageService) EnqueueMessage(ctx context.Context, draft model.MessageDraft) (*model.MessageDraft, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}
	if s.publisher == nil {
		return nil, ErrMessageEnqueue
	}

	chat, err := s.chatRepo.GetByID(ctx, draft.ChatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	if draft.ConversationID == nil && draft.Role == model.RoleUser {
		id := s.newID()
		draft.ConversationID = &id
	}

	if s.cache != nil {
		_ = s.cache.MarkDirty(ctx, chat.ID)
	}
	if err := s.publisher.Publish(ctx, draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMessageEnqueue, err)
	}
	return &draft, nil
}

func (s *MessageService) resolveConversationID(ctx context.Context, draft model.MessageDraft) (string, error) {
	if draft.ConversationID != nil {
		return *draft.ConversationID, nil
	}
	if draft.Role == model.RoleUser {
		return s.newID(), nil
	}

	lastQuestion, err := s.messageRepo.FindLatestByChatAndRole(ctx, draft.ChatID, model.RoleUser)
	if err != nil {
		return "", err
	}
	if lastQuestion == nil || lastQuestion.ConversationID == nil {
		return s.newID(), nil
	}

	answer, err := s.messageRepo.FindLatestByConversation(ctx, *lastQuestion.ConversationID, model.RoleBot)
	if err != nil {
		return "", err
	}
	if answer != nil {
		return s.newID(), nil
	}
	return *lastQuestion.ConversationID, nil
}

// validateDraft normalizes the draft in place.
func validateDraft(draft *model.MessageDraft) error {
	if draft.ChatID == 0 {
		return fieldError("chat_id", "must be a positive integer")
	}
	if !model.IsValidRole(draft.Role) {
		return fieldError("role", "must be user or bot")
	}
	if strings.TrimSpace(draft.Content) == "" && len(draft.Output) == 0 {
		return fieldError("content", "is required")
	}

	id, err := normalizeConversationID(draft.ConversationID)
	if err != nil {
		return err
	}
	draft.ConversationID = id

	if draft.Dialect != nil {
		dialect := strings.TrimSpace(*draft.Dialect)
		if dialect == "" {
			draft.Dialect = nil
		} else {
			draft.Dialect = &dialect
		}
	}
	return nil
}

// normalizeConversationID trims the id and maps blank to nil. The value is
// otherwise opaque.
func normalizeConversationID(id *string) (*string, error) {
	if id == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > maxConversationIDLength {
		return nil, fieldError("conversation_id", "must be at most 36 characters")
	}
	return &trimmed, nil
}

func sqlFromDraft(draft model.MessageDraft) *string {
	if draft.SQL != nil {
		return draft.SQL
	}
	if len(draft.Output) == 0 {
		return nil
	}
	var output map[string]any
	if err := json.Unmarshal(draft.Output, &output); err != nil {
		return nil
	}
	if sql, ok := output["sql"].(string); ok {
		return &sql
	}
	return nil
}
