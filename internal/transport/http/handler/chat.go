package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interno-chat/internal/app"
	"interno-chat/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

type CreateChatRequest struct {
	ExternalID string `json:"external_id" binding:"max=36"`
	UserID     uint   `json:"user_id" binding:"required,gt=0"`
	DBID       string `json:"db_id" binding:"max=64"`
	Title      string `json:"title" binding:"max=255"`
}

type UpdateChatTitleRequest struct {
	Title string `json:"title" binding:"max=255"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ListConversations serves GET /chats/:id where id is the owning user.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summaries, err := h.chatService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "list conversations failed")
		return
	}
	response.OK(c, summaries)
}

// GetMessages serves GET /chats/:id/messages where id is the chat.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	messages, err := h.chatService.GetMessages(c.Request.Context(), chatID)
	if err != nil {
		writeServiceError(c, err, "get messages failed")
		return
	}
	response.OK(c, messages)
}

func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	chat, err := h.chatService.CreateChat(c.Request.Context(), app.CreateChatInput{
		ExternalID: req.ExternalID,
		UserID:     req.UserID,
		DBID:       req.DBID,
		Title:      req.Title,
	})
	if err != nil {
		writeServiceError(c, err, "create chat failed")
		return
	}
	response.OK(c, chat)
}

func (h *ChatHandler) UpdateTitle(c *gin.Context) {
	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateChatTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	chat, err := h.chatService.UpdateChatTitle(c.Request.Context(), chatID, req.Title)
	if err != nil {
		writeServiceError(c, err, "update chat title failed")
		return
	}
	response.OK(c, gin.H{"success": true, "title": chat.Title})
}

func (h *ChatHandler) DeleteChat(c *gin.Context) {
	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.chatService.DeleteChat(c.Request.Context(), chatID); err != nil {
		writeServiceError(c, err, "delete chat failed")
		return
	}
	c.Status(http.StatusNoContent)
}
