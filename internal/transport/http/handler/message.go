package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interno-chat/internal/app"
	"interno-chat/internal/model"
	"interno-chat/internal/transport/http/response"
)

type MessageHandler struct {
	messageService *app.MessageService
}

func NewMessageHandler(messageService *app.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Create(c *gin.Context) {
	var draft model.MessageDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	message, err := h.messageService.CreateMessage(c.Request.Context(), draft)
	if err != nil {
		writeServiceError(c, err, "create message failed")
		return
	}
	response.JSON(c, http.StatusCreated, message)
}

func (h *MessageHandler) Enqueue(c *gin.Context) {
	var draft model.MessageDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	queued, err := h.messageService.EnqueueMessage(c.Request.Context(), draft)
	if err != nil {
		writeServiceError(c, err, "enqueue message failed")
		return
	}
	response.JSON(c, http.StatusAccepted, queued)
}

// ListByConversation returns both halves of a pair, oldest first.
func (h *MessageHandler) ListByConversation(c *gin.Context) {
	messages, err := h.messageService.ListConversationMessages(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		writeServiceError(c, err, "list conversation messages failed")
		return
	}
	response.OK(c, messages)
}

// FindByConversation answers with the message or a JSON null.
func (h *MessageHandler) FindByConversation(c *gin.Context) {
	message, err := h.messageService.FindByConversation(c.Request.Context(), c.Param("conversation_id"), c.Query("role"))
	if err != nil {
		writeServiceError(c, err, "find message failed")
		return
	}
	response.OK(c, message)
}
