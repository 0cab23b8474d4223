package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interno-chat/internal/app"
	"interno-chat/internal/transport/http/response"
)

type RatingHandler struct {
	ratingService *app.RatingService
}

type RateMessageRequest struct {
	MessageID uint `json:"message_id" binding:"required,gt=0"`
	Rating    *int `json:"rating" binding:"required"`
}

func NewRatingHandler(ratingService *app.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) Rate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req RateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.ratingService.RateMessage(c.Request.Context(), req.MessageID, userID, *req.Rating)
	if err != nil {
		writeServiceError(c, err, "rate message failed")
		return
	}
	response.OK(c, result)
}

func (h *RatingHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	messageID, ok := parseIDParam(c, "message_id")
	if !ok {
		return
	}

	rating, err := h.ratingService.GetRating(c.Request.Context(), messageID, userID)
	if err != nil {
		writeServiceError(c, err, "get rating failed")
		return
	}
	response.OK(c, rating)
}
