package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interno-chat/internal/app"
	"interno-chat/internal/pkg/logger"
	"interno-chat/internal/transport/http/middleware"
	"interno-chat/internal/transport/http/response"
)

// writeServiceError maps the app error taxonomy onto HTTP. Unknown errors are
// logged and reported with the fallback message only.
func writeServiceError(c *gin.Context, err error, fallback string) {
	var fieldErr *app.FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.FieldError(c, fieldErr.Field, fieldErr.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidCredential):
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
	case errors.Is(err, app.ErrChatNotFound):
		response.Error(c, http.StatusNotFound, response.CodeChatNotFound, err.Error())
	case errors.Is(err, app.ErrMessageNotFound):
		response.Error(c, http.StatusNotFound, response.CodeMessageNotFound, err.Error())
	case errors.Is(err, app.ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, response.CodeConversationNotFound, err.Error())
	case errors.Is(err, app.ErrFavoriteNotFound):
		response.Error(c, http.StatusNotFound, response.CodeFavoriteNotFound, err.Error())
	case errors.Is(err, app.ErrRatingNotFound):
		response.Error(c, http.StatusNotFound, response.CodeRatingNotFound, err.Error())
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeUserNotFound, err.Error())
	case errors.Is(err, app.ErrMessageEnqueue):
		logger.FromGin(c).LogError(err, fallback)
		response.Error(c, http.StatusServiceUnavailable, response.CodeServiceUnavailable, app.ErrMessageEnqueue.Error())
	default:
		logger.FromGin(c).LogError(err, fallback)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.FieldError(c, name, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return 0, false
	}
	return userID, true
}
