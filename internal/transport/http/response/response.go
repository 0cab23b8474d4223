package response

import "github.com/gin-gonic/gin"

const (
	CodeBadRequest           = 40000
	CodeValidation           = 40001
	CodeUnauthorized         = 40100
	CodeInvalidCredentials   = 40101
	CodeForbidden            = 40300
	CodeChatNotFound         = 40401
	CodeMessageNotFound      = 40402
	CodeConversationNotFound = 40403
	CodeFavoriteNotFound     = 40404
	CodeRatingNotFound       = 40405
	CodeUserNotFound         = 40406
	CodeInternalServer       = 50000
	CodeServiceUnavailable   = 50300
)

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// JSON writes a successful payload as is, without an envelope.
func JSON(c *gin.Context, httpStatus int, data any) {
	c.JSON(httpStatus, data)
}

func OK(c *gin.Context, data any) {
	JSON(c, 200, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, APIError{
		Code:    code,
		Message: message,
	})
}

func FieldError(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(400, APIError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	})
}
