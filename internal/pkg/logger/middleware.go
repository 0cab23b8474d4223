package logger

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	contextKey      = "logger"
	userIDKey       = "user_id"
)

// Middleware tags every request with an id, stores a request-scoped logger on
// the gin context and logs the outcome once the handler chain returns.
func Middleware(base *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLogger := base.With("request_id", requestID)
		c.Set(contextKey, reqLogger)

		start := time.Now()
		c.Next()

		// auth middleware runs later in the chain, so the user is known only now
		if userID, ok := c.Get(userIDKey); ok {
			reqLogger = reqLogger.With("user_id", fmt.Sprint(userID))
		}
		reqLogger.LogRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		for _, ginErr := range c.Errors {
			reqLogger.LogError(ginErr.Err, "request error", "path", c.Request.URL.Path)
		}
	}
}

// FromGin returns the request-scoped logger, or a no-op one outside the
// middleware.
func FromGin(c *gin.Context) *Logger {
	if v, ok := c.Get(contextKey); ok {
		if l, ok := v.(*Logger); ok {
			return l
		}
	}
	return Nop()
}
