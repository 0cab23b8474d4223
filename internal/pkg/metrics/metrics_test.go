package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("interno_chat")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/chats/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	for _, path := range []string{"/chats/1", "/chats/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	m.ObserveQueuedMessage(true)
	m.ObserveQueuedMessage(false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `interno_chat_http_requests_total{method="GET",route="/chats/:id",status="200"} 2`)
	require.Contains(t, body, `interno_chat_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	require.Contains(t, body, `interno_chat_queued_messages_total{outcome="dropped"} 1`)
	require.True(t, strings.Contains(body, "go_goroutines"))
}
