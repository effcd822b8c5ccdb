package response_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heimweh17/GatorGrades/internal/response"
)

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := response.WithRequestID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", response.RequestID(ctx))
	assert.Equal(t, "", response.RequestID(context.Background()))
}

func newRequestIDRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		*seen = response.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestIDMiddleware_EchoesProvidedID(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "client-supplied", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "client-supplied", seen)
}

func TestRequestIDMiddleware_GeneratesIDWhenAbsent(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), seen)
}
