package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(false, &buf))

	logger.Debug("hidden")
	logger.Info("shown", slog.Any("err", errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[", "buffers never get colour codes")
}

func TestMiddlewareRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Middleware(slog.New(NewHandler(false, &buf))))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTeapot, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "status=418")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestRequestIDReachesDownstreamLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(NewHandler(false, &buf))

	r := gin.New()
	r.Use(Middleware(logger))
	r.GET("/work", func(c *gin.Context) {
		logger.With(slog.String("component", "handler")).InfoContext(c.Request.Context(), "Doing work")
		c.String(http.StatusOK, RequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/work", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Body.String())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Doing work")
	assert.Contains(t, lines[0], "component=handler")
	assert.Contains(t, lines[0], "request_id=req-42")
	assert.Contains(t, lines[1], "request_id=req-42")
}

func TestRequestIDMissing(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(false, &buf)).InfoContext(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "request_id")
	assert.Empty(t, RequestID(context.Background()))
}
