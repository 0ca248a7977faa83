package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/middleware"
)

func get(router *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/test", func(c *gin.Context) {
		assert.NotEmpty(t, c.GetString(middleware.RequestIDKey))
		c.Status(http.StatusOK)
	})

	w := get(router, "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRequestID_HonoursInboundHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(router, "/test", map[string]string{middleware.RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestRecoveryWithLog_NoPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	w := get(router, "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryWithLog_WithPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := get(router, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.RateLimit(0.001, 2))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, get(router, "/test", nil).Code)
	require.Equal(t, http.StatusOK, get(router, "/test", nil).Code)

	w := get(router, "/test", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}
