package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlerMiddleware())
	r.GET("/sentinel", func(c *gin.Context) { _ = c.Error(apperrors.ErrDuelNotFound) })
	r.GET("/wrapped", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("%w: solution is required", apperrors.ErrInvalidRequest))
	})
	r.GET("/plain", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, "GET", "/sentinel")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No active duel found with this code"}`, w.Body.String())

	w = serve(r, "GET", "/wrapped")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "solution is required")

	w = serve(r, "GET", "/plain")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")

	w = serve(r, "GET", "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)
	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "GET", "/x").Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/x").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "GET", "/x").Code)
}

func TestGeneralRateLimitSkipsPrefixes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GeneralRateLimit("/socket.io/"))
	r.GET("/socket.io/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 80; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "GET", "/socket.io/poll").Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, "POST", "/x")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
