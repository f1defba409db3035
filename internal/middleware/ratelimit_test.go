package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(maxRequests int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(maxRequests, window))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func ping(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "198.51.100.7:52000"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAboveThreshold(t *testing.T) {
	r := newLimitedRouter(2, time.Minute)

	for i := 0; i < 2; i++ {
		w := ping(r)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := ping(r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	r := newLimitedRouter(1, 20*time.Millisecond)

	require.Equal(t, http.StatusOK, ping(r).Code)
	require.Equal(t, http.StatusTooManyRequests, ping(r).Code)

	time.Sleep(30 * time.Millisecond)

	require.Equal(t, http.StatusOK, ping(r).Code)
}

func TestRateLimitDisabledWhenZero(t *testing.T) {
	r := newLimitedRouter(0, time.Minute)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, ping(r).Code)
	}
}
