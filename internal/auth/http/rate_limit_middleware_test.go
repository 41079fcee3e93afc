package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(ReaderRateLimitMiddleware(ctx, rps, burst, createTestLogger()))
	router.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func getContent(router *gin.Engine, configure func(r *http.Request)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/content", nil)
	if configure != nil {
		configure(req)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestReaderRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10.0, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, getContent(router, nil).Code)
	}
}

func TestReaderRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, getContent(router, nil).Code)
	}

	w := getContent(router, nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestReaderRateLimitMiddleware_IndependentLimitsPerIP(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 1)
	fromIP := func(addr string) func(r *http.Request) {
		return func(r *http.Request) { r.RemoteAddr = addr }
	}

	assert.Equal(t, http.StatusOK, getContent(router, fromIP("192.168.1.100:12345")).Code)
	assert.Equal(t, http.StatusTooManyRequests, getContent(router, fromIP("192.168.1.100:12346")).Code)
	assert.Equal(t, http.StatusOK, getContent(router, fromIP("192.168.1.101:12345")).Code)
}

func TestReaderRateLimitMiddleware_HandlesXForwardedFor(t *testing.T) {
	router := newRateLimitedRouter(t, 1.0, 1)
	forwardedFor := func(ip string) func(r *http.Request) {
		return func(r *http.Request) { r.Header.Set("X-Forwarded-For", ip) }
	}

	assert.Equal(t, http.StatusOK, getContent(router, forwardedFor("203.0.113.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, getContent(router, forwardedFor("203.0.113.1")).Code)
	assert.Equal(t, http.StatusOK, getContent(router, forwardedFor("203.0.113.2")).Code)
}

func TestIPRateLimiterStore_RemoveIdleSince(t *testing.T) {
	store := &ipRateLimiterStore{rps: 10.0, burst: 20}

	assert.NotNil(t, store.getLimiter("192.168.1.100"))
	assert.NotNil(t, store.getLimiter("192.168.1.101"))

	val, ok := store.limiters.Load("192.168.1.100")
	assert.True(t, ok)
	entry := val.(*ipRateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.removeIdleSince(time.Now().Add(-limiterIdleTimeout))

	_, ok = store.limiters.Load("192.168.1.100")
	assert.False(t, ok)
	_, ok = store.limiters.Load("192.168.1.101")
	assert.True(t, ok)
}

func TestIPRateLimiterStore_ReusesLimiter(t *testing.T) {
	store := &ipRateLimiterStore{rps: 10.0, burst: 20}

	assert.Same(t, store.getLimiter("10.0.0.1"), store.getLimiter("10.0.0.1"))
}
