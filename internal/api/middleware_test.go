package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_PreservesCallerID(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, "caller-supplied-id", w.Header().Get("X-Request-ID"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("OPTIONS", "/api/users", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(1, 100)

	// Burst allows the first requests through, then the 1 RPS limit bites.
	allowed := 0
	for i := 0; i < 20; i++ {
		if rl.Allow("user-1", false) {
			allowed++
		}
	}
	assert.Greater(t, allowed, 0)
	assert.Less(t, allowed, 20, "default limit should reject part of the burst")

	// A subscribed caller under its own key has more headroom.
	subscribedAllowed := 0
	for i := 0; i < 20; i++ {
		if rl.Allow("user-2", true) {
			subscribedAllowed++
		}
	}
	assert.GreaterOrEqual(t, subscribedAllowed, allowed)
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	stores := &Stores{
		Users:        newFakeUserStore(),
		Holdings:     newFakeHoldingStore(),
		Performances: newFakePerformanceStore(),
		Quotes:       newFakeQuoteStore(),
	}
	server := NewServer(&ServerConfig{
		Host:          "127.0.0.1",
		Port:          "0",
		DefaultRPS:    1,
		SubscribedRPS: 1,
	}, stores)

	var lastCode int
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		req.Header.Set("X-User-ID", "hammering-user")
		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, req)
		lastCode = w.Code
		if lastCode == http.StatusTooManyRequests {
			break
		}
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
