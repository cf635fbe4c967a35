package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, capacity int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(capacity, window)
	rl.now = clock.now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_AllowAndRefill(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, time.Minute)

	ok, _ := rl.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)

	ok, retry := rl.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	ok, _ = rl.Allow("5.6.7.8")
	assert.True(t, ok, "clients have separate windows")

	clock.advance(45 * time.Second)
	ok, retry = rl.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 15*time.Second, retry)

	clock.advance(15 * time.Second)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestRateLimiter_EvictIdleDropsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(t, 5, time.Minute)

	rl.Allow("idle")
	clock.advance(30 * time.Minute)
	rl.Allow("active")
	clock.advance(31 * time.Minute)

	rl.evictIdle()
	assert.Equal(t, 1, rl.clientCount())
}

func TestRateLimiter_EvictIdleKeepsBusyClientInLongWindow(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, 2*time.Hour)

	ok, _ := rl.Allow("busy")
	assert.True(t, ok)
	clock.advance(90 * time.Minute)
	ok, _ = rl.Allow("busy")
	assert.True(t, ok)
	clock.advance(10 * time.Minute)

	rl.evictIdle()
	assert.Equal(t, 1, rl.clientCount())

	ok, retry := rl.Allow("busy")
	assert.False(t, ok, "eviction must not hand out a fresh window")
	assert.Equal(t, 20*time.Minute, retry)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, 30*time.Second)
	handler := RateLimitMiddleware(rl, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}
