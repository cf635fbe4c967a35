package http

import (
	"sync"
	"time"
)

const (
	// idleClientTTL is how long a client may go unseen before its window
	// is forgotten.
	idleClientTTL = 1 * time.Hour
	sweepInterval = 30 * time.Minute
)

// clientWindow counts the requests a client has left in its current
// fixed window.
type clientWindow struct {
	remaining int
	start     time.Time
	lastSeen  time.Time
}

// RateLimiter hands each client a fixed number of requests per window.
// The allowance resets in full once the window has elapsed.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	clients   map[string]*clientWindow
	now       func() time.Time
	stopSweep chan struct{}
	stopOnce  sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:     limit,
		window:    window,
		clients:   make(map[string]*clientWindow),
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Allow spends one request from client's window. When the window is used
// up it reports how long until it resets.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.clients[client]
	if !ok {
		w = &clientWindow{}
		r.clients[client] = w
	}
	r.resetIfElapsed(w, now)
	w.lastSeen = now

	if w.remaining <= 0 {
		return false, r.window - now.Sub(w.start)
	}
	w.remaining--
	return true, 0
}

func (r *RateLimiter) resetIfElapsed(w *clientWindow, now time.Time) {
	if w.start.IsZero() || now.Sub(w.start) >= r.window {
		w.remaining = r.limit
		w.start = now
	}
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopSweep) })
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stopSweep:
			return
		}
	}
}

// evictIdle drops clients not seen for idleClientTTL. A client inside a
// long window keeps its state as long as it keeps calling.
func (r *RateLimiter) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, w := range r.clients {
		if now.Sub(w.lastSeen) > idleClientTTL {
			delete(r.clients, client)
		}
	}
}

func (r *RateLimiter) clientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
