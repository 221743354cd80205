package ai

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// rateLimiter 분당 요청 수 제한 (단순 토큰 버킷)
type rateLimiter struct {
	mu       sync.Mutex
	limit    int
	tokens   int
	lastTick time.Time
	now      func() time.Time
}

func newRateLimiter(rpm int) *rateLimiter {
	return &rateLimiter{
		limit:    rpm,
		tokens:   rpm,
		lastTick: time.Now(),
		now:      time.Now,
	}
}

// wait blocks until a request slot is free. A limit <= 0 disables limiting.
func (l *rateLimiter) wait(ctx context.Context) error {
	if l == nil || l.limit <= 0 {
		return nil
	}

	for {
		d := l.reserve()
		if d == 0 {
			return nil
		}
		slog.Info("rate limit reached, waiting", "duration", d)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
}

// reserve takes a token and returns 0, or returns how long to wait for the next window.
func (l *rateLimiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	elapsed := now.Sub(l.lastTick)
	if elapsed >= time.Minute {
		l.tokens = l.limit
		l.lastTick = now
		elapsed = 0
	}
	if l.tokens > 0 {
		l.tokens--
		return 0
	}
	return time.Minute - elapsed
}
