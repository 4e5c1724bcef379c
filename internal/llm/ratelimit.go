package llm

import (
	"context"
	"sync"
	"time"
)

// rpsLimiter throttles to at most rps requests per second with a burst
// allowance. Tokens are computed lazily from elapsed time instead of a
// refill goroutine, so an idle limiter costs nothing.
type rpsLimiter struct {
	mu       sync.Mutex
	rps      float64
	capacity float64
	tokens   float64
	last     time.Time
	stopped  bool
}

// newRPSLimiter returns nil when rps <= 0; a nil limiter never blocks.
func newRPSLimiter(rps float64, burst int) *rpsLimiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &rpsLimiter{
		rps:      rps,
		capacity: float64(burst),
		tokens:   float64(burst),
		last:     time.Now(),
	}
}

// Acquire blocks until a token is available or the context is canceled.
func (l *rpsLimiter) Acquire(ctx context.Context) error {
	if l == nil {
		return nil
	}
	for {
		l.mu.Lock()
		if l.stopped {
			l.mu.Unlock()
			return context.Canceled
		}
		now := time.Now()
		l.tokens += now.Sub(l.last).Seconds() * l.rps
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
		l.last = now
		if l.tokens >= 1 {
			l.tokens--
			l.mu.Unlock()
			return nil
		}
		wait := time.Duration((1 - l.tokens) / l.rps * float64(time.Second))
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// AcquireN takes n tokens, blocking as needed. Requests larger than the
// bucket capacity drain it in passes rather than erroring.
func (l *rpsLimiter) AcquireN(ctx context.Context, n int) error {
	if l == nil {
		return nil
	}
	for remaining := float64(n); remaining > 0; {
		l.mu.Lock()
		if l.stopped {
			l.mu.Unlock()
			return context.Canceled
		}
		now := time.Now()
		l.tokens += now.Sub(l.last).Seconds() * l.rps
		if l.tokens > l.capacity {
			l.tokens = l.capacity
		}
		l.last = now
		if l.tokens >= 1 {
			take := l.tokens
			if take > remaining {
				take = remaining
			}
			l.tokens -= take
			remaining -= take
			l.mu.Unlock()
			continue
		}
		wait := time.Duration((1 - l.tokens) / l.rps * float64(time.Second))
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Stop disables the limiter; subsequent Acquire calls fail fast.
func (l *rpsLimiter) Stop() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
}
