package upstream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the daily upstream call limit has been exhausted.
var ErrDailyLimitReached = errors.New("daily upstream limit reached")

// Quota is a point-in-time view of the limiter's daily window.
type Quota struct {
	DailyLimit int64
	DailyUsed  int64
	Remaining  int64
	ResetAt    time.Time
}

// RateLimiter controls upstream call rate and daily usage limits.
// It uses a token bucket for per-second rate limiting and a rolling
// 24-hour window for daily quota tracking.
type RateLimiter struct {
	limiter  *rate.Limiter
	maxDaily int64
	nowFunc  func() time.Time

	mu      sync.Mutex
	daily   int64
	resetAt time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size, and daily limit. The daily window resets 24 hours after it
// opened.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(24 * time.Hour)
	return r
}

// Wait blocks until the rate limiter allows the call, or the context is canceled.
// Returns ErrDailyLimitReached if the daily limit has been exhausted.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	r.rollWindow()
	if r.daily >= r.maxDaily {
		used := r.daily
		r.mu.Unlock()
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, used, r.maxDaily)
	}
	// Reserve the slot before waiting so concurrent callers cannot overshoot.
	r.daily++
	r.mu.Unlock()

	if err := r.limiter.Wait(ctx); err != nil {
		r.mu.Lock()
		r.daily--
		r.mu.Unlock()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// DailyCount returns the current daily call count.
func (r *RateLimiter) DailyCount() int64 {
	return r.Quota().DailyUsed
}

// MaxDaily returns the configured daily call limit.
func (r *RateLimiter) MaxDaily() int64 {
	return r.maxDaily
}

// Remaining returns the number of calls left in the current window.
func (r *RateLimiter) Remaining() int64 {
	return r.Quota().Remaining
}

// ResetAt returns the time when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	return r.Quota().ResetAt
}

// Quota snapshots the daily window.
func (r *RateLimiter) Quota() Quota {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollWindow()
	remaining := max(r.maxDaily-r.daily, 0)
	return Quota{
		DailyLimit: r.maxDaily,
		DailyUsed:  r.daily,
		Remaining:  remaining,
		ResetAt:    r.resetAt,
	}
}

// rollWindow starts a new window once the current one expired. Callers hold mu.
func (r *RateLimiter) rollWindow() {
	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.daily = 0
		r.resetAt = now.Add(24 * time.Hour)
	}
}
