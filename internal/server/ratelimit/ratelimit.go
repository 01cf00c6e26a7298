// Package ratelimit bounds request frequency per (scope, identity) pair with
// fixed-window counters. Counters live in a shared store so the cap holds
// across server instances; window boundaries reset exactly at epoch edges,
// which admits up to 2x the cap in a burst straddling a boundary. That
// approximation is accepted and documented, not a bug.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gripgate/internal/logging"
)

// Limiter scopes. Both are checked for every request; either breach denies.
const (
	ScopeUser = "user"
	ScopeIP   = "ip"
)

// Rate is a parsed "<count>/<unit>" limit.
type Rate struct {
	Cap    int
	Window time.Duration
}

// ParseRate parses limits of the form "30/minute" or "100/hour".
func ParseRate(s string) (Rate, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return Rate{}, fmt.Errorf("invalid rate %q: want <count>/<unit>", s)
	}

	cap, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || cap <= 0 {
		return Rate{}, fmt.Errorf("invalid rate %q: count must be a positive integer", s)
	}

	var window time.Duration
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "minute":
		window = time.Minute
	case "hour":
		window = time.Hour
	default:
		return Rate{}, fmt.Errorf("invalid rate %q: unit must be minute or hour", s)
	}

	return Rate{Cap: cap, Window: window}, nil
}

// Decision is the outcome of a limiter check. RetryAfter is set only on
// denial and equals the window length.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// CounterStore atomically increments the counter behind key, creating it with
// the given TTL when absent, and returns the post-increment value. A lost
// increment under concurrency would undercount, so implementations must be
// atomic.
type CounterStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Limiter applies per-scope fixed-window rates over a CounterStore.
//
// The store is a remote dependency: each check runs under the limiter's own
// deadline, and a store failure admits the request (fail open) with a
// warning. Gated-feature availability wins over strict enforcement here;
// identity and the SQL store keep the opposite, fail-closed policy.
type Limiter struct {
	store   CounterStore
	rates   map[string]Rate
	logger  logging.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewLimiter(store CounterStore, logger logging.Logger, timeout time.Duration) *Limiter {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Limiter{
		store:   store,
		rates:   make(map[string]Rate),
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

// SetScope registers (or replaces) the rate for a scope.
func (l *Limiter) SetScope(scope string, r Rate) {
	l.rates[scope] = r
}

// Allow increments the current-epoch counter for (scope, identity) and
// compares it to the scope's cap. Unknown scopes are admitted.
func (l *Limiter) Allow(ctx context.Context, scope, identity string) Decision {
	rate, ok := l.rates[scope]
	if !ok || l.store == nil {
		return Decision{Allowed: true}
	}

	windowSec := int64(rate.Window / time.Second)
	epoch := l.now().Unix() / windowSec
	key := fmt.Sprintf("rl:%s:%s:%d", scope, identity, epoch)

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	count, err := l.store.Incr(ctx, key, rate.Window)
	if err != nil {
		if l.logger != nil {
			l.logger.Warn(ctx, "rate limit store unavailable, failing open",
				"scope", scope, "error", err.Error())
		}
		return Decision{Allowed: true}
	}

	if count > int64(rate.Cap) {
		return Decision{Allowed: false, RetryAfter: rate.Window}
	}

	return Decision{Allowed: true}
}
