package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		in      string
		want    Rate
		wantErr bool
	}{
		{"30/minute", Rate{Cap: 30, Window: time.Minute}, false},
		{"100/hour", Rate{Cap: 100, Window: time.Hour}, false},
		{" 5 / minute ", Rate{Cap: 5, Window: time.Minute}, false},
		{"30/second", Rate{}, true},
		{"abc/minute", Rate{}, true},
		{"0/minute", Rate{}, true},
		{"-2/hour", Rate{}, true},
		{"30", Rate{}, true},
		{"", Rate{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRate(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

type failingStore struct{}

func (failingStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 0, errors.New("store unreachable")
}

func newTestLimiter(store CounterStore) *Limiter {
	l := NewLimiter(store, nil, time.Second)
	l.SetScope(ScopeUser, Rate{Cap: 3, Window: time.Minute})
	return l
}

func TestAllow_DeniesBeyondCapWithinWindow(t *testing.T) {
	l := newTestLimiter(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		dec := l.Allow(ctx, ScopeUser, "u-1")
		require.True(t, dec.Allowed, "request %d within cap must pass", i+1)
	}

	dec := l.Allow(ctx, ScopeUser, "u-1")
	assert.False(t, dec.Allowed, "cap+1-th request must be denied")
	assert.Equal(t, time.Minute, dec.RetryAfter)
}

func TestAllow_NewEpochResetsCounter(t *testing.T) {
	l := newTestLimiter(NewMemoryStore())
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 30, 0, time.UTC)
	l.now = func() time.Time { return base }

	for i := 0; i < 4; i++ {
		l.Allow(ctx, ScopeUser, "u-1")
	}
	require.False(t, l.Allow(ctx, ScopeUser, "u-1").Allowed)

	// first request of the next window must pass
	l.now = func() time.Time { return base.Add(time.Minute) }
	assert.True(t, l.Allow(ctx, ScopeUser, "u-1").Allowed)
}

func TestAllow_ScopesAreIndependent(t *testing.T) {
	l := newTestLimiter(NewMemoryStore())
	l.SetScope(ScopeIP, Rate{Cap: 1, Window: time.Minute})
	ctx := context.Background()

	require.True(t, l.Allow(ctx, ScopeIP, "10.0.0.1").Allowed)
	assert.False(t, l.Allow(ctx, ScopeIP, "10.0.0.1").Allowed)

	// user scope counter untouched by IP denials
	assert.True(t, l.Allow(ctx, ScopeUser, "u-1").Allowed)
	// other identities under the same scope untouched as well
	assert.True(t, l.Allow(ctx, ScopeIP, "10.0.0.2").Allowed)
}

func TestAllow_FailsOpenOnStoreError(t *testing.T) {
	l := newTestLimiter(failingStore{})

	dec := l.Allow(context.Background(), ScopeUser, "u-1")
	assert.True(t, dec.Allowed, "store failure must admit the request")
}

func TestAllow_UnknownScopeAdmits(t *testing.T) {
	l := newTestLimiter(NewMemoryStore())

	dec := l.Allow(context.Background(), "unknown", "u-1")
	assert.True(t, dec.Allowed)
}

func TestMemoryStore_CountsPerKey(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	n1, err := s.Incr(ctx, "a", time.Minute)
	require.NoError(t, err)
	n2, err := s.Incr(ctx, "a", time.Minute)
	require.NoError(t, err)
	m1, err := s.Incr(ctx, "b", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, int64(1), n1)
	assert.Equal(t, int64(2), n2)
	assert.Equal(t, int64(1), m1)
}

func TestMemoryStore_ExpiredKeyRestarts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Incr(ctx, "a", -time.Second) // already expired
	require.NoError(t, err)

	n, err := s.Incr(ctx, "a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "expired counter must restart from zero")
}
