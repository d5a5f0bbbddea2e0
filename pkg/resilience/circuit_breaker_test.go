package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(clock *fakeClock) *CircuitBreaker {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          time.Second,
		SuccessThreshold: 2,
	})
	cb.now = clock.Now
	cb.lastStateChange = clock.Now()
	return cb
}

func TestCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")
	fail := func() error { return errBoom }
	ok := func() error { return nil }

	t.Run("trips after threshold and rejects", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		cb := newTestBreaker(clock)

		assert.ErrorIs(t, cb.Execute(ctx, fail, nil), errBoom)
		assert.Equal(t, StateClosed, cb.State())
		assert.ErrorIs(t, cb.Execute(ctx, fail, nil), errBoom)
		assert.Equal(t, StateOpen, cb.State())

		called := false
		err := cb.Execute(ctx, func() error { called = true; return nil }, nil)
		assert.ErrorIs(t, err, ErrCircuitOpen)
		assert.False(t, called)
	})

	t.Run("success resets failure counter", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		cb := newTestBreaker(clock)

		_ = cb.Execute(ctx, fail, nil)
		require.NoError(t, cb.Execute(ctx, ok, nil))
		_ = cb.Execute(ctx, fail, nil)
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("half-open closes after successes", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		cb := newTestBreaker(clock)
		_ = cb.Execute(ctx, fail, nil)
		_ = cb.Execute(ctx, fail, nil)
		require.Equal(t, StateOpen, cb.State())

		clock.Advance(2 * time.Second)
		require.NoError(t, cb.Execute(ctx, ok, nil))
		assert.Equal(t, StateHalfOpen, cb.State())
		require.NoError(t, cb.Execute(ctx, ok, nil))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("half-open failure reopens", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		cb := newTestBreaker(clock)
		_ = cb.Execute(ctx, fail, nil)
		_ = cb.Execute(ctx, fail, nil)

		clock.Advance(2 * time.Second)
		assert.ErrorIs(t, cb.Execute(ctx, fail, nil), errBoom)
		assert.Equal(t, StateOpen, cb.State())
		assert.ErrorIs(t, cb.Execute(ctx, ok, nil), ErrCircuitOpen)
	})

	t.Run("ignored errors are not failures", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		cb := newTestBreaker(clock)
		notFailure := func(error) bool { return false }

		for range 5 {
			assert.ErrorIs(t, cb.Execute(ctx, fail, notFailure), errBoom)
		}
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("zero config gets defaults", func(t *testing.T) {
		cb := NewCircuitBreaker("defaults", CircuitBreakerConfig{})
		assert.Equal(t, DefaultCircuitBreakerConfig(), cb.config)
	})
}
