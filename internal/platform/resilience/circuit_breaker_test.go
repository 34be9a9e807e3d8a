package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow(), "half-open probe should pass")
	assert.Equal(t, CircuitStateHalfOpen, b.State())

	b.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_Execute(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	upstream := errors.New("upstream 529")

	err := b.Execute(context.Background(), func(context.Context) error { return upstream })
	require.ErrorIs(t, err, upstream)
	assert.Equal(t, CircuitStateOpen, b.State())

	called := false
	err = b.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_ExecuteIgnoresCallerCancellation(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestNewFromConfig_Disabled(t *testing.T) {
	b := NewFromConfig(CircuitBreakerConfig{Enabled: false})
	assert.Nil(t, b)

	err := b.Execute(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, err)
}
