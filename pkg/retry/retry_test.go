package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
	}
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	counter := 0
	err := NewRetrier(fastConfig(3)).Do(context.Background(), func(context.Context) error {
		counter++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, counter)
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	counter := 0
	err := NewRetrier(fastConfig(3)).Do(context.Background(), func(context.Context) error {
		counter++
		if counter < 3 {
			return errors.New("temporary error")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, counter)
}

func TestRetry_MaxRetriesExceeded(t *testing.T) {
	expectedErr := errors.New("permanent error")
	counter := 0
	err := NewRetrier(fastConfig(2)).Do(context.Background(), func(context.Context) error {
		counter++
		return expectedErr
	})
	require.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 3, counter) // initial try + 2 retries
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	authErr := errors.New("password authentication failed")
	counter := 0
	err := NewRetrier(fastConfig(5)).Do(context.Background(), func(context.Context) error {
		counter++
		return Permanent(authErr)
	})
	assert.Equal(t, authErr, err)
	assert.Equal(t, 1, counter)
	assert.NoError(t, Permanent(nil))
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := NewDefaultRetrier().Do(ctx, func(context.Context) error {
		cancel()
		return errors.New("operation error after cancel")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_BackoffIsCapped(t *testing.T) {
	cfg := &Config{
		MaxRetries:    3,
		BackoffFactor: 10.0,
		InitialDelay:  10 * time.Millisecond,
		MaxDelay:      20 * time.Millisecond,
	}

	start := time.Now()
	_ = NewRetrier(cfg).Do(context.Background(), func(context.Context) error { return errors.New("error") })
	elapsed := time.Since(start)

	// 10ms, then capped at 20ms twice
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestConfig_Delay(t *testing.T) {
	cfg := &Config{BackoffFactor: 3, InitialDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, cfg.delay(0))
	assert.Equal(t, 3*time.Second, cfg.delay(1))
	assert.Equal(t, 5*time.Second, cfg.delay(2))

	cfg.Jitter = time.Second
	d := cfg.delay(0)
	assert.GreaterOrEqual(t, d, time.Second)
	assert.Less(t, d, 2*time.Second)
}
