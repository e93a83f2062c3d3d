package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), DefaultConfig(), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	cfg := Config{
		Enabled:      true,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}

	calls := 0
	err := Retry(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	cfg := Config{
		Enabled:      true,
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}

	sentinel := errors.New("device unreachable")
	calls := 0
	err := Retry(context.Background(), cfg, func() error {
		calls++
		return sentinel
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestRetryDisabledRunsOnce(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), Config{Enabled: false}, func() error {
		calls++
		return errors.New("boom")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, DefaultConfig(), func() error {
		return errors.New("should not matter")
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryWithResult(t *testing.T) {
	cfg := Config{
		Enabled:      true,
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}

	calls := 0
	got, err := RetryWithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "192.168.1.10", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "192.168.1.10", got)
	assert.Equal(t, 2, calls)
}

func TestDelayForCapsAtMaxDelay(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     250 * time.Millisecond,
		Multiplier:   2.0,
	}

	assert.Equal(t, 100*time.Millisecond, delayFor(cfg, 0))
	assert.Equal(t, 200*time.Millisecond, delayFor(cfg, 1))
	assert.Equal(t, 250*time.Millisecond, delayFor(cfg, 2))
}
