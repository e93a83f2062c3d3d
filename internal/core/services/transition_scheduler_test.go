package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"castdeck/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestSwitchActivatesAfterDuration(t *testing.T) {
	s := NewTransitionScheduler(testLogger())
	defer s.Stop()

	var activations int32
	var target atomic.Value
	activate := func(ctx context.Context, id domain.SceneID) error {
		atomic.AddInt32(&activations, 1)
		target.Store(id)
		return nil
	}

	err := s.Switch(context.Background(), "scene-live", "scene-pause", 100*time.Millisecond, activate)
	assert.NoError(t, err)
	assert.True(t, s.Transitioning())

	// Nothing fires before the duration elapses
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&activations))
	assert.True(t, s.Transitioning())

	// Activation lands after duration, idle after the settle delay
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&activations) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.SceneID("scene-pause"), target.Load())

	assert.Eventually(t, func() bool {
		return !s.Transitioning()
	}, time.Second, 5*time.Millisecond)
}

func TestSwitchSameTargetIsNoOp(t *testing.T) {
	s := NewTransitionScheduler(testLogger())
	defer s.Stop()

	var activations int32
	activate := func(ctx context.Context, id domain.SceneID) error {
		atomic.AddInt32(&activations, 1)
		return nil
	}

	err := s.Switch(context.Background(), "scene-live", "scene-live", 100*time.Millisecond, activate)
	assert.NoError(t, err)
	assert.False(t, s.Transitioning())

	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&activations))
}

func TestRapidDoubleSwitchActivatesOnce(t *testing.T) {
	s := NewTransitionScheduler(testLogger())
	defer s.Stop()

	var activations int32
	activate := func(ctx context.Context, id domain.SceneID) error {
		atomic.AddInt32(&activations, 1)
		return nil
	}

	// Both calls name the same target before the duration elapses
	assert.NoError(t, s.Switch(context.Background(), "scene-live", "scene-pause", 100*time.Millisecond, activate))
	assert.NoError(t, s.Switch(context.Background(), "scene-live", "scene-pause", 100*time.Millisecond, activate))

	assert.Eventually(t, func() bool {
		return !s.Transitioning()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&activations))
}

func TestSwitchDroppedWhileTransitioning(t *testing.T) {
	s := NewTransitionScheduler(testLogger())
	defer s.Stop()

	var targets []domain.SceneID
	done := make(chan struct{})
	activate := func(ctx context.Context, id domain.SceneID) error {
		targets = append(targets, id)
		close(done)
		return nil
	}

	assert.NoError(t, s.Switch(context.Background(), "scene-live", "scene-pause", 100*time.Millisecond, activate))
	// A different target while transitioning is dropped, not queued
	assert.NoError(t, s.Switch(context.Background(), "scene-live", "scene-ending", 100*time.Millisecond, activate))

	<-done
	assert.Eventually(t, func() bool {
		return !s.Transitioning()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []domain.SceneID{"scene-pause"}, targets)
}

func TestStopCancelsPendingActivation(t *testing.T) {
	s := NewTransitionScheduler(testLogger())

	var activations int32
	activate := func(ctx context.Context, id domain.SceneID) error {
		atomic.AddInt32(&activations, 1)
		return nil
	}

	assert.NoError(t, s.Switch(context.Background(), "scene-live", "scene-pause", 200*time.Millisecond, activate))
	s.Stop()

	assert.False(t, s.Transitioning())
	time.Sleep(350 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&activations))

	// Switch after Stop is a no-op
	assert.NoError(t, s.Switch(context.Background(), "scene-live", "scene-pause", 50*time.Millisecond, activate))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&activations))

	// Stop is idempotent
	s.Stop()
}

func TestSwitchClampsDuration(t *testing.T) {
	s := NewTransitionScheduler(testLogger())
	defer s.Stop()

	var activations int32
	activate := func(ctx context.Context, id domain.SceneID) error {
		atomic.AddInt32(&activations, 1)
		return nil
	}

	// A zero duration is clamped up to the minimum, not fired immediately
	assert.NoError(t, s.Switch(context.Background(), "scene-live", "scene-pause", 0, activate))
	assert.Equal(t, int32(0), atomic.LoadInt32(&activations))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&activations) == 1
	}, time.Second, 5*time.Millisecond)
}
