package services

import (
	"context"
	"sync"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"

	"go.uber.org/zap"
)

// settleDelay is the fixed pause after activation before the scheduler
// returns to idle, letting the panel finish its paint.
const settleDelay = 50 * time.Millisecond

// transitionScheduler is a two-state machine: idle and transitioning.
// While transitioning, further switch requests are dropped and mutations
// of the active scene are rejected by the composition service, which
// consults Transitioning. Every scheduled timer is owned here and
// cancelled on Stop.
type transitionScheduler struct {
	mu            sync.Mutex
	transitioning bool
	stopped       bool
	timer         *time.Timer
	settleTimer   *time.Timer
	logger        *zap.SugaredLogger
}

func NewTransitionScheduler(logger *zap.SugaredLogger) ports.TransitionScheduler {
	return &transitionScheduler{logger: logger}
}

func (t *transitionScheduler) Transitioning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transitioning
}

// Switch begins a transition to target. A switch already in flight or a
// target equal to the current scene makes this a no-op; the request is
// dropped, not queued.
func (t *transitionScheduler) Switch(ctx context.Context, current, target domain.SceneID, duration time.Duration, activate ports.SceneActivator) error {
	t.mu.Lock()
	if t.stopped || t.transitioning || current == target {
		t.mu.Unlock()
		return nil
	}
	t.transitioning = true
	duration = domain.ClampDuration(duration)

	t.timer = time.AfterFunc(duration, func() {
		if err := activate(context.WithoutCancel(ctx), target); err != nil {
			t.logger.Errorw("scene activation failed", "target", target, "error", err)
		}
		t.mu.Lock()
		if t.stopped {
			t.transitioning = false
			t.mu.Unlock()
			return
		}
		t.settleTimer = time.AfterFunc(settleDelay, func() {
			t.mu.Lock()
			t.transitioning = false
			t.mu.Unlock()
		})
		t.mu.Unlock()
	})
	t.mu.Unlock()

	t.logger.Debugw("transition started", "target", target, "duration", duration)
	return nil
}

// Stop cancels any pending timers. Idempotent.
func (t *transitionScheduler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.settleTimer != nil {
		t.settleTimer.Stop()
	}
	t.transitioning = false
}
