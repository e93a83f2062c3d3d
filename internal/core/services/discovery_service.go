package services

import (
	"context"
	"fmt"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"
	"castdeck/pkg/retry"

	"go.uber.org/zap"
)

// discoveryService reconnects saved mobile devices over WiFi. Attempts
// are bounded with a fixed backoff; a device that stays unreachable is a
// source-scoped failure, never fatal.
type discoveryService struct {
	store    *Store
	mirror   ports.MirrorProvider
	attempts int
	backoff  time.Duration
	logger   *zap.SugaredLogger
}

func NewDiscoveryService(store *Store, mirror ports.MirrorProvider, attempts int, backoff time.Duration, logger *zap.SugaredLogger) ports.DiscoveryService {
	if attempts <= 0 {
		attempts = 3
	}
	if backoff <= 0 {
		backoff = 2 * time.Second
	}
	return &discoveryService{
		store:    store,
		mirror:   mirror,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
	}
}

// Reconnect looks up the device's remembered WiFi address and asks the
// mirroring helper to start a session against it, carrying the phone
// element's current placement as defaults.
func (d *discoveryService) Reconnect(ctx context.Context, serial string) error {
	var dev *domain.SavedDevice
	var placement ports.MirrorPlacement
	d.store.View(func(state *domain.State) {
		for _, sd := range state.SavedDevices {
			if sd.Serial == serial {
				cd := *sd
				dev = &cd
				break
			}
		}
		if state.Phone != nil {
			placement = ports.MirrorPlacement{
				Position: state.Phone.Position,
				Size:     state.Phone.Size,
			}
		}
	})
	if dev == nil {
		return domain.ErrDeviceNotFound
	}
	if dev.WiFiIP == "" {
		return fmt.Errorf("device %s has no remembered WiFi address", serial)
	}

	cfg := retry.Config{
		Enabled:      true,
		MaxAttempts:  d.attempts,
		InitialDelay: d.backoff,
		MaxDelay:     d.backoff,
		Multiplier:   1.0,
	}
	err := retry.Retry(ctx, cfg, func() error {
		return d.mirror.StartWiFi(ctx, dev.WiFiIP, placement)
	})
	if err != nil {
		d.logger.Warnw("device reconnect failed", "serial", serial, "address", dev.WiFiIP, "error", err)
		return fmt.Errorf("reconnect %s: %w", serial, err)
	}

	d.logger.Infow("device reconnected", "serial", serial, "address", dev.WiFiIP)
	return nil
}
