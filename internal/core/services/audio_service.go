package services

import (
	"context"
	"math"
	"sync"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"

	"go.uber.org/zap"
)

const (
	// meterInterval approximates the host's per-frame callback cadence.
	meterInterval = 16 * time.Millisecond

	// dbFloor is the decibel level rendered as meter value 0; 0 dB maps
	// to 100 before amplification.
	dbFloor = -40.0

	// meterAmplification boosts the linear meter value for visual
	// sensitivity.
	meterAmplification = 1.5

	// epsilon keeps the log out of -Inf on silent buffers.
	epsilon = 1e-8

	// frequencyBins is the size of the per-sample frequency-domain read.
	frequencyBins = 1024
)

type meterSource struct {
	trackID domain.TrackID
	stream  ports.AudioStream
}

// audioService owns the mixer tracks and the level-meter pipeline. The
// sampling loop runs only while at least one source is registered: it
// starts with the first registration and stops with the last removal.
type audioService struct {
	store    *Store
	provider ports.AudioDeviceProvider
	metrics  MetricsRecorder
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	sources map[domain.TrackID]*meterSource
	stop    chan struct{}
	closed  bool
}

func NewAudioService(store *Store, provider ports.AudioDeviceProvider, metrics MetricsRecorder, logger *zap.SugaredLogger) ports.AudioService {
	return &audioService{
		store:    store,
		provider: provider,
		metrics:  metrics,
		logger:   logger,
		sources:  make(map[domain.TrackID]*meterSource),
	}
}

func (a *audioService) SetVolume(ctx context.Context, id domain.TrackID, volume int) error {
	return a.store.Update(ctx, domain.ChangeAudio, func(state *domain.State) error {
		t := state.FindTrack(id)
		if t == nil {
			return domain.ErrTrackNotFound
		}
		t.Volume = clampInt(volume, 0, 100)
		return nil
	})
}

func (a *audioService) SetMuted(ctx context.Context, id domain.TrackID, muted bool) error {
	return a.store.Update(ctx, domain.ChangeAudio, func(state *domain.State) error {
		t := state.FindTrack(id)
		if t == nil {
			return domain.ErrTrackNotFound
		}
		t.Muted = muted
		return nil
	})
}

func (a *audioService) SetTrackDevice(ctx context.Context, id domain.TrackID, deviceID, label string) error {
	return a.store.Update(ctx, domain.ChangeAudio, func(state *domain.State) error {
		t := state.FindTrack(id)
		if t == nil {
			return domain.ErrTrackNotFound
		}
		t.DeviceID = deviceID
		t.DeviceLabel = label
		return nil
	})
}

// StartMeter acquires the track's platform stream and registers it with
// the sampling loop. Acquisition failure leaves the source unregistered
// and reported inactive; it is never fatal to the rest of the mix.
func (a *audioService) StartMeter(ctx context.Context, id domain.TrackID) error {
	var trackType domain.TrackType
	var deviceID string
	var found bool
	a.store.View(func(state *domain.State) {
		if t := state.FindTrack(id); t != nil {
			trackType = t.Type
			deviceID = t.DeviceID
			found = true
		}
	})
	if !found {
		return domain.ErrTrackNotFound
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return domain.ErrSourceInactive
	}
	if _, exists := a.sources[id]; exists {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	stream, err := a.provider.Acquire(ctx, deviceID, trackType)
	if err != nil {
		a.logger.Warnw("audio stream acquisition failed",
			"track", id, "device", deviceID, "error", err)
		return domain.ErrSourceInactive
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		stream.Close()
		return domain.ErrSourceInactive
	}
	if _, exists := a.sources[id]; exists {
		a.mu.Unlock()
		stream.Close()
		return nil
	}
	a.sources[id] = &meterSource{trackID: id, stream: stream}
	if len(a.sources) == 1 {
		a.stop = make(chan struct{})
		go a.sampleLoop(a.stop)
	}
	a.mu.Unlock()
	return nil
}

// StopMeter releases the track's stream and writes a final level of 0.
// Stopping an unregistered track is a no-op.
func (a *audioService) StopMeter(ctx context.Context, id domain.TrackID) error {
	a.mu.Lock()
	src, exists := a.sources[id]
	if exists {
		delete(a.sources, id)
		if len(a.sources) == 0 {
			a.stopLoopLocked()
		}
	}
	a.mu.Unlock()

	if !exists {
		return nil
	}
	if err := src.stream.Close(); err != nil {
		a.logger.Debugw("audio stream close failed", "track", id, "error", err)
	}
	a.writeLevel(id, 0)
	return nil
}

func (a *audioService) MeterActive(id domain.TrackID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sources[id]
	return ok
}

func (a *audioService) Tracks() []*domain.AudioTrack {
	var tracks []*domain.AudioTrack
	a.store.View(func(state *domain.State) {
		for _, t := range state.AudioTracks {
			ct := *t
			tracks = append(tracks, &ct)
		}
	})
	return tracks
}

// Close releases every stream and stops the loop. Idempotent.
func (a *audioService) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	streams := make([]*meterSource, 0, len(a.sources))
	for _, src := range a.sources {
		streams = append(streams, src)
	}
	a.sources = make(map[domain.TrackID]*meterSource)
	a.stopLoopLocked()
	a.mu.Unlock()

	for _, src := range streams {
		src.stream.Close()
		a.writeLevel(src.trackID, 0)
	}
}

// stopLoopLocked signals the loop to exit. Caller holds a.mu; the loop
// never takes a.mu while exiting, so this cannot deadlock.
func (a *audioService) stopLoopLocked() {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
}

func (a *audioService) sampleLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(meterInterval)
	defer ticker.Stop()

	buf := make([]byte, frequencyBins)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.sampleOnce(buf)
		}
	}
}

func (a *audioService) sampleOnce(buf []byte) {
	a.mu.Lock()
	srcs := make([]*meterSource, 0, len(a.sources))
	for _, src := range a.sources {
		srcs = append(srcs, src)
	}
	a.mu.Unlock()

	for _, src := range srcs {
		n, err := src.stream.ReadFrequencyData(buf)
		if err != nil {
			a.logger.Warnw("audio sample read failed, deactivating source",
				"track", src.trackID, "error", err)
			a.StopMeter(context.Background(), src.trackID)
			continue
		}
		level := ComputeLevel(buf[:n])
		a.writeLevel(src.trackID, level)
		if a.metrics != nil {
			a.metrics.MeterLevel(string(src.trackID), level)
		}
	}
}

func (a *audioService) writeLevel(id domain.TrackID, level int) {
	a.store.UpdateEphemeral(domain.ChangeAudio, func(state *domain.State) {
		if t := state.FindTrack(id); t != nil {
			t.Level = level
		}
	})
}

// ComputeLevel converts one frequency-domain byte buffer into a 0..100
// meter value: normalize to [0,1], RMS, decibels with an epsilon guard,
// map [-40dB,0dB] linearly onto [0,100], amplify, clamp.
func ComputeLevel(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, b := range buf {
		n := float64(b) / 255.0
		sum += n * n
	}
	rms := math.Sqrt(sum / float64(len(buf)))
	db := 20 * math.Log10(rms+epsilon)
	level := (db - dbFloor) / -dbFloor * 100 * meterAmplification
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return int(level)
}
