package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"
	"castdeck/pkg/export"
	"castdeck/pkg/utils"
	"castdeck/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statsPollInterval is how often external viewer counts are refreshed
// while a session is live.
const statsPollInterval = 30 * time.Second

// sessionService owns presets, the live session and its markers, and the
// viewer-stats poller. The poller is started when a session opens and is
// always cancelled when it ends or the service closes.
type sessionService struct {
	store        *Store
	composition  ports.CompositionService
	channels     ports.ChannelAPI
	exporter     *export.Service
	pollInterval time.Duration
	logger       *zap.SugaredLogger

	mu       sync.Mutex
	pollStop chan struct{}
	closed   bool
}

func NewSessionService(
	store *Store,
	composition ports.CompositionService,
	channels ports.ChannelAPI,
	exporter *export.Service,
	pollInterval time.Duration,
	logger *zap.SugaredLogger,
) ports.SessionService {
	if pollInterval <= 0 {
		pollInterval = statsPollInterval
	}
	return &sessionService{
		store:        store,
		composition:  composition,
		channels:     channels,
		exporter:     exporter,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

func (s *sessionService) AddPreset(ctx context.Context, preset *domain.StreamPreset) error {
	if preset == nil {
		return fmt.Errorf("preset is required")
	}
	if err := validation.ValidateNonEmptyString(preset.Name, "preset name"); err != nil {
		return err
	}
	if err := validation.ValidateResolution(preset.Resolution); err != nil {
		return err
	}
	if err := validation.ValidateFPS(preset.FPS); err != nil {
		return err
	}
	if err := validation.ValidateBitrate(preset.Bitrate); err != nil {
		return err
	}
	if preset.ID == "" {
		preset.ID = domain.PresetID(utils.GeneratePresetID())
	}
	for id, v := range preset.AudioLevels {
		preset.AudioLevels[id] = clampInt(v, 0, 100)
	}

	return s.store.Update(ctx, domain.ChangePresets, func(state *domain.State) error {
		for i, existing := range state.Presets {
			if existing.ID == preset.ID {
				state.Presets[i] = preset
				return nil
			}
		}
		state.Presets = append(state.Presets, preset)
		return nil
	})
}

func (s *sessionService) RemovePreset(ctx context.Context, id domain.PresetID) error {
	return s.store.Update(ctx, domain.ChangePresets, func(state *domain.State) error {
		for i, p := range state.Presets {
			if p.ID == id {
				state.Presets = append(state.Presets[:i], state.Presets[i+1:]...)
				if state.ActivePresetID == id {
					state.ActivePresetID = ""
				}
				return nil
			}
		}
		return domain.ErrPresetNotFound
	})
}

// ApplyPreset marks the preset active, applies its default audio levels
// to the tracks, pushes the preset's title/category to the enabled
// platforms and kicks off a transition to its starting scene. The
// metadata push is best-effort.
func (s *sessionService) ApplyPreset(ctx context.Context, id domain.PresetID) error {
	var applied domain.StreamPreset
	err := s.store.Update(ctx, domain.ChangePresets, func(state *domain.State) error {
		var preset *domain.StreamPreset
		for _, p := range state.Presets {
			if p.ID == id {
				preset = p
				break
			}
		}
		if preset == nil {
			return domain.ErrPresetNotFound
		}

		state.ActivePresetID = id
		for trackID, volume := range preset.AudioLevels {
			if t := state.FindTrack(trackID); t != nil {
				t.Volume = clampInt(volume, 0, 100)
			}
		}
		applied = *preset
		return nil
	})
	if err != nil {
		return err
	}

	if s.channels != nil && (applied.Title != "" || applied.Category != "") {
		for _, platform := range applied.Platforms {
			if err := s.channels.Update(ctx, platform, applied.Title, applied.Category); err != nil {
				s.logger.Warnw("channel metadata update failed", "preset", id, "platform", platform, "error", err)
			}
		}
	}

	if applied.StartSceneID != "" {
		if err := s.composition.SwitchSceneWithTransition(ctx, applied.StartSceneID); err != nil {
			s.logger.Warnw("preset start scene switch failed", "preset", id, "scene", applied.StartSceneID, "error", err)
		}
	}
	return nil
}

// StartSession opens a live session. Preconditions are checked before any
// mutation: no session may already be live and the platform list must be
// non-empty. An applied preset is optional and linked when present.
func (s *sessionService) StartSession(ctx context.Context, platforms []domain.PlatformKey) (*domain.StreamSession, error) {
	if len(platforms) == 0 {
		return nil, domain.ErrNoPlatforms
	}

	session := &domain.StreamSession{
		ID:        domain.SessionID(uuid.NewString()),
		Platforms: append([]domain.PlatformKey(nil), platforms...),
		StartedAt: time.Now(),
		Markers:   []domain.StreamMarker{},
	}

	err := s.store.Update(ctx, domain.ChangeSession, func(state *domain.State) error {
		if state.CurrentSession != nil && state.CurrentSession.Live() {
			return domain.ErrSessionActive
		}
		session.PresetID = state.ActivePresetID
		state.CurrentSession = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.startPolling(session.Platforms)
	s.logger.Infow("session started", "session", session.ID, "platforms", platforms)
	return session.Clone(), nil
}

// EndSession closes the live session, appends it to the capped history and
// stops the stats poller. A no-op when no session is live.
func (s *sessionService) EndSession(ctx context.Context) error {
	var ended bool
	err := s.store.Update(ctx, domain.ChangeSession, func(state *domain.State) error {
		sess := state.CurrentSession
		if sess == nil || !sess.Live() {
			return nil
		}
		now := time.Now()
		sess.EndedAt = &now
		sess.Duration = now.Sub(sess.StartedAt)

		// Most recent first, capped.
		state.PastSessions = append([]*domain.StreamSession{sess}, state.PastSessions...)
		if len(state.PastSessions) > domain.MaxSessionHistory {
			state.PastSessions = state.PastSessions[:domain.MaxSessionHistory]
		}
		state.CurrentSession = nil
		ended = true
		return nil
	})
	if err != nil {
		return err
	}
	if ended {
		s.stopPolling()
		s.logger.Infow("session ended")
	}
	return nil
}

func (s *sessionService) AddMarker(ctx context.Context, kind domain.MarkerKind, note string) (*domain.StreamMarker, error) {
	switch kind {
	case domain.MarkerEpic, domain.MarkerFail, domain.MarkerClip,
		domain.MarkerBug, domain.MarkerInfo, domain.MarkerCustom:
	default:
		return nil, fmt.Errorf("unknown marker kind: %s", kind)
	}

	var marker domain.StreamMarker
	err := s.store.Update(ctx, domain.ChangeSession, func(state *domain.State) error {
		sess := state.CurrentSession
		if sess == nil || !sess.Live() {
			return domain.ErrNoSession
		}
		now := time.Now()
		marker = domain.StreamMarker{
			ID:        uuid.NewString(),
			Kind:      kind,
			Note:      note,
			Offset:    now.Sub(sess.StartedAt),
			CreatedAt: now,
		}
		sess.Markers = append(sess.Markers, marker)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &marker, nil
}

func (s *sessionService) RemoveMarker(ctx context.Context, id string) error {
	return s.store.Update(ctx, domain.ChangeSession, func(state *domain.State) error {
		sess := state.CurrentSession
		if sess == nil {
			return domain.ErrNoSession
		}
		for i, m := range sess.Markers {
			if m.ID == id {
				sess.Markers = append(sess.Markers[:i], sess.Markers[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("marker not found: %s", id)
	})
}

// ExportSession writes a finished session's report and returns its name.
func (s *sessionService) ExportSession(ctx context.Context, id domain.SessionID) (string, error) {
	var target *domain.StreamSession
	s.store.View(func(state *domain.State) {
		for _, sess := range state.PastSessions {
			if sess.ID == id {
				target = sess.Clone()
				break
			}
		}
	})
	if target == nil {
		return "", fmt.Errorf("session not found: %s", id)
	}
	return s.exporter.Export(ctx, target)
}

// HandleHostEvent reacts to fire-and-forget notifications from the host
// process. Events never fail and never mutate beyond their own concern.
func (s *sessionService) HandleHostEvent(ctx context.Context, ev domain.HostEvent) {
	switch ev.Type {
	case domain.EventMirroringStarted:
		s.store.UpdateEphemeral(domain.ChangeDevices, func(state *domain.State) {
			for _, p := range state.Phones {
				if p.Serial == ev.DeviceSerial || p.Serial == "" {
					p.Mirroring = true
					p.Serial = ev.DeviceSerial
					if ev.DeviceName != "" {
						p.Name = ev.DeviceName
					}
					break
				}
			}
		})
	case domain.EventMirroringStopped:
		s.store.UpdateEphemeral(domain.ChangeDevices, func(state *domain.State) {
			for _, p := range state.Phones {
				p.Mirroring = false
				p.WindowHandle = ""
			}
		})
	case domain.EventMirroringError:
		s.logger.Warnw("mirroring error reported by host", "message", ev.Message)
		s.store.UpdateEphemeral(domain.ChangeDevices, func(state *domain.State) {
			for _, p := range state.Phones {
				p.Mirroring = false
			}
		})
	case domain.EventStreamDuration:
		s.store.UpdateEphemeral(domain.ChangeSession, func(state *domain.State) {
			if sess := state.CurrentSession; sess != nil && sess.Live() {
				sess.Duration = time.Duration(ev.Seconds) * time.Second
			}
		})
	case domain.EventStreamStats, domain.EventStreamState:
		s.logger.Debugw("stream status", "type", ev.Type, "status", ev.StreamStatus,
			"fps", ev.FPS, "bitrate", ev.Bitrate)
	case domain.EventStreamError:
		s.logger.Errorw("stream error reported by host", "message", ev.Message)
	case domain.EventDepsProgress:
		s.logger.Debugw("dependency download progress", "dep", ev.DepType, "percent", ev.Percent)
	default:
		s.logger.Debugw("ignoring unknown host event", "type", ev.Type)
	}
}

// Close stops the poller. Idempotent.
func (s *sessionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.pollStop != nil {
		close(s.pollStop)
		s.pollStop = nil
	}
}

func (s *sessionService) startPolling(platforms []domain.PlatformKey) {
	if s.channels == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pollStop != nil {
		return
	}
	s.pollStop = make(chan struct{})
	go s.pollLoop(s.pollStop, platforms)
}

func (s *sessionService) stopPolling() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pollStop != nil {
		close(s.pollStop)
		s.pollStop = nil
	}
}

// pollLoop refreshes external channel stats while the session is live.
// Poll errors are logged and retried on the next tick; they never touch
// the session.
func (s *sessionService) pollLoop(stop <-chan struct{}, platforms []domain.PlatformKey) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.pollOnce(platforms)
		}
	}
}

func (s *sessionService) pollOnce(platforms []domain.PlatformKey) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	viewers, messages, follows := 0, 0, 0
	polled := false
	for _, platform := range platforms {
		info, err := s.channels.Fetch(ctx, platform)
		if err != nil {
			s.logger.Warnw("channel stats poll failed", "platform", platform, "error", err)
			continue
		}
		viewers += info.Viewers
		messages += info.Messages
		follows += info.Follows
		polled = true
	}
	if !polled {
		return
	}

	s.store.UpdateEphemeral(domain.ChangeSession, func(state *domain.State) {
		sess := state.CurrentSession
		if sess == nil || !sess.Live() {
			return
		}
		if viewers > sess.Stats.PeakViewers {
			sess.Stats.PeakViewers = viewers
		}
		sess.Stats.MessageCount = messages
		sess.Stats.FollowCount = follows
	})
}
