package services

import (
	"context"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/geometry"
	"castdeck/internal/core/ports"

	"go.uber.org/zap"
)

// Reconciler validates and merges previously persisted state into a
// freshly initialized state graph. Malformed entries are dropped
// silently; a collection that validates down to nothing falls back to
// the built-in default rather than leaving the panel with no scenes or
// tracks. Ephemeral fields always come up at their defaults.
type Reconciler struct {
	repo    ports.StateRepository
	metrics MetricsRecorder
	logger  *zap.SugaredLogger
}

func NewReconciler(repo ports.StateRepository, metrics MetricsRecorder, logger *zap.SugaredLogger) *Reconciler {
	return &Reconciler{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// LoadState reads the persisted blob once and reconciles it over the
// defaults. A missing blob or a read error keeps the defaults untouched;
// nothing on this path is fatal.
func (r *Reconciler) LoadState(ctx context.Context) *domain.State {
	defaults := domain.DefaultState()
	if r.repo == nil {
		return defaults
	}

	persisted, err := r.repo.Load(ctx)
	if err != nil {
		r.logger.Warnw("persisted state load failed, using defaults", "error", err)
		return defaults
	}
	if persisted == nil {
		return defaults
	}
	return r.Reconcile(defaults, persisted)
}

// Reconcile merges a persisted blob into defaults, field by field. Each
// validated collection replaces the corresponding default; fields absent
// from the blob keep their defaults.
func (r *Reconciler) Reconcile(defaults *domain.State, p *domain.PersistedState) *domain.State {
	state := defaults

	if scenes := r.validScenes(p.Scenes); len(scenes) > 0 {
		state.Scenes = scenes
		state.ActiveSceneID = r.pickActiveScene(scenes, p.ActiveSceneID)
		for _, sc := range state.Scenes {
			sc.IsActive = sc.ID == state.ActiveSceneID
		}
	}

	if webcams := r.validWebcams(p.Webcams); len(webcams) > 0 {
		state.Webcams = webcams
	}
	if phones := r.validPhones(p.Phones); len(phones) > 0 {
		state.Phones = phones
	}
	// The legacy single-instance views are always recomputed from the
	// validated collections, never taken verbatim from the stale
	// persisted legacy fields.
	state.SyncLegacyViews()

	if devices := r.validDevices(p.SavedDevices); len(devices) > 0 {
		state.SavedDevices = devices
	}

	if overlays := r.validOverlays(p.Overlays); len(overlays) > 0 {
		state.Overlays = overlays
	}

	if p.Transition != nil {
		if cfg, ok := r.validTransition(*p.Transition); ok {
			state.Transition = cfg
		}
	}

	if presets := r.validPresets(p.Presets); len(presets) > 0 {
		state.Presets = presets
		if p.ActivePresetID != "" {
			for _, preset := range presets {
				if preset.ID == p.ActivePresetID {
					state.ActivePresetID = p.ActivePresetID
					break
				}
			}
		}
	}

	if sessions := r.validSessions(p.PastSessions); len(sessions) > 0 {
		if len(sessions) > domain.MaxSessionHistory {
			sessions = sessions[:domain.MaxSessionHistory]
		}
		state.PastSessions = sessions
	}

	if tracks := r.validTracks(p.AudioTracks); len(tracks) > 0 {
		state.AudioTracks = tracks
	}

	return state
}

func (r *Reconciler) drop(collection string, reason string) {
	r.logger.Debugw("dropping malformed persisted entry", "collection", collection, "reason", reason)
	if r.metrics != nil {
		r.metrics.ReconcileDropped(collection)
	}
}

func (r *Reconciler) pickActiveScene(scenes []*domain.Scene, persisted domain.SceneID) domain.SceneID {
	for _, sc := range scenes {
		if sc.ID == persisted {
			return persisted
		}
	}
	return scenes[0].ID
}

func (r *Reconciler) validScenes(in []*domain.Scene) []*domain.Scene {
	var out []*domain.Scene
	for _, sc := range in {
		if sc == nil || sc.ID == "" {
			r.drop("scenes", "missing id")
			continue
		}
		if sc.Name == "" {
			r.drop("scenes", "missing name")
			continue
		}
		out = append(out, sc)
	}
	return out
}

func (r *Reconciler) validWebcams(in []*domain.WebcamSource) []*domain.WebcamSource {
	var out []*domain.WebcamSource
	for _, w := range in {
		if w == nil || w.ID == "" {
			r.drop("webcams", "missing id")
			continue
		}
		sanitizePlaceable(&w.Placeable, geometry.KindWebcam)
		out = append(out, w)
	}
	return out
}

func (r *Reconciler) validPhones(in []*domain.PhoneSource) []*domain.PhoneSource {
	var out []*domain.PhoneSource
	for _, p := range in {
		if p == nil || p.ID == "" {
			r.drop("phones", "missing id")
			continue
		}
		sanitizePlaceable(&p.Placeable, geometry.KindPhone)
		// Mirroring status and window handles are session-scoped.
		p.Mirroring = false
		p.WindowHandle = ""
		out = append(out, p)
	}
	return out
}

func (r *Reconciler) validDevices(in []*domain.SavedDevice) []*domain.SavedDevice {
	var out []*domain.SavedDevice
	seen := make(map[string]bool)
	for _, d := range in {
		if d == nil || d.Serial == "" {
			r.drop("savedDevices", "missing serial")
			continue
		}
		if seen[d.Serial] {
			r.drop("savedDevices", "duplicate serial")
			continue
		}
		seen[d.Serial] = true
		out = append(out, d)
	}
	return out
}

func (r *Reconciler) validOverlays(in []*domain.Overlay) []*domain.Overlay {
	var out []*domain.Overlay
	for _, o := range in {
		if o == nil || o.ID == "" {
			r.drop("overlays", "missing id")
			continue
		}
		if o.Payload() == nil {
			r.drop("overlays", "payload does not match kind")
			continue
		}
		sanitizePlaceable(&o.Placeable, geometry.KindOverlay)
		o.Opacity = clampInt(o.Opacity, 0, 100)
		out = append(out, o)
	}
	return out
}

func (r *Reconciler) validTransition(cfg domain.TransitionConfig) (domain.TransitionConfig, bool) {
	switch cfg.Type {
	case domain.TransitionCut, domain.TransitionFade,
		domain.TransitionSlideLeft, domain.TransitionSlideRight,
		domain.TransitionSlideUp, domain.TransitionSlideDown,
		domain.TransitionZoom, domain.TransitionWipe, domain.TransitionMove:
	default:
		r.drop("transitionConfig", "unknown type")
		return cfg, false
	}
	cfg.Duration = domain.ClampDuration(cfg.Duration)
	if cfg.Easing == "" {
		cfg.Easing = "ease-in-out"
	}
	return cfg, true
}

func (r *Reconciler) validPresets(in []*domain.StreamPreset) []*domain.StreamPreset {
	var out []*domain.StreamPreset
	for _, p := range in {
		if p == nil || p.ID == "" {
			r.drop("presets", "missing id")
			continue
		}
		if p.Name == "" {
			r.drop("presets", "missing name")
			continue
		}
		for id, v := range p.AudioLevels {
			p.AudioLevels[id] = clampInt(v, 0, 100)
		}
		out = append(out, p)
	}
	return out
}

func (r *Reconciler) validSessions(in []*domain.StreamSession) []*domain.StreamSession {
	var out []*domain.StreamSession
	for _, s := range in {
		if s == nil || s.ID == "" {
			r.drop("pastSessions", "missing id")
			continue
		}
		// History holds finished sessions only.
		if s.EndedAt == nil {
			r.drop("pastSessions", "session never ended")
			continue
		}
		out = append(out, s)
	}
	return out
}

func (r *Reconciler) validTracks(in []*domain.AudioTrack) []*domain.AudioTrack {
	var out []*domain.AudioTrack
	for _, t := range in {
		if t == nil || t.ID == "" {
			r.drop("audioTracks", "missing id")
			continue
		}
		switch t.Type {
		case domain.TrackMic, domain.TrackDesktop, domain.TrackPhone,
			domain.TrackMusic, domain.TrackAlert:
		default:
			r.drop("audioTracks", "unknown type")
			continue
		}
		t.Volume = clampInt(t.Volume, 0, 100)
		// Live meter values never survive a restart.
		t.Level = 0
		out = append(out, t)
	}
	return out
}

// sanitizePlaceable repairs a persisted placeable so the geometry
// invariants hold on load: custom overrides exist only under the custom
// modes, and stray coordinates are clamped to the element's ranges.
func sanitizePlaceable(p *domain.Placeable, kind geometry.ElementKind) {
	switch p.Position {
	case domain.PositionTopLeft, domain.PositionTopRight,
		domain.PositionBottomLeft, domain.PositionBottomRight,
		domain.PositionCenter:
		p.CustomPosition = nil
	case domain.PositionCustom:
		if p.CustomPosition == nil {
			p.Position = domain.PositionBottomRight
		} else {
			pt := geometry.ClampPoint(*p.CustomPosition)
			p.CustomPosition = &pt
		}
	default:
		p.Position = domain.PositionBottomRight
		p.CustomPosition = nil
	}

	switch p.Size {
	case domain.SizeSmall, domain.SizeMedium, domain.SizeLarge, domain.SizeFull:
		p.CustomSize = nil
	case domain.SizeCustom:
		if p.CustomSize == nil {
			p.Size = domain.SizeMedium
		} else {
			d := geometry.ClampSize(*p.CustomSize, kind)
			p.CustomSize = &d
		}
	default:
		p.Size = domain.SizeMedium
		p.CustomSize = nil
	}
}
