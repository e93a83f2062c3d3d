package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/geometry"
	"castdeck/internal/core/ports"
	"castdeck/pkg/utils"
	"castdeck/pkg/validation"

	"go.uber.org/zap"
)

// MetricsRecorder receives engine-level metric updates. Implemented by the
// monitoring layer; a nil recorder disables recording.
type MetricsRecorder interface {
	SceneSwitched()
	ReconcileDropped(collection string)
	ActiveCounts(scenes, overlays, tracks int)
	MeterLevel(trackID string, level int)
}

type compositionService struct {
	store     *Store
	scheduler ports.TransitionScheduler
	metrics   MetricsRecorder
	logger    *zap.SugaredLogger
}

func NewCompositionService(store *Store, scheduler ports.TransitionScheduler, metrics MetricsRecorder, logger *zap.SugaredLogger) ports.CompositionService {
	return &compositionService{
		store:     store,
		scheduler: scheduler,
		metrics:   metrics,
		logger:    logger,
	}
}

// guardActiveScene rejects mutations of the active scene while a
// transition is running, preventing torn visual states mid-switch.
func (s *compositionService) guardActiveScene(state *domain.State, id domain.SceneID) error {
	if s.scheduler != nil && s.scheduler.Transitioning() && id == state.ActiveSceneID {
		return domain.ErrTransitionInProgress
	}
	return nil
}

func (s *compositionService) AddScene(ctx context.Context, name string) (*domain.Scene, error) {
	if err := validation.ValidateSceneName(name); err != nil {
		return nil, err
	}

	scene := &domain.Scene{
		ID:        domain.SceneID(utils.GenerateSceneID()),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}

	err := s.store.Update(ctx, domain.ChangeScenes, func(state *domain.State) error {
		state.Scenes = append(state.Scenes, scene)
		s.recordCounts(state)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scene.Clone(), nil
}

func (s *compositionService) RemoveScene(ctx context.Context, id domain.SceneID) error {
	return s.store.Update(ctx, domain.ChangeScenes, func(state *domain.State) error {
		if err := s.guardActiveScene(state, id); err != nil {
			return err
		}
		idx := -1
		for i, sc := range state.Scenes {
			if sc.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrSceneNotFound
		}
		if len(state.Scenes) == 1 {
			return domain.ErrLastScene
		}

		state.Scenes = append(state.Scenes[:idx], state.Scenes[idx+1:]...)

		// Removing the active scene falls back to the first remaining one.
		if state.ActiveSceneID == id {
			state.ActiveSceneID = state.Scenes[0].ID
			for _, sc := range state.Scenes {
				sc.IsActive = sc.ID == state.ActiveSceneID
			}
		}
		s.recordCounts(state)
		return nil
	})
}

func (s *compositionService) RenameScene(ctx context.Context, id domain.SceneID, name string) error {
	if err := validation.ValidateSceneName(name); err != nil {
		return err
	}
	return s.store.Update(ctx, domain.ChangeScenes, func(state *domain.State) error {
		scene := state.FindScene(id)
		if scene == nil {
			return domain.ErrSceneNotFound
		}
		scene.Name = strings.TrimSpace(name)
		return nil
	})
}

// SaveCurrentToScene snapshots the current placement of every placeable
// into the scene's config. Switching scenes never saves implicitly; this
// is the only write path into a scene config.
func (s *compositionService) SaveCurrentToScene(ctx context.Context, id domain.SceneID) error {
	return s.store.Update(ctx, domain.ChangeScenes, func(state *domain.State) error {
		if err := s.guardActiveScene(state, id); err != nil {
			return err
		}
		scene := state.FindScene(id)
		if scene == nil {
			return domain.ErrSceneNotFound
		}

		cfg := domain.SceneConfig{}
		if state.Webcam != nil {
			p := state.Webcam.Placeable.Clone()
			cfg.Webcam = &p
		}
		if state.Phone != nil {
			p := state.Phone.Placeable.Clone()
			cfg.Phone = &p
		}
		if len(state.Overlays) > 0 {
			cfg.Overlays = make(map[domain.OverlayID]domain.Placeable, len(state.Overlays))
			for _, o := range state.Overlays {
				cfg.Overlays[o.ID] = o.Placeable.Clone()
			}
		}
		scene.Config = cfg
		return nil
	})
}

// ActivateScene performs a direct (cut) activation. Rejected while a
// transition is running.
func (s *compositionService) ActivateScene(ctx context.Context, id domain.SceneID) error {
	if s.scheduler != nil && s.scheduler.Transitioning() {
		return domain.ErrTransitionInProgress
	}
	return s.applyScene(ctx, id)
}

// applyScene is the activation the scheduler invokes once a transition's
// duration elapses; it bypasses the transitioning gate.
func (s *compositionService) applyScene(ctx context.Context, id domain.SceneID) error {
	err := s.store.Update(ctx, domain.ChangeScenes, func(state *domain.State) error {
		scene := state.FindScene(id)
		if scene == nil {
			return domain.ErrSceneNotFound
		}

		state.ActiveSceneID = id
		for _, sc := range state.Scenes {
			sc.IsActive = sc.ID == id
		}

		// Re-apply the scene's saved layout. Identity and device fields
		// are preserved: a scene stores placement, not bindings.
		if scene.Config.Webcam != nil && state.Webcam != nil {
			state.Webcam.Placeable = scene.Config.Webcam.Clone()
		}
		if scene.Config.Phone != nil && state.Phone != nil {
			state.Phone.Placeable = scene.Config.Phone.Clone()
		}
		for id, p := range scene.Config.Overlays {
			if o := state.FindOverlay(id); o != nil {
				o.Placeable = p.Clone()
			}
		}
		return nil
	})
	if err == nil && s.metrics != nil {
		s.metrics.SceneSwitched()
	}
	return err
}

func (s *compositionService) SwitchSceneWithTransition(ctx context.Context, id domain.SceneID) error {
	var current domain.SceneID
	var duration time.Duration
	var exists bool
	s.store.View(func(state *domain.State) {
		current = state.ActiveSceneID
		duration = state.Transition.Duration
		exists = state.FindScene(id) != nil
	})
	if !exists {
		return domain.ErrSceneNotFound
	}
	return s.scheduler.Switch(ctx, current, id, duration, s.applyScene)
}

func (s *compositionService) SetCaptureSource(ctx context.Context, src *domain.CaptureSource) error {
	if src == nil || src.ID == "" {
		return fmt.Errorf("capture source requires an id")
	}
	if src.Type != domain.CaptureScreen && src.Type != domain.CaptureWindow {
		return fmt.Errorf("unknown capture type: %s", src.Type)
	}
	return s.store.Update(ctx, domain.ChangeCapture, func(state *domain.State) error {
		// Replacing discards the previous reference; there is no pooling.
		state.Capture = src
		return nil
	})
}

func (s *compositionService) ClearCaptureSource(ctx context.Context) error {
	return s.store.Update(ctx, domain.ChangeCapture, func(state *domain.State) error {
		state.Capture = nil
		return nil
	})
}

// applyPlacementUpdate mutates p per the update, clearing custom fields
// when the mode moves away from the custom variant.
func applyPlacementUpdate(p *domain.Placeable, update ports.PlacementUpdate, kind geometry.ElementKind) {
	if update.Enabled != nil {
		p.Enabled = *update.Enabled
	}
	if update.Position != nil {
		p.Position = *update.Position
		if p.Position != domain.PositionCustom {
			p.CustomPosition = nil
		}
	}
	if update.CustomPosition != nil {
		pt := geometry.ClampPoint(*update.CustomPosition)
		p.Position = domain.PositionCustom
		p.CustomPosition = &pt
	}
	if update.Size != nil {
		p.Size = *update.Size
		if p.Size != domain.SizeCustom {
			p.CustomSize = nil
		}
	}
	if update.CustomSize != nil {
		d := geometry.ClampSize(*update.CustomSize, kind)
		p.Size = domain.SizeCustom
		p.CustomSize = &d
	}
}

func findWebcam(state *domain.State, id domain.SourceID) *domain.WebcamSource {
	if id == "" && len(state.Webcams) > 0 {
		return state.Webcams[0]
	}
	for _, w := range state.Webcams {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func findPhone(state *domain.State, id domain.SourceID) *domain.PhoneSource {
	if id == "" && len(state.Phones) > 0 {
		return state.Phones[0]
	}
	for _, p := range state.Phones {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *compositionService) UpdateWebcam(ctx context.Context, id domain.SourceID, update ports.PlacementUpdate) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		w := findWebcam(state, id)
		if w == nil {
			return domain.ErrWebcamNotFound
		}
		applyPlacementUpdate(&w.Placeable, update, geometry.KindWebcam)
		state.SyncLegacyViews()
		return nil
	})
}

func (s *compositionService) ToggleWebcam(ctx context.Context, id domain.SourceID) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		w := findWebcam(state, id)
		if w == nil {
			return domain.ErrWebcamNotFound
		}
		w.Enabled = !w.Enabled
		state.SyncLegacyViews()
		return nil
	})
}

func (s *compositionService) MoveWebcam(ctx context.Context, id domain.SourceID, to domain.Point) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		w := findWebcam(state, id)
		if w == nil {
			return domain.ErrWebcamNotFound
		}
		pt := geometry.ClampPoint(to)
		w.Position = domain.PositionCustom
		w.CustomPosition = &pt
		state.SyncLegacyViews()
		return nil
	})
}

func (s *compositionService) ResizeWebcam(ctx context.Context, id domain.SourceID, dims domain.Dimensions) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		w := findWebcam(state, id)
		if w == nil {
			return domain.ErrWebcamNotFound
		}
		d := geometry.ClampSize(dims, geometry.KindWebcam)
		w.Size = domain.SizeCustom
		w.CustomSize = &d
		state.SyncLegacyViews()
		return nil
	})
}

func (s *compositionService) UpdatePhone(ctx context.Context, id domain.SourceID, update ports.PlacementUpdate) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		p := findPhone(state, id)
		if p == nil {
			return domain.ErrPhoneNotFound
		}
		applyPlacementUpdate(&p.Placeable, update, geometry.KindPhone)
		state.SyncLegacyViews()
		return nil
	})
}

func (s *compositionService) TogglePhone(ctx context.Context, id domain.SourceID) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		p := findPhone(state, id)
		if p == nil {
			return domain.ErrPhoneNotFound
		}
		p.Enabled = !p.Enabled
		state.SyncLegacyViews()
		return nil
	})
}

func (s *compositionService) MovePhone(ctx context.Context, id domain.SourceID, to domain.Point) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		p := findPhone(state, id)
		if p == nil {
			return domain.ErrPhoneNotFound
		}
		pt := geometry.ClampPoint(to)
		p.Position = domain.PositionCustom
		p.CustomPosition = &pt
		state.SyncLegacyViews()
		return nil
	})
}

func (s *compositionService) ResizePhone(ctx context.Context, id domain.SourceID, dims domain.Dimensions) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		p := findPhone(state, id)
		if p == nil {
			return domain.ErrPhoneNotFound
		}
		d := geometry.ClampSize(dims, geometry.KindPhone)
		p.Size = domain.SizeCustom
		p.CustomSize = &d
		state.SyncLegacyViews()
		return nil
	})
}

// allZIndices collects the z-index of every placeable currently on canvas.
func allZIndices(state *domain.State) []int {
	zs := make([]int, 0, len(state.Overlays)+len(state.Webcams)+len(state.Phones))
	for _, o := range state.Overlays {
		zs = append(zs, o.ZIndex)
	}
	for _, w := range state.Webcams {
		zs = append(zs, w.ZIndex)
	}
	for _, p := range state.Phones {
		zs = append(zs, p.ZIndex)
	}
	return zs
}

func (s *compositionService) BringOverlayToFront(ctx context.Context, id domain.OverlayID) error {
	return s.store.Update(ctx, domain.ChangeOverlays, func(state *domain.State) error {
		o := state.FindOverlay(id)
		if o == nil {
			return domain.ErrOverlayNotFound
		}
		zs := allZIndices(state)
		if geometry.IsFrontmost(o.ZIndex, zs) {
			return nil
		}
		o.ZIndex = geometry.NextZIndex(zs)
		return nil
	})
}

// SwapPiPFront flips which of the two PiP singletons sits in the visually
// front slot. Only two layers compete, so a plain 20/10 swap suffices.
func (s *compositionService) SwapPiPFront(ctx context.Context) error {
	return s.store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		if state.Webcam == nil || state.Phone == nil {
			return nil
		}
		if state.Webcam.ZIndex >= state.Phone.ZIndex {
			state.Webcam.ZIndex = geometry.BackZIndex
			state.Phone.ZIndex = geometry.FrontZIndex
		} else {
			state.Webcam.ZIndex = geometry.FrontZIndex
			state.Phone.ZIndex = geometry.BackZIndex
		}
		return nil
	})
}

// validateOverlay checks structural consistency of a new overlay: the
// payload must match the discriminant.
func validateOverlay(o *domain.Overlay) error {
	switch o.Kind {
	case domain.OverlayImage:
		if o.Image == nil || o.Image.Source == "" {
			return fmt.Errorf("image overlay requires a source")
		}
	case domain.OverlayText:
		if o.Text == nil || o.Text.Content == "" {
			return fmt.Errorf("text overlay requires content")
		}
	case domain.OverlayVideo:
		if o.Video == nil || o.Video.Source == "" {
			return fmt.Errorf("video overlay requires a source")
		}
	case domain.OverlayBrowser:
		if o.Browser == nil {
			return fmt.Errorf("browser overlay requires a URL")
		}
		if err := validation.ValidateURL(o.Browser.URL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown overlay kind: %s", o.Kind)
	}
	return nil
}

func (s *compositionService) AddOverlay(ctx context.Context, overlay *domain.Overlay) error {
	if overlay == nil {
		return fmt.Errorf("overlay is required")
	}
	if err := validateOverlay(overlay); err != nil {
		return err
	}
	if overlay.ID == "" {
		overlay.ID = domain.OverlayID(utils.GenerateOverlayID())
	}
	// Zero is a legal opacity; the transport layer defaults an omitted
	// value before it reaches here.
	overlay.Opacity = clampInt(overlay.Opacity, 0, 100)

	return s.store.Update(ctx, domain.ChangeOverlays, func(state *domain.State) error {
		if overlay.ZIndex == 0 {
			overlay.ZIndex = geometry.NextZIndex(allZIndices(state))
		}
		state.Overlays = append(state.Overlays, overlay)
		s.recordCounts(state)
		return nil
	})
}

func (s *compositionService) RemoveOverlay(ctx context.Context, id domain.OverlayID) error {
	return s.store.Update(ctx, domain.ChangeOverlays, func(state *domain.State) error {
		for i, o := range state.Overlays {
			if o.ID == id {
				state.Overlays = append(state.Overlays[:i], state.Overlays[i+1:]...)
				s.recordCounts(state)
				return nil
			}
		}
		return domain.ErrOverlayNotFound
	})
}

func (s *compositionService) ToggleOverlay(ctx context.Context, id domain.OverlayID) error {
	return s.store.Update(ctx, domain.ChangeOverlays, func(state *domain.State) error {
		o := state.FindOverlay(id)
		if o == nil {
			return domain.ErrOverlayNotFound
		}
		o.Enabled = !o.Enabled
		return nil
	})
}

func (s *compositionService) UpdateOverlay(ctx context.Context, id domain.OverlayID, update ports.PlacementUpdate) error {
	return s.store.Update(ctx, domain.ChangeOverlays, func(state *domain.State) error {
		o := state.FindOverlay(id)
		if o == nil {
			return domain.ErrOverlayNotFound
		}
		applyPlacementUpdate(&o.Placeable, update, geometry.KindOverlay)
		return nil
	})
}

func (s *compositionService) SetOverlayOpacity(ctx context.Context, id domain.OverlayID, opacity int) error {
	return s.store.Update(ctx, domain.ChangeOverlays, func(state *domain.State) error {
		o := state.FindOverlay(id)
		if o == nil {
			return domain.ErrOverlayNotFound
		}
		o.Opacity = clampInt(opacity, 0, 100)
		return nil
	})
}

func (s *compositionService) SetTransitionConfig(ctx context.Context, cfg domain.TransitionConfig) error {
	switch cfg.Type {
	case domain.TransitionCut, domain.TransitionFade,
		domain.TransitionSlideLeft, domain.TransitionSlideRight,
		domain.TransitionSlideUp, domain.TransitionSlideDown,
		domain.TransitionZoom, domain.TransitionWipe, domain.TransitionMove:
	default:
		return fmt.Errorf("unknown transition type: %s", cfg.Type)
	}
	cfg.Duration = domain.ClampDuration(cfg.Duration)
	if cfg.Easing == "" {
		cfg.Easing = "ease-in-out"
	}
	return s.store.Update(ctx, domain.ChangeTransition, func(state *domain.State) error {
		state.Transition = cfg
		return nil
	})
}

// SaveDevice upserts a saved device keyed by serial.
func (s *compositionService) SaveDevice(ctx context.Context, dev *domain.SavedDevice) error {
	if dev == nil {
		return fmt.Errorf("device is required")
	}
	if err := validation.ValidateDeviceSerial(dev.Serial); err != nil {
		return err
	}
	return s.store.Update(ctx, domain.ChangeDevices, func(state *domain.State) error {
		for i, existing := range state.SavedDevices {
			if existing.Serial == dev.Serial {
				state.SavedDevices[i] = dev
				return nil
			}
		}
		state.SavedDevices = append(state.SavedDevices, dev)
		return nil
	})
}

func (s *compositionService) RemoveDevice(ctx context.Context, serial string) error {
	return s.store.Update(ctx, domain.ChangeDevices, func(state *domain.State) error {
		for i, dev := range state.SavedDevices {
			if dev.Serial == serial {
				state.SavedDevices = append(state.SavedDevices[:i], state.SavedDevices[i+1:]...)
				return nil
			}
		}
		return domain.ErrDeviceNotFound
	})
}

func (s *compositionService) SnapshotState() *domain.State {
	return s.store.Snapshot()
}

// ResolvePlacement computes the effective rectangle for any placeable.
func (s *compositionService) ResolvePlacement(id string, kind geometry.ElementKind) (geometry.Rect, error) {
	var p *domain.Placeable
	var err error
	s.store.View(func(state *domain.State) {
		switch kind {
		case geometry.KindWebcam:
			if w := findWebcam(state, domain.SourceID(id)); w != nil {
				cp := w.Placeable.Clone()
				p = &cp
			} else {
				err = domain.ErrWebcamNotFound
			}
		case geometry.KindPhone:
			if ph := findPhone(state, domain.SourceID(id)); ph != nil {
				cp := ph.Placeable.Clone()
				p = &cp
			} else {
				err = domain.ErrPhoneNotFound
			}
		case geometry.KindOverlay:
			if o := state.FindOverlay(domain.OverlayID(id)); o != nil {
				cp := o.Placeable.Clone()
				p = &cp
			} else {
				err = domain.ErrOverlayNotFound
			}
		}
	})
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Resolve(*p, kind), nil
}

func (s *compositionService) recordCounts(state *domain.State) {
	if s.metrics != nil {
		s.metrics.ActiveCounts(len(state.Scenes), len(state.Overlays), len(state.AudioTracks))
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
