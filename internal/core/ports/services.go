package ports

import (
	"context"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/geometry"
)

// CompositionService owns the scene/source composition graph. Every state
// transition is one named operation; operations run to completion and
// never leave the graph violating its invariants.
type CompositionService interface {
	// Scenes.
	AddScene(ctx context.Context, name string) (*domain.Scene, error)
	RemoveScene(ctx context.Context, id domain.SceneID) error
	RenameScene(ctx context.Context, id domain.SceneID, name string) error
	SaveCurrentToScene(ctx context.Context, id domain.SceneID) error
	ActivateScene(ctx context.Context, id domain.SceneID) error
	SwitchSceneWithTransition(ctx context.Context, id domain.SceneID) error

	// Primary capture source.
	SetCaptureSource(ctx context.Context, src *domain.CaptureSource) error
	ClearCaptureSource(ctx context.Context) error

	// Webcam placement.
	UpdateWebcam(ctx context.Context, id domain.SourceID, update PlacementUpdate) error
	ToggleWebcam(ctx context.Context, id domain.SourceID) error
	MoveWebcam(ctx context.Context, id domain.SourceID, to domain.Point) error
	ResizeWebcam(ctx context.Context, id domain.SourceID, dims domain.Dimensions) error

	// Phone placement.
	UpdatePhone(ctx context.Context, id domain.SourceID, update PlacementUpdate) error
	TogglePhone(ctx context.Context, id domain.SourceID) error
	MovePhone(ctx context.Context, id domain.SourceID, to domain.Point) error
	ResizePhone(ctx context.Context, id domain.SourceID, dims domain.Dimensions) error

	// Layering.
	BringOverlayToFront(ctx context.Context, id domain.OverlayID) error
	SwapPiPFront(ctx context.Context) error

	// Overlays.
	AddOverlay(ctx context.Context, overlay *domain.Overlay) error
	RemoveOverlay(ctx context.Context, id domain.OverlayID) error
	ToggleOverlay(ctx context.Context, id domain.OverlayID) error
	UpdateOverlay(ctx context.Context, id domain.OverlayID, update PlacementUpdate) error
	SetOverlayOpacity(ctx context.Context, id domain.OverlayID, opacity int) error

	// Transition configuration.
	SetTransitionConfig(ctx context.Context, cfg domain.TransitionConfig) error

	// Saved devices.
	SaveDevice(ctx context.Context, dev *domain.SavedDevice) error
	RemoveDevice(ctx context.Context, serial string) error

	// Reads.
	SnapshotState() *domain.State
	ResolvePlacement(id string, kind geometry.ElementKind) (geometry.Rect, error)
}

// PlacementUpdate mutates a Placeable. Nil fields are left untouched.
// Switching Position away from custom clears CustomPosition; switching
// Size away from custom clears CustomSize.
type PlacementUpdate struct {
	Enabled        *bool
	Position       *domain.PositionMode
	CustomPosition *domain.Point
	Size           *domain.SizeMode
	CustomSize     *domain.Dimensions
}

// AudioService owns the mixer tracks and the level-meter pipeline.
type AudioService interface {
	SetVolume(ctx context.Context, id domain.TrackID, volume int) error
	SetMuted(ctx context.Context, id domain.TrackID, muted bool) error
	SetTrackDevice(ctx context.Context, id domain.TrackID, deviceID, label string) error

	// StartMeter acquires the track's audio stream and registers it with
	// the sampling loop. The loop starts with the first registered source
	// and stops with the last.
	StartMeter(ctx context.Context, id domain.TrackID) error
	StopMeter(ctx context.Context, id domain.TrackID) error
	MeterActive(id domain.TrackID) bool

	Tracks() []*domain.AudioTrack
	Close()
}

// SessionService owns presets, live sessions and their markers.
type SessionService interface {
	AddPreset(ctx context.Context, preset *domain.StreamPreset) error
	RemovePreset(ctx context.Context, id domain.PresetID) error
	ApplyPreset(ctx context.Context, id domain.PresetID) error

	StartSession(ctx context.Context, platforms []domain.PlatformKey) (*domain.StreamSession, error)
	EndSession(ctx context.Context) error
	AddMarker(ctx context.Context, kind domain.MarkerKind, note string) (*domain.StreamMarker, error)
	RemoveMarker(ctx context.Context, id string) error
	ExportSession(ctx context.Context, id domain.SessionID) (string, error)

	HandleHostEvent(ctx context.Context, ev domain.HostEvent)
	Close()
}

// SceneActivator performs the actual scene activation once a transition's
// duration has elapsed.
type SceneActivator func(ctx context.Context, target domain.SceneID) error

// TransitionScheduler gates scene switches. Switch is a no-op when a
// transition is already running or the target is already active.
type TransitionScheduler interface {
	Switch(ctx context.Context, current, target domain.SceneID, duration time.Duration, activate SceneActivator) error
	Transitioning() bool
	Stop()
}

// DiscoveryService reconnects saved mobile devices over WiFi with bounded
// retries.
type DiscoveryService interface {
	Reconnect(ctx context.Context, serial string) error
}
