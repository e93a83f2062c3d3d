package domain

import "time"

// State is the authoritative composition graph. It is owned exclusively by
// the composition services; everything else holds ids, never copies used
// for mutation.
type State struct {
	Scenes        []*Scene
	ActiveSceneID SceneID

	Capture *CaptureSource

	Webcams []*WebcamSource
	Phones  []*PhoneSource

	// Legacy single-instance views. Always the first element of the
	// corresponding collection, recomputed after every collection
	// mutation; never an independent source of truth.
	Webcam *WebcamSource
	Phone  *PhoneSource

	Overlays []*Overlay

	SavedDevices []*SavedDevice

	AudioTracks []*AudioTrack

	Transition TransitionConfig

	Presets        []*StreamPreset
	ActivePresetID PresetID

	CurrentSession *StreamSession
	PastSessions   []*StreamSession // most recent first, capped
}

// DefaultState returns the built-in composition every fresh profile starts
// from and the fallback the reconciler uses when a persisted collection
// validates down to nothing.
func DefaultState() *State {
	now := time.Now()

	scenes := []*Scene{
		{ID: "scene-live", Name: "Live", IsActive: true, CreatedAt: now},
		{ID: "scene-pause", Name: "Pause", CreatedAt: now},
		{ID: "scene-ending", Name: "Ending", CreatedAt: now},
	}

	webcams := []*WebcamSource{
		{
			ID:   "webcam-1",
			Name: "Webcam",
			Placeable: Placeable{
				Position: PositionBottomRight,
				Size:     SizeMedium,
				ZIndex:   20,
			},
		},
	}

	phones := []*PhoneSource{
		{
			ID:   "phone-1",
			Name: "Phone",
			Placeable: Placeable{
				Position: PositionBottomLeft,
				Size:     SizeMedium,
				ZIndex:   10,
			},
		},
	}

	tracks := []*AudioTrack{
		{ID: "track-mic", Type: TrackMic, Label: "Microphone", Volume: 80},
		{ID: "track-desktop", Type: TrackDesktop, Label: "Desktop", Volume: 60},
		{ID: "track-phone", Type: TrackPhone, Label: "Phone", Volume: 50, Muted: true},
	}

	return &State{
		Scenes:        scenes,
		ActiveSceneID: "scene-live",
		Webcams:       webcams,
		Webcam:        webcams[0],
		Phones:        phones,
		Phone:         phones[0],
		AudioTracks:   tracks,
		Transition: TransitionConfig{
			Type:     TransitionFade,
			Duration: 300 * time.Millisecond,
			Easing:   "ease-in-out",
		},
	}
}

// ActiveScene returns the scene matching ActiveSceneID, or nil.
func (s *State) ActiveScene() *Scene {
	for _, sc := range s.Scenes {
		if sc.ID == s.ActiveSceneID {
			return sc
		}
	}
	return nil
}

// FindScene returns the scene with the given id, or nil.
func (s *State) FindScene(id SceneID) *Scene {
	for _, sc := range s.Scenes {
		if sc.ID == id {
			return sc
		}
	}
	return nil
}

// FindOverlay returns the overlay with the given id, or nil.
func (s *State) FindOverlay(id OverlayID) *Overlay {
	for _, o := range s.Overlays {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// FindTrack returns the audio track with the given id, or nil.
func (s *State) FindTrack(id TrackID) *AudioTrack {
	for _, t := range s.AudioTracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// SyncLegacyViews recomputes the single-instance webcam/phone references
// from the collections. Must be called after every collection mutation.
func (s *State) SyncLegacyViews() {
	if len(s.Webcams) > 0 {
		s.Webcam = s.Webcams[0]
	} else {
		s.Webcam = nil
	}
	if len(s.Phones) > 0 {
		s.Phone = s.Phones[0]
	} else {
		s.Phone = nil
	}
}
