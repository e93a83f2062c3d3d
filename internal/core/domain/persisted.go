package domain

// PersistedStateVersion is written into every serialized blob. Loading is
// field-by-field and forward-tolerant, so unknown versions still load.
const PersistedStateVersion = "1"

// PersistedState is the durable subset of State serialized on every
// mutation. Ephemeral fields (live audio levels, mirroring status, the
// current session) are deliberately absent.
type PersistedState struct {
	Version        string            `json:"version"`
	Scenes         []*Scene          `json:"scenes"`
	ActiveSceneID  SceneID           `json:"activeSceneId"`
	Webcams        []*WebcamSource   `json:"webcams"`
	Phones         []*PhoneSource    `json:"phones"`
	SavedDevices   []*SavedDevice    `json:"savedDevices"`
	Webcam         *WebcamSource     `json:"webcam,omitempty"`
	Phone          *PhoneSource      `json:"phone,omitempty"`
	Overlays       []*Overlay        `json:"overlays"`
	Transition     *TransitionConfig `json:"transitionConfig,omitempty"`
	Presets        []*StreamPreset   `json:"presets"`
	ActivePresetID PresetID          `json:"activePresetId"`
	PastSessions   []*StreamSession  `json:"pastSessions"`
	AudioTracks    []*AudioTrack     `json:"audioTracks"`
}

// Snapshot copies the durable subset of s into a PersistedState. Audio
// track levels are not part of the wire shape (the Level field is not
// serialized), so no scrubbing is needed beyond field selection.
func Snapshot(s *State) *PersistedState {
	return &PersistedState{
		Version:        PersistedStateVersion,
		Scenes:         s.Scenes,
		ActiveSceneID:  s.ActiveSceneID,
		Webcams:        s.Webcams,
		Phones:         s.Phones,
		SavedDevices:   s.SavedDevices,
		Webcam:         s.Webcam,
		Phone:          s.Phone,
		Overlays:       s.Overlays,
		Transition:     &s.Transition,
		Presets:        s.Presets,
		ActivePresetID: s.ActivePresetID,
		PastSessions:   s.PastSessions,
		AudioTracks:    s.AudioTracks,
	}
}
