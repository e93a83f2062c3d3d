package domain

// PlatformKey identifies a streaming platform enabled in a preset.
type PlatformKey string

const (
	PlatformTwitch  PlatformKey = "twitch"
	PlatformYouTube PlatformKey = "youtube"
	PlatformKick    PlatformKey = "kick"
)

// StreamPreset bundles platform metadata, output quality and the starting
// arrangement into one applicable unit. Applying a preset mutates the audio
// tracks and triggers a scene switch; presets have a lifecycle independent
// of scenes.
type StreamPreset struct {
	ID        PresetID      `json:"id"`
	Name      string        `json:"name"`
	Platforms []PlatformKey `json:"platforms"`
	Title     string        `json:"title,omitempty"`
	Category  string        `json:"category,omitempty"`

	Resolution string `json:"resolution"` // e.g. "1920x1080"
	FPS        int    `json:"fps"`
	Bitrate    int    `json:"bitrate"` // kbps
	Encoder    string `json:"encoder"`

	StartSceneID SceneID         `json:"startSceneId,omitempty"`
	AudioLevels  map[TrackID]int `json:"audioLevels,omitempty"` // default volumes, 0..100
}
