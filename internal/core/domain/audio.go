package domain

// TrackType classifies the mixer tracks shown on the panel.
type TrackType string

const (
	TrackMic     TrackType = "mic"
	TrackDesktop TrackType = "desktop"
	TrackPhone   TrackType = "phone"
	TrackMusic   TrackType = "music"
	TrackAlert   TrackType = "alert"
)

// AudioTrack is one mixer channel. Level is the live meter value and is
// ephemeral: it is never persisted and resets to 0 on load.
type AudioTrack struct {
	ID          TrackID   `json:"id"`
	Type        TrackType `json:"type"`
	Label       string    `json:"label"`
	Volume      int       `json:"volume"` // 0..100
	Muted       bool      `json:"muted"`
	Level       int       `json:"-"` // 0..100, live meter only
	DeviceID    string    `json:"deviceId,omitempty"`
	DeviceLabel string    `json:"deviceLabel,omitempty"`
}

// AudioDevice is a host input or output device usable by a track.
type AudioDevice struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	IsInput bool   `json:"isInput"`
}
