package domain

import "time"

// Scene is a named, savable arrangement of sources and overlays.
// Exactly one scene is active at any time.
type Scene struct {
	ID        SceneID     `json:"id"`
	Name      string      `json:"name"`
	IsActive  bool        `json:"isActive"`
	Config    SceneConfig `json:"config"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SceneConfig snapshots the placement of every placeable element at the
// moment the user saves the current arrangement into the scene. It stores
// layout only, never device bindings.
type SceneConfig struct {
	Webcam   *Placeable            `json:"webcam,omitempty"`
	Phone    *Placeable            `json:"phone,omitempty"`
	Overlays map[OverlayID]Placeable `json:"overlays,omitempty"`
}

// CaptureType distinguishes full-display capture from single-window capture.
type CaptureType string

const (
	CaptureScreen CaptureType = "screen"
	CaptureWindow CaptureType = "window"
)

// CaptureSource is the primary screen or window reference. At most one is
// active; replacing it discards the previous reference.
type CaptureSource struct {
	ID        SourceID    `json:"id"`
	Name      string      `json:"name"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	Type      CaptureType `json:"type"`
	Bounds    *Bounds     `json:"bounds,omitempty"`
	DisplayID string      `json:"displayId,omitempty"`
}

// Bounds is a pixel rectangle reported by the host for a capturable window.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}
