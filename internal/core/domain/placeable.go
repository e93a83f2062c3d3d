package domain

type SceneID string
type OverlayID string
type SourceID string
type TrackID string
type SessionID string
type PresetID string

// PositionMode selects between a preset anchor and free-form coordinates.
type PositionMode string

const (
	PositionTopLeft     PositionMode = "top-left"
	PositionTopRight    PositionMode = "top-right"
	PositionBottomLeft  PositionMode = "bottom-left"
	PositionBottomRight PositionMode = "bottom-right"
	PositionCenter      PositionMode = "center"
	PositionCustom      PositionMode = "custom"
)

// SizeMode selects between preset sizes and free-form dimensions.
type SizeMode string

const (
	SizeSmall  SizeMode = "small"
	SizeMedium SizeMode = "medium"
	SizeLarge  SizeMode = "large"
	SizeFull   SizeMode = "full"
	SizeCustom SizeMode = "custom"
)

// Point is a free-form position in canvas percentage coordinates.
type Point struct {
	X float64 `json:"x"` // percent of canvas width, 0..100
	Y float64 `json:"y"` // percent of canvas height, 0..100
}

// Dimensions is a free-form size in canvas percentage coordinates.
type Dimensions struct {
	Width  float64 `json:"width"`  // percent of canvas width, 0..100
	Height float64 `json:"height"` // percent of canvas height, 0..100
}

// Placeable is the shared shape of every visual element that can be
// positioned on the 16:9 canvas: webcam, phone mirror and overlays.
// CustomPosition and CustomSize are only meaningful while the
// corresponding mode is the custom variant.
type Placeable struct {
	Enabled        bool         `json:"enabled"`
	Position       PositionMode `json:"position"`
	CustomPosition *Point       `json:"customPosition,omitempty"`
	Size           SizeMode     `json:"size"`
	CustomSize     *Dimensions  `json:"customSize,omitempty"`
	ZIndex         int          `json:"zIndex"`
}
