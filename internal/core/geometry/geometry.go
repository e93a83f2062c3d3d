// Package geometry resolves the effective placement of picture-in-picture
// elements on the 16:9 canvas. All values are percentages of canvas
// dimensions. The package is pure: it holds no state and never mutates its
// inputs.
package geometry

import "castdeck/internal/core/domain"

// ElementKind selects the clamp rules for an element.
type ElementKind string

const (
	// KindWebcam and KindOverlay are aspect-constrained: height follows
	// width at a 16:9 ratio and width is clamped to [5,80].
	KindWebcam  ElementKind = "webcam"
	KindOverlay ElementKind = "overlay"
	// KindPhone is free-form: width and height clamp independently
	// to [10,90].
	KindPhone ElementKind = "phone"
)

const (
	// Clamp bounds for resize operations, percent of canvas.
	AspectMinSize = 5
	AspectMaxSize = 80
	FreeMinSize   = 10
	FreeMaxSize   = 90

	// Drag clamp keeps an element's center inside the canvas.
	MinPos = 5
	MaxPos = 95

	// Margin used by the preset anchors, percent from the canvas edge.
	anchorMargin = 2.5

	// aspectRatio is height/width for aspect-constrained elements.
	aspectRatio = 9.0 / 16.0

	// Default z-indices for the two PiP singletons. Only two layers
	// compete for the visually front slot, so bringing one forward is a
	// plain two-way swap.
	FrontZIndex = 20
	BackZIndex  = 10
)

// Rect is a resolved placement: the top-left corner plus dimensions, all
// in canvas percentages.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AnchorStyle is a CSS-like descriptor for the five preset positions and
// the full-canvas size. Empty fields are unset.
type AnchorStyle struct {
	Top       string `json:"top,omitempty"`
	Right     string `json:"right,omitempty"`
	Bottom    string `json:"bottom,omitempty"`
	Left      string `json:"left,omitempty"`
	Transform string `json:"transform,omitempty"`
}

// Anchor returns the CSS-like descriptor for a preset position. Custom
// positions have no anchor; callers resolve those through Resolve.
func Anchor(pos domain.PositionMode) AnchorStyle {
	switch pos {
	case domain.PositionTopLeft:
		return AnchorStyle{Top: "2.5%", Left: "2.5%"}
	case domain.PositionTopRight:
		return AnchorStyle{Top: "2.5%", Right: "2.5%"}
	case domain.PositionBottomLeft:
		return AnchorStyle{Bottom: "2.5%", Left: "2.5%"}
	case domain.PositionBottomRight:
		return AnchorStyle{Bottom: "2.5%", Right: "2.5%"}
	case domain.PositionCenter:
		return AnchorStyle{Top: "50%", Left: "50%", Transform: "translate(-50%, -50%)"}
	}
	return AnchorStyle{}
}

// presetWidth maps the preset size modes to a canvas-percent width.
func presetWidth(size domain.SizeMode, kind ElementKind) float64 {
	switch size {
	case domain.SizeSmall:
		return 15
	case domain.SizeLarge:
		if kind == KindPhone {
			return 30
		}
		return 35
	default: // SizeMedium and anything unknown
		if kind == KindPhone {
			return 22
		}
		return 25
	}
}

// SizeOf resolves the effective dimensions of a placeable. Full always
// covers the whole canvas; custom uses the override when present and
// falls back to medium when the override is missing.
func SizeOf(p domain.Placeable, kind ElementKind) domain.Dimensions {
	if p.Size == domain.SizeFull {
		return domain.Dimensions{Width: 100, Height: 100}
	}
	if p.Size == domain.SizeCustom && p.CustomSize != nil {
		return ClampSize(*p.CustomSize, kind)
	}
	w := presetWidth(p.Size, kind)
	h := w * aspectRatio
	if kind == KindPhone {
		// Phone mirrors are portrait: invert the ratio.
		h = w / aspectRatio
		if h > FreeMaxSize {
			h = FreeMaxSize
		}
	}
	return domain.Dimensions{Width: w, Height: h}
}

// Resolve computes the full placement rectangle for a placeable.
func Resolve(p domain.Placeable, kind ElementKind) Rect {
	dims := SizeOf(p, kind)

	if p.Size == domain.SizeFull {
		return Rect{X: 0, Y: 0, Width: 100, Height: 100}
	}

	if p.Position == domain.PositionCustom && p.CustomPosition != nil {
		pt := ClampPoint(*p.CustomPosition)
		// Custom coordinates address the element's center.
		return Rect{
			X:      pt.X - dims.Width/2,
			Y:      pt.Y - dims.Height/2,
			Width:  dims.Width,
			Height: dims.Height,
		}
	}

	var x, y float64
	switch p.Position {
	case domain.PositionTopLeft:
		x, y = anchorMargin, anchorMargin
	case domain.PositionTopRight:
		x, y = 100-anchorMargin-dims.Width, anchorMargin
	case domain.PositionBottomLeft:
		x, y = anchorMargin, 100-anchorMargin-dims.Height
	case domain.PositionBottomRight:
		x, y = 100-anchorMargin-dims.Width, 100-anchorMargin-dims.Height
	case domain.PositionCenter:
		x, y = 50-dims.Width/2, 50-dims.Height/2
	default:
		x, y = 100-anchorMargin-dims.Width, 100-anchorMargin-dims.Height
	}
	return Rect{X: x, Y: y, Width: dims.Width, Height: dims.Height}
}

// ClampSize forces free-form dimensions into the element's allowed range.
// Aspect-constrained kinds derive height from width.
func ClampSize(d domain.Dimensions, kind ElementKind) domain.Dimensions {
	if kind == KindPhone {
		return domain.Dimensions{
			Width:  clamp(d.Width, FreeMinSize, FreeMaxSize),
			Height: clamp(d.Height, FreeMinSize, FreeMaxSize),
		}
	}
	w := clamp(d.Width, AspectMinSize, AspectMaxSize)
	return domain.Dimensions{Width: w, Height: w * aspectRatio}
}

// ClampPoint forces a free-form position into the drag range, keeping the
// element's center on the canvas.
func ClampPoint(pt domain.Point) domain.Point {
	return domain.Point{
		X: clamp(pt.X, MinPos, MaxPos),
		Y: clamp(pt.Y, MinPos, MaxPos),
	}
}

// NextZIndex returns max(existing)+1, the z-index that puts an element in
// front of every other. An element already at the maximum keeps its index
// only if nothing shares it; callers that want idempotence check first
// with IsFrontmost.
func NextZIndex(existing []int) int {
	max := 0
	for _, z := range existing {
		if z > max {
			max = z
		}
	}
	return max + 1
}

// IsFrontmost reports whether z is the unique maximum of existing. A
// shared maximum counts as not frontmost so BringToFront separates the
// elements.
func IsFrontmost(z int, existing []int) bool {
	atOrAbove := 0
	for _, other := range existing {
		if other > z {
			return false
		}
		if other == z {
			atOrAbove++
		}
	}
	return atOrAbove <= 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
