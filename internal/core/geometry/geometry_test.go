package geometry

import (
	"testing"

	"castdeck/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestClampSizeAspectConstrained(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.Dimensions
		wantW float64
	}{
		{"within range", domain.Dimensions{Width: 25, Height: 14}, 25},
		{"below minimum", domain.Dimensions{Width: 1, Height: 1}, 5},
		{"negative", domain.Dimensions{Width: -50, Height: -50}, 5},
		{"above maximum", domain.Dimensions{Width: 200, Height: 200}, 80},
		{"absurdly large", domain.Dimensions{Width: 1e9, Height: 1e9}, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampSize(tt.in, KindWebcam)
			assert.Equal(t, tt.wantW, got.Width)
			// Height follows width at 16:9
			assert.InDelta(t, tt.wantW*9.0/16.0, got.Height, 1e-9)
			assert.GreaterOrEqual(t, got.Width, float64(AspectMinSize))
			assert.LessOrEqual(t, got.Width, float64(AspectMaxSize))
		})
	}
}

func TestClampSizeFreeForm(t *testing.T) {
	got := ClampSize(domain.Dimensions{Width: -10, Height: 500}, KindPhone)
	assert.Equal(t, float64(FreeMinSize), got.Width)
	assert.Equal(t, float64(FreeMaxSize), got.Height)

	got = ClampSize(domain.Dimensions{Width: 40, Height: 70}, KindPhone)
	assert.Equal(t, 40.0, got.Width)
	assert.Equal(t, 70.0, got.Height)
}

func TestClampPoint(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Point
		want domain.Point
	}{
		{"inside", domain.Point{X: 50, Y: 50}, domain.Point{X: 50, Y: 50}},
		{"negative", domain.Point{X: -20, Y: -1000}, domain.Point{X: 5, Y: 5}},
		{"beyond canvas", domain.Point{X: 120, Y: 99}, domain.Point{X: 95, Y: 95}},
		{"at bounds", domain.Point{X: 5, Y: 95}, domain.Point{X: 5, Y: 95}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPoint(tt.in))
		})
	}
}

func TestNextZIndex(t *testing.T) {
	assert.Equal(t, 1, NextZIndex(nil))
	assert.Equal(t, 21, NextZIndex([]int{20, 10, 5}))
	assert.Equal(t, 21, NextZIndex([]int{5, 20, 20}))
}

func TestIsFrontmost(t *testing.T) {
	// Unique maximum
	assert.True(t, IsFrontmost(20, []int{20, 10, 5}))
	// Not the maximum
	assert.False(t, IsFrontmost(10, []int{20, 10, 5}))
	// Shared maximum still needs separating
	assert.False(t, IsFrontmost(20, []int{20, 20, 5}))
}

func TestBringToFrontIdempotence(t *testing.T) {
	zs := []int{20, 10, 5}
	// Element already the unique maximum keeps its index
	if !IsFrontmost(20, zs) {
		t.Fatal("expected 20 to be frontmost")
	}
	// Promoting any other element lands above the previous maximum
	next := NextZIndex(zs)
	assert.Equal(t, 21, next)
	assert.True(t, IsFrontmost(next, append(zs, next)))
}

func TestSizeOfPresets(t *testing.T) {
	small := SizeOf(domain.Placeable{Size: domain.SizeSmall}, KindWebcam)
	medium := SizeOf(domain.Placeable{Size: domain.SizeMedium}, KindWebcam)
	large := SizeOf(domain.Placeable{Size: domain.SizeLarge}, KindWebcam)
	assert.Less(t, small.Width, medium.Width)
	assert.Less(t, medium.Width, large.Width)

	full := SizeOf(domain.Placeable{Size: domain.SizeFull}, KindWebcam)
	assert.Equal(t, domain.Dimensions{Width: 100, Height: 100}, full)
}

func TestSizeOfPhonePortrait(t *testing.T) {
	d := SizeOf(domain.Placeable{Size: domain.SizeMedium}, KindPhone)
	assert.Greater(t, d.Height, d.Width)
	assert.LessOrEqual(t, d.Height, float64(FreeMaxSize))
}

func TestSizeOfCustomFallsBackWithoutOverride(t *testing.T) {
	withOverride := SizeOf(domain.Placeable{
		Size:       domain.SizeCustom,
		CustomSize: &domain.Dimensions{Width: 40, Height: 22.5},
	}, KindWebcam)
	assert.Equal(t, 40.0, withOverride.Width)

	without := SizeOf(domain.Placeable{Size: domain.SizeCustom}, KindWebcam)
	medium := SizeOf(domain.Placeable{Size: domain.SizeMedium}, KindWebcam)
	assert.Equal(t, medium, without)
}

func TestResolveCustomPositionAddressesCenter(t *testing.T) {
	p := domain.Placeable{
		Position:       domain.PositionCustom,
		CustomPosition: &domain.Point{X: 50, Y: 50},
		Size:           domain.SizeCustom,
		CustomSize:     &domain.Dimensions{Width: 20, Height: 11.25},
	}
	rect := Resolve(p, KindWebcam)
	assert.InDelta(t, 40.0, rect.X, 1e-9)
	assert.InDelta(t, 44.375, rect.Y, 1e-9)
	assert.Equal(t, 20.0, rect.Width)
}

func TestResolveAnchors(t *testing.T) {
	p := domain.Placeable{Position: domain.PositionTopLeft, Size: domain.SizeMedium}
	rect := Resolve(p, KindWebcam)
	assert.Equal(t, 2.5, rect.X)
	assert.Equal(t, 2.5, rect.Y)

	p.Position = domain.PositionBottomRight
	rect = Resolve(p, KindWebcam)
	assert.InDelta(t, 100-2.5-rect.Width, rect.X, 1e-9)
	assert.InDelta(t, 100-2.5-rect.Height, rect.Y, 1e-9)

	p.Position = domain.PositionCenter
	rect = Resolve(p, KindWebcam)
	assert.InDelta(t, 50-rect.Width/2, rect.X, 1e-9)
}

func TestResolveFullCoversCanvas(t *testing.T) {
	rect := Resolve(domain.Placeable{Size: domain.SizeFull}, KindPhone)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 100, Height: 100}, rect)
}

func TestAnchorDescriptors(t *testing.T) {
	assert.Equal(t, AnchorStyle{Top: "2.5%", Left: "2.5%"}, Anchor(domain.PositionTopLeft))
	assert.Equal(t, AnchorStyle{Bottom: "2.5%", Right: "2.5%"}, Anchor(domain.PositionBottomRight))
	assert.NotEmpty(t, Anchor(domain.PositionCenter).Transform)
	assert.Equal(t, AnchorStyle{}, Anchor(domain.PositionCustom))
}
