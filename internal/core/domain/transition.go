package domain

import "time"

// TransitionType is the visual effect used when switching scenes.
type TransitionType string

const (
	TransitionCut        TransitionType = "cut"
	TransitionFade       TransitionType = "fade"
	TransitionSlideLeft  TransitionType = "slide-left"
	TransitionSlideRight TransitionType = "slide-right"
	TransitionSlideUp    TransitionType = "slide-up"
	TransitionSlideDown  TransitionType = "slide-down"
	TransitionZoom       TransitionType = "zoom"
	TransitionWipe       TransitionType = "wipe"
	TransitionMove       TransitionType = "move"
)

const (
	// MinTransitionDuration and MaxTransitionDuration bound the configurable
	// transition length.
	MinTransitionDuration = 100 * time.Millisecond
	MaxTransitionDuration = 2000 * time.Millisecond
)

// TransitionConfig is the single global scene-switch configuration.
type TransitionConfig struct {
	Type     TransitionType `json:"type"`
	Duration time.Duration  `json:"duration"`
	Easing   string         `json:"easing"`
}

// ClampDuration forces d into the allowed transition range.
func ClampDuration(d time.Duration) time.Duration {
	if d < MinTransitionDuration {
		return MinTransitionDuration
	}
	if d > MaxTransitionDuration {
		return MaxTransitionDuration
	}
	return d
}
