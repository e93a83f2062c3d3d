package domain

import "errors"

var (
	ErrSceneNotFound        = errors.New("scene not found")
	ErrOverlayNotFound      = errors.New("overlay not found")
	ErrTrackNotFound        = errors.New("audio track not found")
	ErrPresetNotFound       = errors.New("preset not found")
	ErrWebcamNotFound       = errors.New("webcam not found")
	ErrPhoneNotFound        = errors.New("phone not found")
	ErrDeviceNotFound       = errors.New("saved device not found")
	ErrLastScene            = errors.New("cannot remove the last scene")
	ErrTransitionInProgress = errors.New("scene transition in progress")
	ErrSessionActive        = errors.New("a session is already live")
	ErrNoSession            = errors.New("no live session")
	ErrNoPlatforms          = errors.New("session requires at least one platform")
	ErrSourceInactive       = errors.New("audio source inactive")
)
