package ports

import (
	"context"

	"castdeck/internal/core/domain"
)

// CaptureProvider enumerates the host's capturable screens and windows.
// Implemented by the host-integration layer; the core never touches
// platform constraint shapes directly.
type CaptureProvider interface {
	ListSources(ctx context.Context) ([]*domain.CaptureSource, error)
}

// AudioStream is a live, acquired audio stream delivering frequency-domain
// magnitude data. ReadFrequencyData fills buf with one byte per bin,
// 0..255, and returns the number of bins written.
type AudioStream interface {
	ReadFrequencyData(buf []byte) (int, error)
	Close() error
}

// AudioDeviceProvider enumerates audio devices and acquires level streams.
// Acquire returns an error when the device cannot be opened; the caller
// reports the source as inactive and does not register it.
type AudioDeviceProvider interface {
	ListDevices(ctx context.Context) ([]*domain.AudioDevice, error)
	Acquire(ctx context.Context, deviceID string, trackType domain.TrackType) (AudioStream, error)
}

// CameraProvider enumerates the host's camera devices.
type CameraProvider interface {
	ListCameras(ctx context.Context) ([]*domain.AudioDevice, error)
}

// MirrorPlacement carries the placement defaults handed to the mirroring
// helper when a session starts.
type MirrorPlacement struct {
	Position domain.PositionMode
	Size     domain.SizeMode
}

// MirrorProvider starts and stops screen-mirroring sessions for a mobile
// device, by USB serial or WiFi address.
type MirrorProvider interface {
	Start(ctx context.Context, serial string, placement MirrorPlacement) error
	StartWiFi(ctx context.Context, address string, placement MirrorPlacement) error
	Stop(ctx context.Context, serial string) error
}

// ChannelInfo is the external platform metadata for the streamer's channel.
type ChannelInfo struct {
	Title    string
	Category string
	Viewers  int
	Messages int
	Follows  int
}

// ChannelAPI fetches and updates external channel metadata. Poll errors
// are logged and retried on the next tick, never fatal.
type ChannelAPI interface {
	Fetch(ctx context.Context, platform domain.PlatformKey) (*ChannelInfo, error)
	Update(ctx context.Context, platform domain.PlatformKey, title, category string) error
}

// WindowController drives the host window chrome.
type WindowController interface {
	Minimize() error
	Maximize() error
	Close() error
}

// Notifier fans state-change notifications out to connected panel clients.
type Notifier interface {
	Notify(change domain.StateChange)
}
