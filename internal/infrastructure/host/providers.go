// Package host carries the provider implementations supplied by the
// desktop shell. The daemon boots with detached providers; the shell
// swaps in real ones once its capture, audio and mirroring layers are
// up. Every detached call fails with ErrDetached, which the services
// treat as a source-scoped failure.
package host

import (
	"context"
	"errors"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"
)

// ErrDetached is returned by every provider call until the shell
// attaches its integration layer.
var ErrDetached = errors.New("host integration not attached")

type detachedCaptureProvider struct{}

func NewDetachedCaptureProvider() ports.CaptureProvider {
	return detachedCaptureProvider{}
}

func (detachedCaptureProvider) ListSources(ctx context.Context) ([]*domain.CaptureSource, error) {
	return nil, ErrDetached
}

type detachedAudioProvider struct{}

func NewDetachedAudioProvider() ports.AudioDeviceProvider {
	return detachedAudioProvider{}
}

func (detachedAudioProvider) ListDevices(ctx context.Context) ([]*domain.AudioDevice, error) {
	return nil, ErrDetached
}

func (detachedAudioProvider) Acquire(ctx context.Context, deviceID string, trackType domain.TrackType) (ports.AudioStream, error) {
	return nil, ErrDetached
}

type detachedCameraProvider struct{}

func NewDetachedCameraProvider() ports.CameraProvider {
	return detachedCameraProvider{}
}

func (detachedCameraProvider) ListCameras(ctx context.Context) ([]*domain.AudioDevice, error) {
	return nil, ErrDetached
}

type detachedMirrorProvider struct{}

func NewDetachedMirrorProvider() ports.MirrorProvider {
	return detachedMirrorProvider{}
}

func (detachedMirrorProvider) Start(ctx context.Context, serial string, placement ports.MirrorPlacement) error {
	return ErrDetached
}

func (detachedMirrorProvider) StartWiFi(ctx context.Context, address string, placement ports.MirrorPlacement) error {
	return ErrDetached
}

func (detachedMirrorProvider) Stop(ctx context.Context, serial string) error {
	return ErrDetached
}

type detachedWindowController struct{}

func NewDetachedWindowController() ports.WindowController {
	return detachedWindowController{}
}

func (detachedWindowController) Minimize() error { return ErrDetached }
func (detachedWindowController) Maximize() error { return ErrDetached }
func (detachedWindowController) Close() error    { return ErrDetached }

type detachedChannelAPI struct{}

func NewDetachedChannelAPI() ports.ChannelAPI {
	return detachedChannelAPI{}
}

func (detachedChannelAPI) Fetch(ctx context.Context, platform domain.PlatformKey) (*ports.ChannelInfo, error) {
	return nil, ErrDetached
}

func (detachedChannelAPI) Update(ctx context.Context, platform domain.PlatformKey, title, category string) error {
	return ErrDetached
}
