package services

import (
	"context"
	"testing"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/geometry"
	"castdeck/internal/core/ports"

	"github.com/stretchr/testify/assert"
)

func newTestComposition(store *Store) ports.CompositionService {
	return NewCompositionService(store, NewTransitionScheduler(testLogger()), nil, testLogger())
}

func TestAddScene(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)

	scene, err := svc.AddScene(context.Background(), "  Gameplay  ")
	assert.NoError(t, err)
	assert.Equal(t, "Gameplay", scene.Name)
	assert.NotEmpty(t, scene.ID)

	store.View(func(state *domain.State) {
		assert.Len(t, state.Scenes, 4)
	})
}

func TestAddSceneRejectsEmptyName(t *testing.T) {
	svc := newTestComposition(newTestStore())
	_, err := svc.AddScene(context.Background(), "   ")
	assert.Error(t, err)
}

func TestRemoveSceneFallsBackToFirst(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	// Removing the active scene promotes the first remaining one
	assert.NoError(t, svc.ActivateScene(ctx, "scene-pause"))
	assert.NoError(t, svc.RemoveScene(ctx, "scene-pause"))

	store.View(func(state *domain.State) {
		assert.Equal(t, domain.SceneID("scene-live"), state.ActiveSceneID)
		assert.True(t, state.FindScene("scene-live").IsActive)
		assert.Len(t, state.Scenes, 2)
	})
}

func TestRemoveLastSceneRejected(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	assert.NoError(t, svc.RemoveScene(ctx, "scene-pause"))
	assert.NoError(t, svc.RemoveScene(ctx, "scene-ending"))

	err := svc.RemoveScene(ctx, "scene-live")
	assert.ErrorIs(t, err, domain.ErrLastScene)

	store.View(func(state *domain.State) {
		assert.Len(t, state.Scenes, 1)
	})
}

func TestRemoveSceneNotFound(t *testing.T) {
	svc := newTestComposition(newTestStore())
	err := svc.RemoveScene(context.Background(), "scene-nope")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestRenameScene(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)

	assert.NoError(t, svc.RenameScene(context.Background(), "scene-pause", "Intermission"))
	store.View(func(state *domain.State) {
		assert.Equal(t, "Intermission", state.FindScene("scene-pause").Name)
	})
}

func TestSaveCurrentToSceneAndReapply(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	// Arrange a custom layout, save it into the pause scene
	assert.NoError(t, svc.MoveWebcam(ctx, "", domain.Point{X: 30, Y: 40}))
	assert.NoError(t, svc.SaveCurrentToScene(ctx, "scene-pause"))

	// Change the live layout, bind a device to the webcam
	assert.NoError(t, svc.MoveWebcam(ctx, "", domain.Point{X: 80, Y: 80}))
	store.Update(ctx, domain.ChangePlacement, func(state *domain.State) error {
		state.Webcam.DeviceID = "cam-7"
		return nil
	})

	// Activating the saved scene restores placement but not bindings
	assert.NoError(t, svc.ActivateScene(ctx, "scene-pause"))
	store.View(func(state *domain.State) {
		assert.Equal(t, domain.SceneID("scene-pause"), state.ActiveSceneID)
		assert.Equal(t, 30.0, state.Webcam.CustomPosition.X)
		assert.Equal(t, 40.0, state.Webcam.CustomPosition.Y)
		assert.Equal(t, "cam-7", state.Webcam.DeviceID)
	})
}

func TestSwitchingDoesNotImplicitlySave(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	assert.NoError(t, svc.MoveWebcam(ctx, "", domain.Point{X: 30, Y: 40}))
	assert.NoError(t, svc.ActivateScene(ctx, "scene-pause"))

	store.View(func(state *domain.State) {
		assert.Nil(t, state.FindScene("scene-live").Config.Webcam)
	})
}

func TestActivateSceneRejectedWhileTransitioning(t *testing.T) {
	store := newTestStore()
	scheduler := NewTransitionScheduler(testLogger())
	defer scheduler.Stop()
	svc := NewCompositionService(store, scheduler, nil, testLogger())
	ctx := context.Background()

	assert.NoError(t, svc.SwitchSceneWithTransition(ctx, "scene-pause"))
	assert.True(t, scheduler.Transitioning())

	err := svc.ActivateScene(ctx, "scene-ending")
	assert.ErrorIs(t, err, domain.ErrTransitionInProgress)

	// The scheduled activation itself still lands
	assert.Eventually(t, func() bool {
		var active domain.SceneID
		store.View(func(state *domain.State) {
			active = state.ActiveSceneID
		})
		return active == "scene-pause" && !scheduler.Transitioning()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSwitchSceneWithTransitionScenario(t *testing.T) {
	store := newTestStore()
	scheduler := NewTransitionScheduler(testLogger())
	defer scheduler.Stop()
	metrics := newRecordingMetrics()
	svc := NewCompositionService(store, scheduler, metrics, testLogger())
	ctx := context.Background()

	// Default config: fade, 300ms
	start := time.Now()
	assert.NoError(t, svc.SwitchSceneWithTransition(ctx, "scene-pause"))
	assert.True(t, scheduler.Transitioning())

	assert.Eventually(t, func() bool {
		var active domain.SceneID
		store.View(func(state *domain.State) {
			active = state.ActiveSceneID
		})
		return active == "scene-pause"
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)

	assert.Eventually(t, func() bool {
		return !scheduler.Transitioning()
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, metrics.Switches())
}

func TestSwitchSceneUnknownTarget(t *testing.T) {
	svc := newTestComposition(newTestStore())
	err := svc.SwitchSceneWithTransition(context.Background(), "scene-nope")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

func TestSetCaptureSource(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	src := &domain.CaptureSource{ID: "screen-0", Name: "Display 1", Type: domain.CaptureScreen}
	assert.NoError(t, svc.SetCaptureSource(ctx, src))
	store.View(func(state *domain.State) {
		assert.Equal(t, domain.SourceID("screen-0"), state.Capture.ID)
	})

	assert.Error(t, svc.SetCaptureSource(ctx, &domain.CaptureSource{ID: "x", Type: "hologram"}))
	assert.Error(t, svc.SetCaptureSource(ctx, nil))

	assert.NoError(t, svc.ClearCaptureSource(ctx))
	store.View(func(state *domain.State) {
		assert.Nil(t, state.Capture)
	})
}

func TestMoveWebcamClampsPosition(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)

	assert.NoError(t, svc.MoveWebcam(context.Background(), "webcam-1", domain.Point{X: -50, Y: 300}))
	store.View(func(state *domain.State) {
		w := state.Webcam
		assert.Equal(t, domain.PositionCustom, w.Position)
		assert.Equal(t, 5.0, w.CustomPosition.X)
		assert.Equal(t, 95.0, w.CustomPosition.Y)
	})
}

func TestResizeWebcamClampsAspect(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)

	assert.NoError(t, svc.ResizeWebcam(context.Background(), "", domain.Dimensions{Width: 500, Height: 1}))
	store.View(func(state *domain.State) {
		w := state.Webcam
		assert.Equal(t, domain.SizeCustom, w.Size)
		assert.Equal(t, 80.0, w.CustomSize.Width)
		assert.InDelta(t, 45.0, w.CustomSize.Height, 1e-9)
	})
}

func TestResizePhoneClampsFreeForm(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)

	assert.NoError(t, svc.ResizePhone(context.Background(), "phone-1", domain.Dimensions{Width: -4, Height: 400}))
	store.View(func(state *domain.State) {
		p := state.Phone
		assert.Equal(t, 10.0, p.CustomSize.Width)
		assert.Equal(t, 90.0, p.CustomSize.Height)
	})
}

func TestToggleWebcam(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	assert.NoError(t, svc.ToggleWebcam(ctx, "webcam-1"))
	store.View(func(state *domain.State) {
		assert.True(t, state.Webcam.Enabled)
	})
	assert.NoError(t, svc.ToggleWebcam(ctx, "webcam-1"))
	store.View(func(state *domain.State) {
		assert.False(t, state.Webcam.Enabled)
	})

	assert.ErrorIs(t, svc.ToggleWebcam(ctx, "webcam-nope"), domain.ErrWebcamNotFound)
}

func TestUpdateWebcamClearsCustomFieldsOnModeChange(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	assert.NoError(t, svc.MoveWebcam(ctx, "", domain.Point{X: 40, Y: 40}))
	assert.NoError(t, svc.ResizeWebcam(ctx, "", domain.Dimensions{Width: 30, Height: 17}))

	pos := domain.PositionTopLeft
	size := domain.SizeLarge
	assert.NoError(t, svc.UpdateWebcam(ctx, "", ports.PlacementUpdate{Position: &pos, Size: &size}))

	store.View(func(state *domain.State) {
		w := state.Webcam
		assert.Equal(t, domain.PositionTopLeft, w.Position)
		assert.Nil(t, w.CustomPosition)
		assert.Equal(t, domain.SizeLarge, w.Size)
		assert.Nil(t, w.CustomSize)
	})
}

func TestBringOverlayToFront(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	overlay := &domain.Overlay{
		Name: "Logo",
		Kind: domain.OverlayImage,
		Image: &domain.ImageOverlayProps{Source: "logo.png"},
	}
	assert.NoError(t, svc.AddOverlay(ctx, overlay))

	assert.NoError(t, svc.BringOverlayToFront(ctx, overlay.ID))
	store.View(func(state *domain.State) {
		o := state.FindOverlay(overlay.ID)
		// Above the default webcam (20) and phone (10)
		assert.Equal(t, 21, o.ZIndex)
	})

	// Idempotent when already frontmost
	assert.NoError(t, svc.BringOverlayToFront(ctx, overlay.ID))
	store.View(func(state *domain.State) {
		assert.Equal(t, 21, state.FindOverlay(overlay.ID).ZIndex)
	})
}

func TestSwapPiPFront(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	// Default: webcam front (20), phone back (10)
	assert.NoError(t, svc.SwapPiPFront(ctx))
	store.View(func(state *domain.State) {
		assert.Equal(t, geometry.BackZIndex, state.Webcam.ZIndex)
		assert.Equal(t, geometry.FrontZIndex, state.Phone.ZIndex)
	})

	assert.NoError(t, svc.SwapPiPFront(ctx))
	store.View(func(state *domain.State) {
		assert.Equal(t, geometry.FrontZIndex, state.Webcam.ZIndex)
		assert.Equal(t, geometry.BackZIndex, state.Phone.ZIndex)
	})
}

func TestAddOverlayValidation(t *testing.T) {
	svc := newTestComposition(newTestStore())
	ctx := context.Background()

	// Payload must match the discriminant
	assert.Error(t, svc.AddOverlay(ctx, &domain.Overlay{Kind: domain.OverlayImage}))
	assert.Error(t, svc.AddOverlay(ctx, &domain.Overlay{Kind: domain.OverlayText, Text: &domain.TextOverlayProps{}}))
	assert.Error(t, svc.AddOverlay(ctx, &domain.Overlay{Kind: "sticker"}))
	assert.Error(t, svc.AddOverlay(ctx, &domain.Overlay{
		Kind:    domain.OverlayBrowser,
		Browser: &domain.BrowserOverlayProps{URL: "not a url"},
	}))
	assert.Error(t, svc.AddOverlay(ctx, nil))

	assert.NoError(t, svc.AddOverlay(ctx, &domain.Overlay{
		Kind:    domain.OverlayBrowser,
		Browser: &domain.BrowserOverlayProps{URL: "https://overlay.example/chat"},
	}))
}

func TestOverlayLifecycle(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	overlay := &domain.Overlay{
		Kind:    domain.OverlayText,
		Text:    &domain.TextOverlayProps{Content: "Starting soon"},
		Opacity: 100,
	}
	assert.NoError(t, svc.AddOverlay(ctx, overlay))
	assert.NotEmpty(t, overlay.ID)

	assert.NoError(t, svc.ToggleOverlay(ctx, overlay.ID))
	assert.NoError(t, svc.SetOverlayOpacity(ctx, overlay.ID, 250))
	store.View(func(state *domain.State) {
		o := state.FindOverlay(overlay.ID)
		assert.True(t, o.Enabled)
		assert.Equal(t, 100, o.Opacity)
	})

	assert.NoError(t, svc.SetOverlayOpacity(ctx, overlay.ID, -5))
	store.View(func(state *domain.State) {
		assert.Equal(t, 0, state.FindOverlay(overlay.ID).Opacity)
	})

	assert.NoError(t, svc.RemoveOverlay(ctx, overlay.ID))
	assert.ErrorIs(t, svc.RemoveOverlay(ctx, overlay.ID), domain.ErrOverlayNotFound)
}

func TestAddOverlayKeepsExplicitTransparency(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	hidden := &domain.Overlay{
		Kind: domain.OverlayText,
		Text: &domain.TextOverlayProps{Content: "hidden until raid"},
	}
	assert.NoError(t, svc.AddOverlay(ctx, hidden))
	assert.Equal(t, 0, hidden.Opacity)

	loud := &domain.Overlay{
		Kind:    domain.OverlayText,
		Text:    &domain.TextOverlayProps{Content: "follow goal"},
		Opacity: 250,
	}
	assert.NoError(t, svc.AddOverlay(ctx, loud))
	assert.Equal(t, 100, loud.Opacity)
}

func TestSetTransitionConfig(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	assert.NoError(t, svc.SetTransitionConfig(ctx, domain.TransitionConfig{
		Type:     domain.TransitionSlideLeft,
		Duration: 10 * time.Second,
	}))
	store.View(func(state *domain.State) {
		assert.Equal(t, domain.TransitionSlideLeft, state.Transition.Type)
		assert.Equal(t, domain.MaxTransitionDuration, state.Transition.Duration)
		assert.Equal(t, "ease-in-out", state.Transition.Easing)
	})

	assert.NoError(t, svc.SetTransitionConfig(ctx, domain.TransitionConfig{
		Type:     domain.TransitionCut,
		Duration: time.Millisecond,
	}))
	store.View(func(state *domain.State) {
		assert.Equal(t, domain.MinTransitionDuration, state.Transition.Duration)
	})

	assert.Error(t, svc.SetTransitionConfig(ctx, domain.TransitionConfig{Type: "dissolve", Duration: 300 * time.Millisecond}))
}

func TestSaveDeviceUpsert(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)
	ctx := context.Background()

	assert.NoError(t, svc.SaveDevice(ctx, &domain.SavedDevice{Serial: "R58M123", Name: "Pixel"}))
	assert.NoError(t, svc.SaveDevice(ctx, &domain.SavedDevice{Serial: "R58M123", Name: "Pixel 8", WiFiIP: "192.168.1.12"}))

	store.View(func(state *domain.State) {
		assert.Len(t, state.SavedDevices, 1)
		assert.Equal(t, "Pixel 8", state.SavedDevices[0].Name)
		assert.Equal(t, "192.168.1.12", state.SavedDevices[0].WiFiIP)
	})

	assert.NoError(t, svc.RemoveDevice(ctx, "R58M123"))
	assert.ErrorIs(t, svc.RemoveDevice(ctx, "R58M123"), domain.ErrDeviceNotFound)
}

func TestResolvePlacement(t *testing.T) {
	svc := newTestComposition(newTestStore())

	rect, err := svc.ResolvePlacement("webcam-1", geometry.KindWebcam)
	assert.NoError(t, err)
	assert.Greater(t, rect.Width, 0.0)

	_, err = svc.ResolvePlacement("ghost", geometry.KindOverlay)
	assert.ErrorIs(t, err, domain.ErrOverlayNotFound)
}

func TestSnapshotStateIsDeepCopy(t *testing.T) {
	store := newTestStore()
	svc := newTestComposition(store)

	snap := svc.SnapshotState()
	snap.Scenes[0].Name = "mutated"

	store.View(func(state *domain.State) {
		assert.Equal(t, "Live", state.Scenes[0].Name)
	})
}
