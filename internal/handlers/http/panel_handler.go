package http

import (
	stderrors "errors"
	"net/http"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/geometry"
	"castdeck/internal/core/ports"
	"castdeck/pkg/errors"

	"github.com/gin-gonic/gin"
)

type PanelHandler struct {
	composition ports.CompositionService
	audio       ports.AudioService
	sessions    ports.SessionService
	discovery   ports.DiscoveryService

	capture      ports.CaptureProvider
	cameras      ports.CameraProvider
	audioDevices ports.AudioDeviceProvider
	window       ports.WindowController
}

func NewPanelHandler(
	composition ports.CompositionService,
	audio ports.AudioService,
	sessions ports.SessionService,
	discovery ports.DiscoveryService,
	capture ports.CaptureProvider,
	cameras ports.CameraProvider,
	audioDevices ports.AudioDeviceProvider,
	window ports.WindowController,
) *PanelHandler {
	return &PanelHandler{
		composition:  composition,
		audio:        audio,
		sessions:     sessions,
		discovery:    discovery,
		capture:      capture,
		cameras:      cameras,
		audioDevices: audioDevices,
		window:       window,
	}
}

// SetupReadRoutes mounts the pure-read endpoints. Browser overlay pages
// fetch these without a panel token, so the caller guards them with the
// optional auth middleware rather than the strict one.
func (h *PanelHandler) SetupReadRoutes(router gin.IRouter) {
	api := router.Group("/api/v1")
	{
		api.GET("/state", h.GetState)
		api.GET("/placements/:kind/:id", h.ResolvePlacement)
	}
}

func (h *PanelHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/api/v1")
	{
		api.POST("/scenes", h.AddScene)
		api.DELETE("/scenes/:id", h.RemoveScene)
		api.PUT("/scenes/:id/name", h.RenameScene)
		api.POST("/scenes/:id/save", h.SaveCurrentToScene)
		api.POST("/scenes/:id/activate", h.ActivateScene)
		api.POST("/scenes/:id/switch", h.SwitchScene)

		api.GET("/capture/sources", h.ListCaptureSources)
		api.PUT("/capture/source", h.SetCaptureSource)
		api.DELETE("/capture/source", h.ClearCaptureSource)

		api.PUT("/webcams/:id", h.UpdateWebcam)
		api.POST("/webcams/:id/toggle", h.ToggleWebcam)
		api.POST("/webcams/:id/move", h.MoveWebcam)
		api.POST("/webcams/:id/resize", h.ResizeWebcam)

		api.PUT("/phones/:id", h.UpdatePhone)
		api.POST("/phones/:id/toggle", h.TogglePhone)
		api.POST("/phones/:id/move", h.MovePhone)
		api.POST("/phones/:id/resize", h.ResizePhone)

		api.POST("/pip/swap", h.SwapPiPFront)

		api.POST("/overlays", h.AddOverlay)
		api.DELETE("/overlays/:id", h.RemoveOverlay)
		api.POST("/overlays/:id/toggle", h.ToggleOverlay)
		api.POST("/overlays/:id/front", h.BringOverlayToFront)
		api.PUT("/overlays/:id", h.UpdateOverlay)
		api.PUT("/overlays/:id/opacity", h.SetOverlayOpacity)

		api.PUT("/transition", h.SetTransitionConfig)

		api.GET("/devices/audio", h.ListAudioDevices)
		api.GET("/devices/cameras", h.ListCameras)
		api.POST("/devices/saved", h.SaveDevice)
		api.DELETE("/devices/saved/:serial", h.RemoveDevice)
		api.POST("/devices/saved/:serial/reconnect", h.ReconnectDevice)

		api.GET("/audio/tracks", h.ListTracks)
		api.PUT("/audio/tracks/:id/volume", h.SetVolume)
		api.PUT("/audio/tracks/:id/muted", h.SetMuted)
		api.PUT("/audio/tracks/:id/device", h.SetTrackDevice)
		api.POST("/audio/tracks/:id/meter", h.StartMeter)
		api.DELETE("/audio/tracks/:id/meter", h.StopMeter)

		api.POST("/presets", h.AddPreset)
		api.DELETE("/presets/:id", h.RemovePreset)
		api.POST("/presets/:id/apply", h.ApplyPreset)

		api.POST("/sessions", h.StartSession)
		api.POST("/sessions/end", h.EndSession)
		api.POST("/sessions/markers", h.AddMarker)
		api.DELETE("/sessions/markers/:id", h.RemoveMarker)
		api.POST("/sessions/:id/export", h.ExportSession)

		api.POST("/window/:action", h.ControlWindow)
	}
}

func (h *PanelHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.composition.SnapshotState()})
}

// --- Scenes ---

func (h *PanelHandler) AddScene(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=1,max=100"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	scene, err := h.composition.AddScene(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"scene": scene})
}

func (h *PanelHandler) RemoveScene(c *gin.Context) {
	if err := h.composition.RemoveScene(c.Request.Context(), domain.SceneID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) RenameScene(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=1,max=100"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.RenameScene(c.Request.Context(), domain.SceneID(c.Param("id")), req.Name); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) SaveCurrentToScene(c *gin.Context) {
	if err := h.composition.SaveCurrentToScene(c.Request.Context(), domain.SceneID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ActivateScene(c *gin.Context) {
	if err := h.composition.ActivateScene(c.Request.Context(), domain.SceneID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) SwitchScene(c *gin.Context) {
	if err := h.composition.SwitchSceneWithTransition(c.Request.Context(), domain.SceneID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// --- Capture ---

func (h *PanelHandler) ListCaptureSources(c *gin.Context) {
	if h.capture == nil {
		c.JSON(http.StatusOK, gin.H{"sources": []*domain.CaptureSource{}})
		return
	}

	sources, err := h.capture.ListSources(c.Request.Context())
	if err != nil {
		c.Error(errors.NewAcquisitionError("capture sources", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (h *PanelHandler) SetCaptureSource(c *gin.Context) {
	var req domain.CaptureSource
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.SetCaptureSource(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ClearCaptureSource(c *gin.Context) {
	if err := h.composition.ClearCaptureSource(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Placement ---

type placementUpdateRequest struct {
	Enabled        *bool              `json:"enabled"`
	Position       *string            `json:"position"`
	CustomPosition *domain.Point      `json:"customPosition"`
	Size           *string            `json:"size"`
	CustomSize     *domain.Dimensions `json:"customSize"`
}

func (r placementUpdateRequest) toUpdate() ports.PlacementUpdate {
	update := ports.PlacementUpdate{
		Enabled:        r.Enabled,
		CustomPosition: r.CustomPosition,
		CustomSize:     r.CustomSize,
	}
	if r.Position != nil {
		mode := domain.PositionMode(*r.Position)
		update.Position = &mode
	}
	if r.Size != nil {
		mode := domain.SizeMode(*r.Size)
		update.Size = &mode
	}
	return update
}

func (h *PanelHandler) UpdateWebcam(c *gin.Context) {
	var req placementUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.UpdateWebcam(c.Request.Context(), domain.SourceID(c.Param("id")), req.toUpdate()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ToggleWebcam(c *gin.Context) {
	if err := h.composition.ToggleWebcam(c.Request.Context(), domain.SourceID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) MoveWebcam(c *gin.Context) {
	var req domain.Point
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.MoveWebcam(c.Request.Context(), domain.SourceID(c.Param("id")), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ResizeWebcam(c *gin.Context) {
	var req domain.Dimensions
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.ResizeWebcam(c.Request.Context(), domain.SourceID(c.Param("id")), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) UpdatePhone(c *gin.Context) {
	var req placementUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.UpdatePhone(c.Request.Context(), domain.SourceID(c.Param("id")), req.toUpdate()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) TogglePhone(c *gin.Context) {
	if err := h.composition.TogglePhone(c.Request.Context(), domain.SourceID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) MovePhone(c *gin.Context) {
	var req domain.Point
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.MovePhone(c.Request.Context(), domain.SourceID(c.Param("id")), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ResizePhone(c *gin.Context) {
	var req domain.Dimensions
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.ResizePhone(c.Request.Context(), domain.SourceID(c.Param("id")), req); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) SwapPiPFront(c *gin.Context) {
	if err := h.composition.SwapPiPFront(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Overlays ---

func (h *PanelHandler) AddOverlay(c *gin.Context) {
	// Opacity binds as a pointer so an explicit 0 (fully transparent)
	// is distinguishable from an omitted field.
	var req struct {
		domain.Overlay
		Opacity *int `json:"opacity"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}
	if req.Opacity != nil {
		req.Overlay.Opacity = *req.Opacity
	} else {
		req.Overlay.Opacity = 100
	}

	if err := h.composition.AddOverlay(c.Request.Context(), &req.Overlay); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"overlay": req.Overlay})
}

func (h *PanelHandler) RemoveOverlay(c *gin.Context) {
	if err := h.composition.RemoveOverlay(c.Request.Context(), domain.OverlayID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ToggleOverlay(c *gin.Context) {
	if err := h.composition.ToggleOverlay(c.Request.Context(), domain.OverlayID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) BringOverlayToFront(c *gin.Context) {
	if err := h.composition.BringOverlayToFront(c.Request.Context(), domain.OverlayID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) UpdateOverlay(c *gin.Context) {
	var req placementUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.UpdateOverlay(c.Request.Context(), domain.OverlayID(c.Param("id")), req.toUpdate()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) SetOverlayOpacity(c *gin.Context) {
	var req struct {
		Opacity *int `json:"opacity" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.SetOverlayOpacity(c.Request.Context(), domain.OverlayID(c.Param("id")), *req.Opacity); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Transition ---

func (h *PanelHandler) SetTransitionConfig(c *gin.Context) {
	var req struct {
		Type       string `json:"type" binding:"required"`
		DurationMs int    `json:"duration_ms" binding:"required,min=1"`
		Easing     string `json:"easing"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	cfg := domain.TransitionConfig{
		Type:     domain.TransitionType(req.Type),
		Duration: time.Duration(req.DurationMs) * time.Millisecond,
		Easing:   req.Easing,
	}
	if err := h.composition.SetTransitionConfig(c.Request.Context(), cfg); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Placement resolution ---

func (h *PanelHandler) ResolvePlacement(c *gin.Context) {
	kind := geometry.ElementKind(c.Param("kind"))
	switch kind {
	case geometry.KindWebcam, geometry.KindPhone, geometry.KindOverlay:
	default:
		c.Error(errors.NewInvalidInputError("unknown element kind"))
		return
	}

	rect, err := h.composition.ResolvePlacement(c.Param("id"), kind)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rect": rect})
}

// --- Devices ---

func (h *PanelHandler) ListAudioDevices(c *gin.Context) {
	if h.audioDevices == nil {
		c.JSON(http.StatusOK, gin.H{"devices": []*domain.AudioDevice{}})
		return
	}

	devices, err := h.audioDevices.ListDevices(c.Request.Context())
	if err != nil {
		c.Error(errors.NewAcquisitionError("audio devices", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

func (h *PanelHandler) ListCameras(c *gin.Context) {
	if h.cameras == nil {
		c.JSON(http.StatusOK, gin.H{"cameras": []*domain.AudioDevice{}})
		return
	}

	cameras, err := h.cameras.ListCameras(c.Request.Context())
	if err != nil {
		c.Error(errors.NewAcquisitionError("cameras", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"cameras": cameras})
}

func (h *PanelHandler) SaveDevice(c *gin.Context) {
	var req domain.SavedDevice
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.composition.SaveDevice(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) RemoveDevice(c *gin.Context) {
	if err := h.composition.RemoveDevice(c.Request.Context(), c.Param("serial")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ReconnectDevice(c *gin.Context) {
	if h.discovery == nil {
		c.Error(errors.NewInternalError("device discovery is not available"))
		return
	}

	if err := h.discovery.Reconnect(c.Request.Context(), c.Param("serial")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Audio ---

func (h *PanelHandler) ListTracks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tracks": h.audio.Tracks()})
}

func (h *PanelHandler) SetVolume(c *gin.Context) {
	var req struct {
		Volume *int `json:"volume" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.audio.SetVolume(c.Request.Context(), domain.TrackID(c.Param("id")), *req.Volume); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) SetMuted(c *gin.Context) {
	var req struct {
		Muted *bool `json:"muted" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.audio.SetMuted(c.Request.Context(), domain.TrackID(c.Param("id")), *req.Muted); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) SetTrackDevice(c *gin.Context) {
	var req struct {
		DeviceID string `json:"device_id" binding:"required"`
		Label    string `json:"label"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.audio.SetTrackDevice(c.Request.Context(), domain.TrackID(c.Param("id")), req.DeviceID, req.Label); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) StartMeter(c *gin.Context) {
	if err := h.audio.StartMeter(c.Request.Context(), domain.TrackID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) StopMeter(c *gin.Context) {
	if err := h.audio.StopMeter(c.Request.Context(), domain.TrackID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Presets and sessions ---

func (h *PanelHandler) AddPreset(c *gin.Context) {
	var req domain.StreamPreset
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	if err := h.sessions.AddPreset(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"preset": req})
}

func (h *PanelHandler) RemovePreset(c *gin.Context) {
	if err := h.sessions.RemovePreset(c.Request.Context(), domain.PresetID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ApplyPreset(c *gin.Context) {
	if err := h.sessions.ApplyPreset(c.Request.Context(), domain.PresetID(c.Param("id"))); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) StartSession(c *gin.Context) {
	var req struct {
		Platforms []domain.PlatformKey `json:"platforms" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	session, err := h.sessions.StartSession(c.Request.Context(), req.Platforms)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *PanelHandler) EndSession(c *gin.Context) {
	if err := h.sessions.EndSession(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) AddMarker(c *gin.Context) {
	var req struct {
		Kind string `json:"kind" binding:"required"`
		Note string `json:"note" binding:"max=500"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	marker, err := h.sessions.AddMarker(c.Request.Context(), domain.MarkerKind(req.Kind), req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"marker": marker})
}

func (h *PanelHandler) RemoveMarker(c *gin.Context) {
	if err := h.sessions.RemoveMarker(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) ExportSession(c *gin.Context) {
	path, err := h.sessions.ExportSession(c.Request.Context(), domain.SessionID(c.Param("id")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

// --- Window chrome ---

func (h *PanelHandler) ControlWindow(c *gin.Context) {
	if h.window == nil {
		c.Error(errors.NewInternalError("window control is not available"))
		return
	}

	var err error
	switch c.Param("action") {
	case "minimize":
		err = h.window.Minimize()
	case "maximize":
		err = h.window.Maximize()
	case "close":
		err = h.window.Close()
	default:
		c.Error(errors.NewInvalidInputError("unknown window action"))
		return
	}
	if err != nil {
		c.Error(errors.NewAcquisitionError("window control", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps domain sentinel errors to HTTP statuses. Anything
// unrecognized falls through to the error middleware as internal.
func (h *PanelHandler) respondError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, domain.ErrSceneNotFound),
		stderrors.Is(err, domain.ErrOverlayNotFound),
		stderrors.Is(err, domain.ErrTrackNotFound),
		stderrors.Is(err, domain.ErrPresetNotFound),
		stderrors.Is(err, domain.ErrWebcamNotFound),
		stderrors.Is(err, domain.ErrPhoneNotFound),
		stderrors.Is(err, domain.ErrDeviceNotFound),
		stderrors.Is(err, domain.ErrNoSession):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case stderrors.Is(err, domain.ErrTransitionInProgress),
		stderrors.Is(err, domain.ErrSessionActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.Is(err, domain.ErrLastScene),
		stderrors.Is(err, domain.ErrNoPlatforms):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case stderrors.Is(err, domain.ErrSourceInactive):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		if errors.IsAppError(err) {
			c.Error(err)
			return
		}
		c.Error(errors.WrapError(err, errors.ErrCodeInternal, "operation failed", http.StatusInternalServerError))
	}
}
