package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureComposition records the overlay the handler forwards. The
// embedded interface satisfies the contract; only the methods a test
// exercises are overridden.
type captureComposition struct {
	ports.CompositionService
	added *domain.Overlay
}

func (c *captureComposition) AddOverlay(_ context.Context, o *domain.Overlay) error {
	c.added = o
	return nil
}

func (c *captureComposition) SnapshotState() *domain.State {
	return domain.DefaultState()
}

func newOverlayTestRouter(comp *captureComposition) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewPanelHandler(comp, nil, nil, nil, nil, nil, nil, nil)
	h.SetupRoutes(router)
	return router
}

func TestAddOverlayDefaultsOmittedOpacity(t *testing.T) {
	comp := &captureComposition{}
	router := newOverlayTestRouter(comp)

	body := `{"kind":"text","text":{"content":"Starting soon"}}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/overlays", strings.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, comp.added)
	assert.Equal(t, 100, comp.added.Opacity)
}

func TestAddOverlayKeepsExplicitZeroOpacity(t *testing.T) {
	comp := &captureComposition{}
	router := newOverlayTestRouter(comp)

	body := `{"kind":"text","text":{"content":"hidden until raid"},"opacity":0}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/overlays", strings.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, comp.added)
	assert.Equal(t, 0, comp.added.Opacity)
}

func TestReadRoutesServeWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewPanelHandler(&captureComposition{}, nil, nil, nil, nil, nil, nil, nil)
	h.SetupReadRoutes(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/state", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scene-live")
}
