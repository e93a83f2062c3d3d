package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("scene-1", "scene ID"))
	assert.NoError(t, ValidateID("track_mic", "track ID"))
	assert.Error(t, ValidateID("", "scene ID"))
	assert.Error(t, ValidateID("has spaces", "scene ID"))
	assert.Error(t, ValidateID("emoji🔥", "scene ID"))
}

func TestValidateSceneName(t *testing.T) {
	assert.NoError(t, ValidateSceneName("Gameplay"))
	assert.NoError(t, ValidateSceneName("  padded  "))
	assert.Error(t, ValidateSceneName(""))
	assert.Error(t, ValidateSceneName("   "))
}

func TestValidateDeviceSerial(t *testing.T) {
	assert.NoError(t, ValidateDeviceSerial("R58M123ABC"))
	assert.NoError(t, ValidateDeviceSerial("192.168.1.12:5555"))
	assert.Error(t, ValidateDeviceSerial(""))
	assert.Error(t, ValidateDeviceSerial("bad serial"))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/overlay"))
	assert.NoError(t, ValidateURL("http://localhost:8080"))
	assert.NoError(t, ValidateURL("file:///home/user/overlay.html"))
	assert.Error(t, ValidateURL(""))
	assert.Error(t, ValidateURL("ftp://example.com"))
	assert.Error(t, ValidateURL("https://"))
}

func TestValidateVolume(t *testing.T) {
	assert.NoError(t, ValidateVolume(0))
	assert.NoError(t, ValidateVolume(100))
	assert.Error(t, ValidateVolume(-1))
	assert.Error(t, ValidateVolume(101))
}

func TestValidateResolution(t *testing.T) {
	assert.NoError(t, ValidateResolution("1920x1080"))
	assert.NoError(t, ValidateResolution("3840x2160"))
	assert.Error(t, ValidateResolution(""))
	assert.Error(t, ValidateResolution("1080p"))
	assert.Error(t, ValidateResolution("1920 x 1080"))
}

func TestValidateFPS(t *testing.T) {
	assert.NoError(t, ValidateFPS(30))
	assert.NoError(t, ValidateFPS(240))
	assert.Error(t, ValidateFPS(0))
	assert.Error(t, ValidateFPS(241))
}

func TestValidateBitrate(t *testing.T) {
	assert.NoError(t, ValidateBitrate(6000))
	assert.Error(t, ValidateBitrate(99))
	assert.Error(t, ValidateBitrate(50001))
}

func TestValidateStringLength(t *testing.T) {
	assert.NoError(t, ValidateStringLength("abc", 1, 5, "note"))
	assert.Error(t, ValidateStringLength("", 1, 5, "note"))
	assert.Error(t, ValidateStringLength("toolong", 1, 5, "note"))
	// Rune count, not byte count
	assert.NoError(t, ValidateStringLength("ごはん", 1, 5, "note"))
}
