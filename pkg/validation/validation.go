package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// IDRegex validates scene/overlay/track ID format
	IDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// SerialRegex validates mobile-device serial format
	SerialRegex = regexp.MustCompile(`^[a-zA-Z0-9._:-]+$`)
)

// ValidateID validates an entity identifier
func ValidateID(id, fieldName string) error {
	if id == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if len(id) > 100 {
		return fmt.Errorf("%s is too long (max 100 characters)", fieldName)
	}
	if !IDRegex.MatchString(id) {
		return fmt.Errorf("invalid %s format", fieldName)
	}
	return nil
}

// ValidateSceneName validates a scene name
func ValidateSceneName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("scene name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("scene name is too long (max 100 characters)")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("scene name contains invalid characters")
	}
	return nil
}

// ValidateDeviceSerial validates a mobile-device serial
func ValidateDeviceSerial(serial string) error {
	if serial == "" {
		return fmt.Errorf("device serial is required")
	}
	if len(serial) > 64 {
		return fmt.Errorf("device serial is too long (max 64 characters)")
	}
	if !SerialRegex.MatchString(serial) {
		return fmt.Errorf("invalid device serial format")
	}
	return nil
}

// ValidateURL validates overlay URL format
func ValidateURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file" {
		return fmt.Errorf("invalid URL scheme (must be http, https, or file)")
	}
	if u.Scheme != "file" && u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

// ValidatePercent validates a 0..100 percentage value
func ValidatePercent(v float64, fieldName string) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100", fieldName)
	}
	return nil
}

// ValidateVolume validates a mixer volume value
func ValidateVolume(volume int) error {
	if volume < 0 {
		return fmt.Errorf("volume must be at least 0")
	}
	if volume > 100 {
		return fmt.Errorf("volume is too high (max 100)")
	}
	return nil
}

// ValidateResolution validates a "WxH" resolution string
func ValidateResolution(res string) error {
	if res == "" {
		return fmt.Errorf("resolution is required")
	}
	if !regexp.MustCompile(`^\d{3,5}x\d{3,5}$`).MatchString(res) {
		return fmt.Errorf("invalid resolution format (expected WxH)")
	}
	return nil
}

// ValidateFPS validates a frames-per-second value
func ValidateFPS(fps int) error {
	if fps < 1 {
		return fmt.Errorf("fps must be at least 1")
	}
	if fps > 240 {
		return fmt.Errorf("fps is too high (max 240)")
	}
	return nil
}

// ValidateBitrate validates bitrate value
func ValidateBitrate(bitrate int) error {
	if bitrate < 100 {
		return fmt.Errorf("bitrate must be at least 100 kbps")
	}
	if bitrate > 50000 {
		return fmt.Errorf("bitrate is too high (max 50000 kbps)")
	}
	return nil
}

// ValidateNonEmptyString validates that string is not empty after trimming
func ValidateNonEmptyString(s, fieldName string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateStringLength validates string length
func ValidateStringLength(s string, min, max int, fieldName string) error {
	length := utf8.RuneCountInString(s)
	if length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if length > max {
		return fmt.Errorf("%s is too long (max %d characters)", fieldName, max)
	}
	return nil
}
