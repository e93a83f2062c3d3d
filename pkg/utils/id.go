package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateSceneID generates a unique scene ID
func GenerateSceneID() string {
	return GenerateID("scene")
}

// GenerateOverlayID generates a unique overlay ID
func GenerateOverlayID() string {
	return GenerateID("overlay")
}

// GeneratePresetID generates a unique preset ID
func GeneratePresetID() string {
	return GenerateID("preset")
}

// GenerateSourceID generates a unique capture-source ID
func GenerateSourceID() string {
	return GenerateID("source")
}

// GenerateID generates a prefixed unique ID
func GenerateID(prefix string) string {
	timestamp := time.Now().UnixNano()
	b := make([]byte, 4)
	rand.Read(b)
	return fmt.Sprintf("%s_%d_%s", prefix, timestamp, hex.EncodeToString(b))
}

// GenerateRequestID generates a unique request ID
func GenerateRequestID() string {
	timestamp := time.Now().UnixNano()
	b := make([]byte, 4)
	rand.Read(b)
	return fmt.Sprintf("req_%d_%s", timestamp, hex.EncodeToString(b))
}
