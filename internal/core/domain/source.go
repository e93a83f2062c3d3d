package domain

// WebcamSource is a camera picture-in-picture element bound to a host
// video device.
type WebcamSource struct {
	Placeable
	ID          SourceID `json:"id"`
	Name        string   `json:"name"`
	DeviceID    string   `json:"deviceId,omitempty"`
	DeviceLabel string   `json:"deviceLabel,omitempty"`
}

// PhoneSource is a mirrored mobile-device picture-in-picture element.
// WindowHandle references the mirroring helper's window while a mirror
// session is running; it is ephemeral and never persisted.
type PhoneSource struct {
	Placeable
	ID           SourceID `json:"id"`
	Name         string   `json:"name"`
	Serial       string   `json:"serial,omitempty"`
	WindowHandle string   `json:"-"`
	Mirroring    bool     `json:"-"`
}

// SavedDevice remembers a mobile device's serial to WiFi address mapping
// so it can be reconnected without a cable. Keyed by serial.
type SavedDevice struct {
	Serial string `json:"serial"`
	Name   string `json:"name"`
	WiFiIP string `json:"wifiIp"`
}
