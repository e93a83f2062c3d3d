package domain

// HostEventType names the fire-and-forget notifications the host process
// pushes into the core over the bridge.
type HostEventType string

const (
	EventMirroringStarted HostEventType = "mirroring:started"
	EventMirroringStopped HostEventType = "mirroring:stopped"
	EventMirroringError   HostEventType = "mirroring:error"
	EventStreamState      HostEventType = "stream:state"
	EventStreamStats      HostEventType = "stream:stats"
	EventStreamDuration   HostEventType = "stream:duration"
	EventStreamError      HostEventType = "stream:error"
	EventDepsProgress     HostEventType = "deps:progress"
)

// HostEvent is one inbound notification. Payload fields are populated
// according to Type; unrelated fields stay zero.
type HostEvent struct {
	Type HostEventType `json:"type"`

	DeviceSerial string `json:"deviceSerial,omitempty"`
	DeviceName   string `json:"deviceName,omitempty"`

	StreamStatus string  `json:"streamStatus,omitempty"`
	FPS          float64 `json:"fps,omitempty"`
	Bitrate      int     `json:"bitrate,omitempty"`
	Seconds      int     `json:"seconds,omitempty"`

	DepType string `json:"depType,omitempty"`
	Percent int    `json:"percent,omitempty"`

	Message string `json:"message,omitempty"`
}

// ChangeKind labels an outbound state-change notification fanned out to
// connected panel clients.
type ChangeKind string

const (
	ChangeScenes     ChangeKind = "scenes"
	ChangeCapture    ChangeKind = "capture"
	ChangePlacement  ChangeKind = "placement"
	ChangeOverlays   ChangeKind = "overlays"
	ChangeAudio      ChangeKind = "audio"
	ChangeTransition ChangeKind = "transition"
	ChangePresets    ChangeKind = "presets"
	ChangeSession    ChangeKind = "session"
	ChangeDevices    ChangeKind = "devices"
)

// StateChange is the outbound notification shape.
type StateChange struct {
	Kind ChangeKind `json:"kind"`
}
