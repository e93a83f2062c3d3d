package domain

import "time"

// MarkerKind tags a moment the streamer flagged during a live session.
type MarkerKind string

const (
	MarkerEpic   MarkerKind = "epic"
	MarkerFail   MarkerKind = "fail"
	MarkerClip   MarkerKind = "clip"
	MarkerBug    MarkerKind = "bug"
	MarkerInfo   MarkerKind = "info"
	MarkerCustom MarkerKind = "custom"
)

// StreamMarker is one timestamped annotation inside a session.
type StreamMarker struct {
	ID        string        `json:"id"`
	Kind      MarkerKind    `json:"kind"`
	Note      string        `json:"note,omitempty"`
	Offset    time.Duration `json:"offset"` // since session start
	CreatedAt time.Time     `json:"createdAt"`
}

// SessionStats accumulates summary numbers over a session's lifetime.
type SessionStats struct {
	PeakViewers  int `json:"peakViewers"`
	MessageCount int `json:"messageCount"`
	FollowCount  int `json:"followCount"`
}

// StreamSession is opened when the streamer goes live and closed when they
// go offline. Once ended it is append-only and kept in a capped,
// most-recent-first history.
type StreamSession struct {
	ID        SessionID      `json:"id"`
	PresetID  PresetID       `json:"presetId,omitempty"`
	Platforms []PlatformKey  `json:"platforms"`
	StartedAt time.Time      `json:"startedAt"`
	EndedAt   *time.Time     `json:"endedAt,omitempty"`
	Duration  time.Duration  `json:"duration"`
	Markers   []StreamMarker `json:"markers"`
	Stats     SessionStats   `json:"stats"`
}

// Live reports whether the session is still open.
func (s *StreamSession) Live() bool {
	return s.EndedAt == nil
}

// MaxSessionHistory caps how many past sessions are retained.
const MaxSessionHistory = 50
