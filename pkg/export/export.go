package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/pkg/utils"
)

// Report is the exported shape of one finished session.
type Report struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	SessionID  domain.SessionID     `json:"sessionId"`
	Platforms  []domain.PlatformKey `json:"platforms"`
	StartedAt  time.Time            `json:"startedAt"`
	EndedAt    *time.Time           `json:"endedAt,omitempty"`
	Duration   string               `json:"duration"`
	Stats      domain.SessionStats  `json:"stats"`
	Markers    []MarkerLine         `json:"markers"`
}

// MarkerLine is one marker rendered for the report.
type MarkerLine struct {
	Kind      domain.MarkerKind `json:"kind"`
	Note      string            `json:"note,omitempty"`
	Offset    string            `json:"offset"`
	Timestamp string            `json:"timestamp"`
}

// Storage defines where exported reports land.
type Storage interface {
	Save(ctx context.Context, name string, data io.Reader) error
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Service writes session reports to storage.
type Service struct {
	storage Storage
	version string
}

func NewService(storage Storage, version string) *Service {
	return &Service{
		storage: storage,
		version: version,
	}
}

// Export renders the session into a JSON report and writes it. Returns
// the report name.
func (s *Service) Export(ctx context.Context, session *domain.StreamSession) (string, error) {
	report := Report{
		Version:    s.version,
		ExportedAt: time.Now(),
		SessionID:  session.ID,
		Platforms:  session.Platforms,
		StartedAt:  session.StartedAt,
		EndedAt:    session.EndedAt,
		Duration:   utils.FormatDuration(session.Duration),
		Stats:      session.Stats,
		Markers:    make([]MarkerLine, 0, len(session.Markers)),
	}
	for _, m := range session.Markers {
		report.Markers = append(report.Markers, MarkerLine{
			Kind:      m.Kind,
			Note:      m.Note,
			Offset:    utils.FormatDuration(m.Offset),
			Timestamp: utils.FormatTimestamp(m.CreatedAt),
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal session report: %w", err)
	}

	name := fmt.Sprintf("session-%s-%s.json", session.StartedAt.Format("20060102-150405"), session.ID)
	if err := s.storage.Save(ctx, name, &byteReader{data: data}); err != nil {
		return "", fmt.Errorf("failed to save session report: %w", err)
	}
	return name, nil
}

// ListReports lists previously exported reports.
func (s *Service) ListReports(ctx context.Context) ([]string, error) {
	return s.storage.List(ctx, "session-")
}

// byteReader implements io.Reader for byte slice
type byteReader struct {
	data []byte
	pos  int
}

func (br *byteReader) Read(p []byte) (n int, err error) {
	if br.pos >= len(br.data) {
		return 0, io.EOF
	}
	n = copy(p, br.data[br.pos:])
	br.pos += n
	return n, nil
}
