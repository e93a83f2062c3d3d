package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"castdeck/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedSession() *domain.StreamSession {
	started := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	ended := started.Add(2*time.Hour + 15*time.Minute)
	return &domain.StreamSession{
		ID:        "sess-1",
		Platforms: []domain.PlatformKey{domain.PlatformTwitch},
		StartedAt: started,
		EndedAt:   &ended,
		Duration:  ended.Sub(started),
		Markers: []domain.StreamMarker{
			{ID: "m-1", Kind: domain.MarkerEpic, Note: "pentakill", Offset: 30 * time.Minute, CreatedAt: started.Add(30 * time.Minute)},
			{ID: "m-2", Kind: domain.MarkerFail, Offset: time.Hour, CreatedAt: started.Add(time.Hour)},
		},
		Stats: domain.SessionStats{PeakViewers: 812, MessageCount: 4301, FollowCount: 57},
	}
}

func TestExportReportShape(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewService(storage, "1.0.0")

	name, err := svc.Export(context.Background(), finishedSession())
	require.NoError(t, err)
	assert.Equal(t, "session-20260314-200000-sess-1.json", name)

	data, err := os.ReadFile(filepath.Join(storage.basePath, name))
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "1.0.0", report.Version)
	assert.Equal(t, domain.SessionID("sess-1"), report.SessionID)
	assert.Equal(t, "2:15:00", report.Duration)
	assert.Equal(t, 812, report.Stats.PeakViewers)

	require.Len(t, report.Markers, 2)
	assert.Equal(t, domain.MarkerEpic, report.Markers[0].Kind)
	assert.Equal(t, "0:30:00", report.Markers[0].Offset)
	assert.Equal(t, "2026-03-14 20:30:00", report.Markers[0].Timestamp)
}

func TestListReports(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewService(storage, "1.0.0")

	_, err = svc.Export(context.Background(), finishedSession())
	require.NoError(t, err)

	names, err := svc.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.True(t, strings.HasPrefix(names[0], "session-"))
}

func TestFileStorageNeverLeavesTempFiles(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, storage.Save(context.Background(), "report.json", strings.NewReader(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"))
	}
}

func TestFileStorageDelete(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "report.json", strings.NewReader(`{}`)))
	require.NoError(t, storage.Delete(ctx, "report.json"))

	names, err := storage.List(ctx, "report")
	require.NoError(t, err)
	assert.Empty(t, names)
}
