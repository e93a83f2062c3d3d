package services

import (
	"context"
	"sync"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func newTestStore() *Store {
	return NewStore(domain.DefaultState(), nil, nil, testLogger())
}

type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Save(ctx context.Context, state *domain.PersistedState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockStateRepository) Load(ctx context.Context) (*domain.PersistedState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PersistedState), args.Error(1)
}

type MockNotifier struct {
	mu      sync.Mutex
	changes []domain.StateChange
}

func (m *MockNotifier) Notify(change domain.StateChange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = append(m.changes, change)
}

func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.changes)
}

// recordingMetrics counts recorder calls without asserting order.
type recordingMetrics struct {
	mu           sync.Mutex
	switches     int
	dropped      map[string]int
	meterLevels  map[string]int
	countUpdates int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		dropped:     make(map[string]int),
		meterLevels: make(map[string]int),
	}
}

func (r *recordingMetrics) SceneSwitched() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.switches++
}

func (r *recordingMetrics) ReconcileDropped(collection string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped[collection]++
}

func (r *recordingMetrics) ActiveCounts(scenes, overlays, tracks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countUpdates++
}

func (r *recordingMetrics) MeterLevel(trackID string, level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meterLevels[trackID] = level
}

func (r *recordingMetrics) Switches() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.switches
}

func (r *recordingMetrics) Dropped(collection string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped[collection]
}

type MockAudioStream struct {
	mock.Mock
}

func (m *MockAudioStream) ReadFrequencyData(buf []byte) (int, error) {
	args := m.Called(buf)
	return args.Int(0), args.Error(1)
}

func (m *MockAudioStream) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockAudioProvider struct {
	mock.Mock
}

func (m *MockAudioProvider) ListDevices(ctx context.Context) ([]*domain.AudioDevice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AudioDevice), args.Error(1)
}

func (m *MockAudioProvider) Acquire(ctx context.Context, deviceID string, trackType domain.TrackType) (ports.AudioStream, error) {
	args := m.Called(ctx, deviceID, trackType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.AudioStream), args.Error(1)
}

type MockMirrorProvider struct {
	mock.Mock
}

func (m *MockMirrorProvider) Start(ctx context.Context, serial string, placement ports.MirrorPlacement) error {
	args := m.Called(ctx, serial, placement)
	return args.Error(0)
}

func (m *MockMirrorProvider) StartWiFi(ctx context.Context, address string, placement ports.MirrorPlacement) error {
	args := m.Called(ctx, address, placement)
	return args.Error(0)
}

func (m *MockMirrorProvider) Stop(ctx context.Context, serial string) error {
	args := m.Called(ctx, serial)
	return args.Error(0)
}

type MockChannelAPI struct {
	mock.Mock
}

func (m *MockChannelAPI) Fetch(ctx context.Context, platform domain.PlatformKey) (*ports.ChannelInfo, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ChannelInfo), args.Error(1)
}

func (m *MockChannelAPI) Update(ctx context.Context, platform domain.PlatformKey, title, category string) error {
	args := m.Called(ctx, platform, title, category)
	return args.Error(0)
}
