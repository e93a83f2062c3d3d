package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"
)

// MemoryStateRepository keeps the persisted blob in memory, round-tripped
// through JSON so it behaves exactly like the durable store. Used when
// Redis is disabled and by tests.
type MemoryStateRepository struct {
	mu   sync.RWMutex
	blob []byte
}

func NewMemoryStateRepository() ports.StateRepository {
	return &MemoryStateRepository{}
}

func (r *MemoryStateRepository) Save(ctx context.Context, state *domain.PersistedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.blob = data
	return nil
}

func (r *MemoryStateRepository) Load(ctx context.Context) (*domain.PersistedState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.blob == nil {
		return nil, nil
	}

	var state domain.PersistedState
	if err := json.Unmarshal(r.blob, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}
