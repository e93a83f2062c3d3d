package ports

import (
	"context"

	"castdeck/internal/core/domain"
)

// StateRepository stores the durable composition blob under a fixed
// namespaced key. Load returns (nil, nil) when nothing has been persisted
// yet; callers keep their defaults in that case.
type StateRepository interface {
	Save(ctx context.Context, state *domain.PersistedState) error
	Load(ctx context.Context) (*domain.PersistedState, error)
}
