package out

import (
	"context"

	"fathom/internal/modules/progression/domain"
)

// StateStore is the single seam through which progression snapshots are read and written.
// Load returns a fresh state when the user has none yet.
type StateStore interface {
	Load(ctx context.Context, userID string) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}

type CatalogStore interface {
	Load(ctx context.Context) (domain.Catalog, error)
}

type EventLog interface {
	Append(ctx context.Context, event domain.Event) error
	Recent(ctx context.Context, userID string, limit int) ([]domain.Event, error)
}
