package repository

import (
	"context"
	"time"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// SnapshotRepo persists the last synchronized plan listing so the sidebar
// and timeline stay readable without a backend. The snapshot is a cache
// of server state, never a write-ahead buffer: it is only ever replaced
// wholesale after a successful sync.
type SnapshotRepo interface {
	Replace(ctx context.Context, plans []*domain.Plan, syncedAt time.Time) error
	ListPlans(ctx context.Context) ([]*domain.Plan, error)
	SyncedAt(ctx context.Context) (*time.Time, error)
}
