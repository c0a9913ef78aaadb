package usecase

import (
	"context"
	"encoding/json"

	"recon-insights/internal/domain"
)

// SnapshotSource defines the interface for fetching raw reconciliation data.
// The usecase layer depends on this interface, not on a concrete upstream.
//
//go:generate mockgen -destination=mocks/mock_source.go -source=interface.go SnapshotSource
type SnapshotSource interface {
	GetSnapshot(ctx context.Context, q domain.Query) (json.RawMessage, error)
	GetAgeing(ctx context.Context, q domain.Query) (json.RawMessage, error)
	GetGrowth(ctx context.Context, q domain.Query) (json.RawMessage, error)
}
