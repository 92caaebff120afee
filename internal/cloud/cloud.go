// Package cloud defines the seam for a future remote save backend.
// There is no real provider yet; the dispatcher treats a nil Provider
// as an empty remote save.
package cloud

import (
	"context"

	"plank/internal/models"
)

// Provider fetches and stores board snapshots on a remote backend.
type Provider interface {
	// Fetch retrieves the most recent remote board set.
	Fetch(ctx context.Context) ([]models.Board, error)

	// Push uploads the given board set.
	Push(ctx context.Context, boards []models.Board) error
}
