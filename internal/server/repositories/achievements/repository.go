package achievements

import (
	"context"

	"gripgate/internal/server/models"
)

type Repository interface {
	Catalog(ctx context.Context) ([]*models.Achievement, error)
	HeldIDs(ctx context.Context, userID string) (map[int64]struct{}, error)
	// Unlock appends unlock rows for the given achievement ids, skipping any
	// already held, and reports how many were newly unlocked.
	Unlock(ctx context.Context, userID string, achievementIDs []int64) (int, error)
}
