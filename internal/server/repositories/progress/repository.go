package progress

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert records a completion for (userID, stepID). It reports whether a
	// new row was inserted; false means the completion already existed and
	// the call was an idempotent no-op.
	Upsert(ctx context.Context, userID, stepID string) (bool, error)
	Exists(ctx context.Context, userID, stepID string) (bool, error)
	CountForUser(ctx context.Context, userID string) (int, error)
	// CompletionDays returns the distinct UTC days on which the user completed
	// at least one step, most recent first.
	CompletionDays(ctx context.Context, userID string) ([]time.Time, error)
	// CountCompletedTechniques counts techniques for which the user has
	// completed every step of at least one variant track.
	CountCompletedTechniques(ctx context.Context, userID string) (int, error)
}
