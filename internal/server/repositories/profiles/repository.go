package profiles

import (
	"context"

	"gripgate/internal/server/models"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
}
