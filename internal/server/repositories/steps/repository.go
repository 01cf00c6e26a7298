package steps

import (
	"context"

	"gripgate/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Step, error)
	GetByTrackIdx(ctx context.Context, techniqueID, variant string, idx int) (*models.Step, error)
}
