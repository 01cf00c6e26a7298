// Package steps provides the PostgreSQL-backed repository for technique step
// lookups. Steps are read-only at runtime; writes happen only through the
// seed importer.
package steps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gripgate/internal/common"
	"gripgate/internal/dbx"
	"gripgate/internal/server/models"
)

// PostgresRepository implements step lookups over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the step with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Step, error) {
	query :=
		`SELECT id, technique_id, variant, idx FROM technique_step
		 WHERE id = $1
		 `

	step := &models.Step{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&step.ID, &step.TechniqueID, &step.Variant, &step.Idx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return step, nil
}

// GetByTrackIdx returns the step at position idx within a (technique, variant)
// track, or common.ErrorNotFound if no such step exists.
func (r *PostgresRepository) GetByTrackIdx(ctx context.Context, techniqueID, variant string, idx int) (*models.Step, error) {
	query :=
		`SELECT id, technique_id, variant, idx FROM technique_step
		 WHERE technique_id = $1 AND variant = $2 AND idx = $3
		 `

	step := &models.Step{}
	err := r.db.QueryRowContext(ctx, query, techniqueID, variant, idx).Scan(&step.ID, &step.TechniqueID, &step.Variant, &step.Idx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return step, nil
}
