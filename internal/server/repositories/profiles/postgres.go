// Package profiles provides the PostgreSQL-backed repository for entitlement
// profiles. Profiles are written by the billing system; this repo only reads.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gripgate/internal/common"
	"gripgate/internal/dbx"
	"gripgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUserID returns the user's profile, or common.ErrorNotFound if no
// profile row exists yet. Absence is an expected state for new users and
// maps to the free tier upstream.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query :=
		`SELECT user_id, entitlement, trial_end_at FROM user_profile
		 WHERE user_id = $1
		 `

	profile := &models.UserProfile{}
	var trialEnd sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&profile.UserID, &profile.Entitlement, &trialEnd)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if trialEnd.Valid {
		profile.TrialEndAt = &trialEnd.Time
	}

	return profile, nil
}
