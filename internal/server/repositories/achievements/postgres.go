// Package achievements provides the PostgreSQL-backed repository for the
// achievement catalog and per-user unlocks. Unlocks are append-only and
// conflict-safe, so granting is idempotent at the storage level.
package achievements

import (
	"context"
	"fmt"

	"gripgate/internal/dbx"
	"gripgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Catalog(ctx context.Context) ([]*models.Achievement, error) {
	query := `SELECT id, key FROM achievement`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var catalog []*models.Achievement
	for rows.Next() {
		a := &models.Achievement{}
		if err := rows.Scan(&a.ID, &a.Key); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		catalog = append(catalog, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return catalog, nil
}

func (r *PostgresRepository) HeldIDs(ctx context.Context, userID string) (map[int64]struct{}, error) {
	query := `SELECT achievement_id FROM user_achievement WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	held := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		held[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return held, nil
}

// Unlock inserts one row per achievement id; conflicts (already held) are
// skipped. The unlock set is tiny (four catalog rows), so per-row inserts
// inside the caller's transaction are fine.
func (r *PostgresRepository) Unlock(ctx context.Context, userID string, achievementIDs []int64) (int, error) {
	query :=
		`INSERT INTO user_achievement (user_id, achievement_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, achievement_id) DO NOTHING
		 `

	unlocked := 0
	for _, id := range achievementIDs {
		res, err := r.db.ExecContext(ctx, query, userID, id)
		if err != nil {
			return unlocked, fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return unlocked, fmt.Errorf("rows affected error: %w", err)
		}
		unlocked += int(n)
	}

	return unlocked, nil
}
