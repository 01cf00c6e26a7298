// Package progress provides the PostgreSQL-backed repository for per-user
// step completion records and the aggregate counts that feed achievement
// evaluation. Records are append-only; history is never rewritten.
package progress

import (
	"context"
	"fmt"
	"time"

	"gripgate/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts a completion record unless one already exists. On conflict
// the existing row is left untouched, preserving the original completed_at.
func (r *PostgresRepository) Upsert(ctx context.Context, userID, stepID string) (bool, error) {
	query :=
		`INSERT INTO user_step_progress (user_id, technique_step_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, technique_step_id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, userID, stepID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}

	return n == 1, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, stepID string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM user_step_progress
		   WHERE user_id = $1 AND technique_step_id = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, stepID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM user_step_progress WHERE user_id = $1`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

// CompletionDays returns distinct UTC completion days, most recent first.
// The streak calculation happens in the service layer.
func (r *PostgresRepository) CompletionDays(ctx context.Context, userID string) ([]time.Time, error) {
	query :=
		`SELECT DISTINCT (completed_at AT TIME ZONE 'UTC')::date AS day
		 FROM user_step_progress
		 WHERE user_id = $1
		 ORDER BY day DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return days, nil
}

// CountCompletedTechniques counts techniques with at least one fully
// completed variant track for the user.
func (r *PostgresRepository) CountCompletedTechniques(ctx context.Context, userID string) (int, error) {
	query :=
		`SELECT COUNT(DISTINCT technique_id) FROM (
		   SELECT ts.technique_id AS technique_id
		   FROM technique_step ts
		   LEFT JOIN user_step_progress usp
		     ON usp.technique_step_id = ts.id AND usp.user_id = $1
		   GROUP BY ts.technique_id, ts.variant
		   HAVING COUNT(*) = COUNT(usp.technique_step_id)
		 ) done
		 `

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
