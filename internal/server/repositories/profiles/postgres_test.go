package profiles

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"gripgate/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetByUserID_WithTrial(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	trialEnd := time.Now().Add(48 * time.Hour)
	rows := sqlmock.NewRows([]string{"user_id", "entitlement", "trial_end_at"}).
		AddRow("u-1", "trial", trialEnd)
	mock.ExpectQuery(`SELECT\s+user_id,\s*entitlement,\s*trial_end_at\s+FROM\s+user_profile`).
		WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByUserID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if got.Entitlement != "trial" || got.TrialEndAt == nil || !got.TrialEndAt.Equal(trialEnd) {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestGetByUserID_NullTrialEnd(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "entitlement", "trial_end_at"}).
		AddRow("u-1", "premium", nil)
	mock.ExpectQuery(`SELECT`).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.GetByUserID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if got.Entitlement != "premium" || got.TrialEndAt != nil {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestGetByUserID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("u-none").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserID(context.Background(), "u-none")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
