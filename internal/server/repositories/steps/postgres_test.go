package steps

import (
	"context"
	"database/sql"
	"errors"
	"testing"

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

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*technique_id,\s*variant,\s*idx\s+FROM\s+technique_step\s+WHERE\s+id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "technique_id", "variant", "idx"}).
		AddRow("s-3", "t-1", "gi", 2)
	mock.ExpectQuery(q).WithArgs("s-3").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "s-3")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.TechniqueID != "t-1" || got.Variant != "gi" || got.Idx != 2 {
		t.Fatalf("unexpected step: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestGetByTrackIdx_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*technique_id,\s*variant,\s*idx\s+FROM\s+technique_step\s+WHERE\s+technique_id\s*=\s*\$1\s+AND\s+variant\s*=\s*\$2\s+AND\s+idx\s*=\s*\$3\s*$`

	rows := sqlmock.NewRows([]string{"id", "technique_id", "variant", "idx"}).
		AddRow("s-2", "t-1", "gi", 1)
	mock.ExpectQuery(q).WithArgs("t-1", "gi", 1).WillReturnRows(rows)

	got, err := repo.GetByTrackIdx(context.Background(), "t-1", "gi", 1)
	if err != nil {
		t.Fatalf("GetByTrackIdx error: %v", err)
	}
	if got.ID != "s-2" {
		t.Fatalf("unexpected step: %+v", got)
	}
}

func TestGetByTrackIdx_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db down"))

	_, err := repo.GetByTrackIdx(context.Background(), "t-1", "gi", 0)
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
