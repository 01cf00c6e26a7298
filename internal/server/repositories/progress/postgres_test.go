package progress

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestUpsert_Inserted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+user_step_progress\s*\(user_id,\s*technique_step_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(user_id,\s*technique_step_id\)\s*DO\s+NOTHING\s*$`

	mock.ExpectExec(q).WithArgs("u-1", "s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.Upsert(context.Background(), "u-1", "s-1")
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if !inserted {
		t.Fatal("expected inserted=true for a new completion")
	}
}

func TestUpsert_Conflict_IsIdempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT`).WithArgs("u-1", "s-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.Upsert(context.Background(), "u-1", "s-1")
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if inserted {
		t.Fatal("expected inserted=false when the record already exists")
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT`).WillReturnError(errors.New("db down"))

	if _, err := repo.Upsert(context.Background(), "u-1", "s-1"); err == nil {
		t.Fatal("expected wrapped db error")
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery(`SELECT\s+EXISTS`).WithArgs("u-1", "s-1").WillReturnRows(rows)

	ok, err := repo.Exists(context.Background(), "u-1", "s-1")
	if err != nil {
		t.Fatalf("Exists error: %v", err)
	}
	if !ok {
		t.Fatal("expected exists=true")
	}
}

func TestCountForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(25)
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+user_step_progress`).
		WithArgs("u-1").WillReturnRows(rows)

	n, err := repo.CountForUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CountForUser error: %v", err)
	}
	if n != 25 {
		t.Fatalf("want 25, got %d", n)
	}
}

func TestCompletionDays(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	d1 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, -1)
	rows := sqlmock.NewRows([]string{"day"}).AddRow(d1).AddRow(d2)
	mock.ExpectQuery(`SELECT\s+DISTINCT`).WithArgs("u-1").WillReturnRows(rows)

	days, err := repo.CompletionDays(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CompletionDays error: %v", err)
	}
	if len(days) != 2 || !days[0].Equal(d1) || !days[1].Equal(d2) {
		t.Fatalf("unexpected days: %v", days)
	}
}

func TestCountCompletedTechniques(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(5)
	mock.ExpectQuery(`SELECT\s+COUNT\(DISTINCT\s+technique_id\)`).
		WithArgs("u-1").WillReturnRows(rows)

	n, err := repo.CountCompletedTechniques(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CountCompletedTechniques error: %v", err)
	}
	if n != 5 {
		t.Fatalf("want 5, got %d", n)
	}
}
