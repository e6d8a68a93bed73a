package projects

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/proplusapp/proplus/internal/common"
	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+projects\s*\(id,\s*title,\s*description,\s*owner_id\)`).
		WithArgs("p-1", "T", strPtr("d"), "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	p := &models.Project{ID: ids.ID("p-1"), Title: "T", Description: strPtr("d"), OwnerID: ids.ID("u-1")}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected project: %+v", got)
	}
}

func TestList_OrderedAndPaginated(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*title,\s*description,\s*owner_id,\s*created_at\s+FROM\s+projects\s+` +
		`WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$2\s+OFFSET\s+\$3\s*$`

	rows := sqlmock.NewRows([]string{"id", "title", "description", "owner_id", "created_at"}).
		AddRow("p-2", "newer", nil, "u-1", time.Now()).
		AddRow("p-1", "older", nil, "u-1", time.Now().Add(-time.Hour))
	mock.ExpectQuery(q).
		WithArgs("u-1", 20, 0).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), ids.ID("u-1"), 20, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != ids.ID("p-2") || got[1].ID != ids.ID("p-1") {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*title`).
		WithArgs("u-1", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "owner_id", "created_at"}))

	got, err := repo.List(context.Background(), ids.ID("u-1"), 20, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestGet_OwnershipFilterInQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2`

	rows := sqlmock.NewRows([]string{"id", "title", "description", "owner_id", "created_at"}).
		AddRow("p-1", "T", strPtr("d"), "u-1", time.Now())
	mock.ExpectQuery(q).
		WithArgs("p-1", "u-1").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), ids.ID("u-1"), ids.ID("p-1"))
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.OwnerID != ids.ID("u-1") || got.Title != "T" {
		t.Fatalf("unexpected project: %+v", got)
	}
}

func TestGet_ForeignProjectIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2`).
		WithArgs("p-1", "u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), ids.ID("u-2"), ids.ID("p-1"))
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestUpdate_AtomicAndOwnerScoped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+projects\s+SET\s+title\s*=\s*\$1,\s*description\s*=\s*\$2\s+` +
		`WHERE\s+id\s*=\s*\$3\s+AND\s+owner_id\s*=\s*\$4\s+RETURNING\s+`

	rows := sqlmock.NewRows([]string{"id", "title", "description", "owner_id", "created_at"}).
		AddRow("p-1", "new title", nil, "u-1", time.Now())
	mock.ExpectQuery(q).
		WithArgs("new title", nil, "p-1", "u-1").
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), ids.ID("u-1"), ids.ID("p-1"), Patch{Title: "new title"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "new title" {
		t.Fatalf("unexpected project: %+v", got)
	}
}

func TestUpdate_ForeignProjectIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+projects`).
		WithArgs("x", nil, "p-1", "u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), ids.ID("u-2"), ids.ID("p-1"), Patch{Title: "x"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2`).
		WithArgs("p-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), ids.ID("u-1"), ids.ID("p-1")); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	mock.ExpectExec(`DELETE\s+FROM\s+projects`).
		WithArgs("p-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), ids.ID("u-2"), ids.ID("p-1"))
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}
