package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"task_tracker/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockActivityRepo(t *testing.T) (*ActivityRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewActivityRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestActivityRepository_Append_FillsDefaultsAndNormalizesType(t *testing.T) {
	repo, mock, cleanup := newMockActivityRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertActivitySQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 7, "TODO_CREATED", "abc", "buy milk").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.Activity{
		UserID: 7,
		Type:   " todo_created ",
		TodoID: "abc",
		Detail: "buy milk",
	})
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
}

func TestActivityRepository_List_Filters(t *testing.T) {
	repo, mock, cleanup := newMockActivityRepo(t)
	defer cleanup()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	now := time.Now().UTC()

	q := selectActivitiesSQL +
		" AND occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC"
	mock.ExpectQuery(regexp.QuoteMeta(q)).
		WithArgs(7, from, to, "TODO_DELETED").
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "type", "todo_id", "detail"}).
			AddRow("e1", now, "TODO_DELETED", "abc", "buy milk"))

	entries, err := repo.List(context.Background(), 7, from, to, "todo_deleted")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].UserID != 7 || entries[0].Type != "TODO_DELETED" || entries[0].Detail != "buy milk" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestActivityRepository_List_NoFilters(t *testing.T) {
	repo, mock, cleanup := newMockActivityRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectActivitiesSQL+" ORDER BY occurred_at ASC")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "type", "todo_id", "detail"}))

	entries, err := repo.List(context.Background(), 7, time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", entries)
	}
}
