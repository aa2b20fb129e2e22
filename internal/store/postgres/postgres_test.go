package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// recordRowColumns is the column list for scanRecord results.
var recordRowColumns = []string{"id", "kind", "fields", "created_at", "updated_at"}

// fixedClock pins nowFunc for the duration of a test.
func fixedClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })
}

func TestGetRecord(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM records WHERE kind = \\$1 AND id = \\$2").
		WithArgs("lawyer", "lw-1").
		WillReturnRows(sqlmock.NewRows(recordRowColumns).
			AddRow("lw-1", "lawyer", []byte(`{"name":"Adv. Priya Sharma","experience":8}`), now, now))

	r, err := queryGetRecord(context.Background(), db, model.KindLawyer, "lw-1")
	if err != nil {
		t.Fatalf("queryGetRecord: %v", err)
	}
	if r.ID != "lw-1" || r.Kind != model.KindLawyer {
		t.Errorf("got %s/%s", r.Kind, r.ID)
	}
	if r.String("name") != "Adv. Priya Sharma" {
		t.Errorf("name = %q", r.String("name"))
	}
	if exp, ok := r.Fields["experience"].(float64); !ok || exp != 8 {
		t.Errorf("experience = %#v, want float64 8", r.Fields["experience"])
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM records WHERE kind = \\$1 AND id = \\$2").
		WithArgs("case", "cs-404").
		WillReturnRows(sqlmock.NewRows(recordRowColumns))

	_, err := queryGetRecord(context.Background(), db, model.KindCase, "cs-404")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetRecord_BadFieldsJSON(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM records").
		WillReturnRows(sqlmock.NewRows(recordRowColumns).AddRow("x", "lawyer", []byte(`{`), now, now))

	if _, err := queryGetRecord(context.Background(), db, model.KindLawyer, "x"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUpsertRecord(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	created := now.Add(-48 * time.Hour)
	fixedClock(t, now)

	mock.ExpectQuery("INSERT INTO records .+ ON CONFLICT \\(kind, id\\) DO UPDATE").
		WithArgs("lawyer", "lw-1", []byte(`{"name":"Priya"}`), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, now))

	r := &model.Record{ID: "lw-1", Kind: model.KindLawyer, Fields: map[string]any{"name": "Priya"}}
	if err := queryUpsertRecord(context.Background(), db, r); err != nil {
		t.Fatalf("queryUpsertRecord: %v", err)
	}
	if !r.CreatedAt.Equal(created) || !r.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v", r.CreatedAt, r.UpdatedAt)
	}
}

func TestUpsertRecord_EmptyFields(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	fixedClock(t, now)

	mock.ExpectQuery("INSERT INTO records").
		WithArgs("notification", "nt-1", []byte(`{}`), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	r := &model.Record{ID: "nt-1", Kind: model.KindNotification}
	if err := queryUpsertRecord(context.Background(), db, r); err != nil {
		t.Fatalf("queryUpsertRecord: %v", err)
	}
}

func TestUpsertRecord_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("INSERT INTO records").WillReturnError(errors.New("connection reset"))

	r := &model.Record{ID: "lw-1", Kind: model.KindLawyer}
	if err := queryUpsertRecord(context.Background(), db, r); err == nil {
		t.Fatal("expected error")
	}
}

func TestRemoveRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM records WHERE kind = \\$1 AND id = \\$2").
		WithArgs("lawyer", "lw-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryRemoveRecord(context.Background(), db, model.KindLawyer, "lw-1"); err != nil {
		t.Fatalf("queryRemoveRecord: %v", err)
	}
}

func TestRemoveRecord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM records").
		WithArgs("lawyer", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := queryRemoveRecord(context.Background(), db, model.KindLawyer, "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRecords_OrderedBySeq(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM records WHERE kind = \\$1 ORDER BY seq ASC").
		WithArgs("history").
		WillReturnRows(sqlmock.NewRows(recordRowColumns).
			AddRow("hi-2", "history", []byte(`{"title":"B"}`), now, now).
			AddRow("hi-1", "history", nil, now, now))

	recs, err := queryListRecords(context.Background(), db, model.KindHistory)
	if err != nil {
		t.Fatalf("queryListRecords: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "hi-2" || recs[1].ID != "hi-1" {
		t.Fatalf("unexpected records: %+v", recs)
	}
	if recs[1].Fields == nil {
		t.Error("NULL fields should decode to an empty map")
	}
}

func TestListRecords_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM records").
		WithArgs("customer").
		WillReturnRows(sqlmock.NewRows(recordRowColumns))

	recs, err := queryListRecords(context.Background(), db, model.KindCustomer)
	if err != nil {
		t.Fatalf("queryListRecords: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", recs)
	}
}

func TestRunInTransaction_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewWithDB(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM records").WithArgs("lawyer", "lw-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.RemoveRecord(context.Background(), model.KindLawyer, "lw-2")
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}
}

func TestRunInTransaction_Rollback(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewWithDB(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM records").WithArgs("lawyer", "lw-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.RemoveRecord(context.Background(), model.KindLawyer, "lw-2")
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
