package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"wsn_dashboard/internal/models"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestEventSQLite_Append_FillsDefaults(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewEventSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "mon", "s-1", "START", "session started", `{"mobile":false}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(testCtx(t), models.SessionEvent{
		Mode:        "mon",
		SessionID:   "s-1",
		Type:        " start ",
		Description: "session started",
		Metadata:    map[string]bool{"mobile": false},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventSQLite_Append_DBError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO session_events").WillReturnError(errors.New("disk full"))

	err = NewEventSQLite(db).Append(testCtx(t), models.SessionEvent{Type: "stop", Mode: "mon"})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestEventSQLite_List(t *testing.T) {
	t.Parallel()

	now := time.Date(2020, 12, 3, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "occurred_at", "mode", "session_id", "type", "message", "meta"}

	tests := []struct {
		name      string
		filter    EventFilter
		wantQuery string
		wantArgs  int
	}{
		{
			name:      "no filters",
			wantQuery: `SELECT id, occurred_at, mode, session_id, type, message, meta FROM session_events ORDER BY occurred_at ASC`,
		},
		{
			name:      "type and mode",
			filter:    EventFilter{Type: "fetch_error", Mode: "monASD"},
			wantQuery: `SELECT id, occurred_at, mode, session_id, type, message, meta FROM session_events WHERE type = ? AND mode = ? ORDER BY occurred_at ASC`,
			wantArgs:  2,
		},
		{
			name:      "time range",
			filter:    EventFilter{From: now.Add(-time.Hour), To: now},
			wantQuery: `SELECT id, occurred_at, mode, session_id, type, message, meta FROM session_events WHERE occurred_at >= ? AND occurred_at <= ? ORDER BY occurred_at ASC`,
			wantArgs:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock new: %v", err)
			}
			defer func() { _ = db.Close() }()

			rows := sqlmock.NewRows(cols).
				AddRow("e1", now, "mon", "s-1", "ITERATION", "iteration 3 applied", `{"iteration":3}`).
				AddRow("e2", now, "mon", "s-1", "STOP", "stopped", "not-json")

			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.wantQuery))
			if tt.wantArgs > 0 {
				args := make([]any, tt.wantArgs)
				for i := range args {
					args[i] = sqlmock.AnyArg()
				}
				exp = exp.WithArgs(toDriverArgs(args)...)
			}
			exp.WillReturnRows(rows)

			got, err := NewEventSQLite(db).List(testCtx(t), tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("len = %d", len(got))
			}
			meta, ok := got[0].Metadata.(map[string]any)
			if !ok || meta["iteration"] != float64(3) {
				t.Fatalf("metadata: %#v", got[0].Metadata)
			}
			if got[1].Metadata != "not-json" {
				t.Fatalf("raw metadata should be kept, got %#v", got[1].Metadata)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("mock expectations: %v", err)
			}
		})
	}
}
