package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clinic-desk/internal/domain/audit"
)

func TestAuditRepo_UsesDollarPlaceholders(t *testing.T) {
	r := NewAuditRepo(nil)
	if sqlx.BindType(r.db.DriverName()) != sqlx.DOLLAR {
		t.Fatalf("expected DOLLAR bind type for driver %q", r.db.DriverName())
	}
}

func TestAuditRepo_InsertBindsEveryColumn(t *testing.T) {
	at := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	e := audit.Entry{
		ID:         "a-1",
		Kind:       audit.KindAppointment,
		ActorID:    "u-1",
		Subject:    "7",
		Outcome:    audit.OutcomeError,
		Detail:     "Error 409: agenda llena",
		RecordedAt: at,
	}

	q, args, err := sqlx.Named(insertAuditSQL, toAuditRow(e))
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	q = sqlx.Rebind(sqlx.DOLLAR, q)
	if !strings.Contains(q, "VALUES ($1, $2, $3, $4, $5, $6, $7)") {
		t.Fatalf("unexpected insert %q", q)
	}
	want := []any{"a-1", "appointment", "u-1", "7", "error", "Error 409: agenda llena", at}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d", len(want), len(args))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, want[i], args[i])
		}
	}
}

func TestListAuditQuery(t *testing.T) {
	q, args := listAuditQuery(audit.ListFilter{})
	if !strings.HasSuffix(q, "ORDER BY recorded_at DESC LIMIT $1") || len(args) != 1 || args[0] != audit.DefaultLimit {
		t.Fatalf("unexpected default query %q %v", q, args)
	}

	q, args = listAuditQuery(audit.ListFilter{Kind: audit.KindEmail, Limit: 5})
	if !strings.Contains(q, "WHERE kind = $1") || len(args) != 2 || args[0] != "prescription_email" || args[1] != 5 {
		t.Fatalf("unexpected kind query %q %v", q, args)
	}
}

func TestAuditRow_RoundTripsEntry(t *testing.T) {
	e := audit.Entry{ID: "a-2", Kind: audit.KindEmail, ActorID: "u-2", Outcome: audit.OutcomeOK, RecordedAt: time.Unix(0, 0).UTC()}
	if got := toAuditRow(e).toEntry(); got != e {
		t.Fatalf("expected %+v, got %+v", e, got)
	}
}

// Contra una base real solo si CLINIC_TEST_DB_DSN está definido.
func TestAuditRepo_Postgres(t *testing.T) {
	dsn := os.Getenv("CLINIC_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("CLINIC_TEST_DB_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	r := NewAuditRepo(db)
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// idempotente
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema again: %v", err)
	}

	// kind único por corrida para no mezclar con otros datos
	kind := audit.Kind("test-" + uuid.NewString())
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM submission_audit WHERE kind = $1`, string(kind))
	})

	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	for i, id := range []string{uuid.NewString(), uuid.NewString(), uuid.NewString()} {
		e := audit.Entry{ID: id, Kind: kind, ActorID: "u-1", Outcome: audit.OutcomeOK, RecordedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := r.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := r.List(ctx, audit.ListFilter{Kind: kind, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !got[0].RecordedAt.Equal(base.Add(2*time.Minute)) || !got[1].RecordedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("expected newest first, got %v / %v", got[0].RecordedAt, got[1].RecordedAt)
	}
	if got[0].Kind != kind || got[0].ActorID != "u-1" || got[0].Outcome != audit.OutcomeOK {
		t.Fatalf("unexpected entry %+v", got[0])
	}
}
