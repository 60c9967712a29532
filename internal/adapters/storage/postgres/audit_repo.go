package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"clinic-desk/internal/domain/audit"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS submission_audit (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	actor_id    TEXT NOT NULL DEFAULT '',
	subject     TEXT NOT NULL DEFAULT '',
	outcome     TEXT NOT NULL,
	detail      TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS submission_audit_kind_recorded_idx
	ON submission_audit (kind, recorded_at DESC);
`

type auditRow struct {
	ID         string    `db:"id"`
	Kind       string    `db:"kind"`
	ActorID    string    `db:"actor_id"`
	Subject    string    `db:"subject"`
	Outcome    string    `db:"outcome"`
	Detail     string    `db:"detail"`
	RecordedAt time.Time `db:"recorded_at"`
}

type AuditRepo struct {
	db *sqlx.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: sqlx.NewDb(db, "pgx")}
}

// EnsureSchema crea la tabla si no existe.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, auditSchema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

const insertAuditSQL = `
	INSERT INTO submission_audit (id, kind, actor_id, subject, outcome, detail, recorded_at)
	VALUES (:id, :kind, :actor_id, :subject, :outcome, :detail, :recorded_at)
`

const selectAuditSQL = `
	SELECT id, kind, actor_id, subject, outcome, detail, recorded_at
	FROM submission_audit
`

func (r *AuditRepo) Create(ctx context.Context, e audit.Entry) error {
	if _, err := r.db.NamedExecContext(ctx, insertAuditSQL, toAuditRow(e)); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepo) List(ctx context.Context, f audit.ListFilter) ([]audit.Entry, error) {
	query, args := listAuditQuery(f)

	var rows []auditRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	out := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntry())
	}
	return out, nil
}

// listAuditQuery arma el SELECT (placeholders de Postgres) con el límite por defecto aplicado.
func listAuditQuery(f audit.ListFilter) (string, []any) {
	limit := f.Limit
	if limit <= 0 {
		limit = audit.DefaultLimit
	}
	if f.Kind == "" {
		return selectAuditSQL + "ORDER BY recorded_at DESC LIMIT $1", []any{limit}
	}
	return selectAuditSQL + "WHERE kind = $1 ORDER BY recorded_at DESC LIMIT $2", []any{string(f.Kind), limit}
}

func toAuditRow(e audit.Entry) auditRow {
	return auditRow{
		ID:         e.ID,
		Kind:       string(e.Kind),
		ActorID:    e.ActorID,
		Subject:    e.Subject,
		Outcome:    string(e.Outcome),
		Detail:     e.Detail,
		RecordedAt: e.RecordedAt,
	}
}

func (row auditRow) toEntry() audit.Entry {
	return audit.Entry{
		ID:         row.ID,
		Kind:       audit.Kind(row.Kind),
		ActorID:    row.ActorID,
		Subject:    row.Subject,
		Outcome:    audit.Outcome(row.Outcome),
		Detail:     row.Detail,
		RecordedAt: row.RecordedAt,
	}
}
