package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type auditRepo struct {
	db sqlx.ExtContext
}

func (r *auditRepo) Append(ctx context.Context, s domain.Scope, e domain.AuditLog) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}

	changes := string(e.Changes)
	if changes == "" {
		changes = "{}"
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, org_id, actor_id, action, entity_type, entity_id, changes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, orgID, e.ActorID, e.Action, e.EntityType, e.EntityID, changes, e.CreatedAt)
	return err
}

func (r *auditRepo) List(ctx context.Context, s domain.Scope, f domain.AuditFilter) ([]domain.AuditLog, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	where := []string{"org_id = ?"}
	args := []any{orgID}
	if f.EntityType != "" {
		where = append(where, "entity_type = ?")
		args = append(args, f.EntityType)
	}
	if f.EntityID != "" {
		where = append(where, "entity_id = ?")
		args = append(args, f.EntityID)
	}
	if f.ActorID != "" {
		where = append(where, "actor_id = ?")
		args = append(args, f.ActorID)
	}

	page := f.Page.Normalize()
	args = append(args, page.Limit, page.Offset)

	logs := []domain.AuditLog{}
	// changes is read as a blob so it scans straight into json.RawMessage
	err = sqlx.SelectContext(ctx, r.db, &logs, `
		SELECT id, org_id, actor_id, action, entity_type, entity_id,
		       CAST(changes AS BLOB) AS changes, created_at
		FROM audit_logs
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, args...)
	return logs, err
}
