package sqlite

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type workflowsRepo struct {
	db sqlx.ExtContext
}

func (r *workflowsRepo) Create(ctx context.Context, s domain.Scope, w domain.Workflow) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	w.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO workflows (id, org_id, name, trigger_type, active, steps, created_at, updated_at)
		VALUES (:id, :org_id, :name, :trigger_type, :active, :steps, :created_at, :updated_at)`, w)
	return mapConstraint(err)
}

func (r *workflowsRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.Workflow, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Workflow{}, err
	}

	var w domain.Workflow
	err = sqlx.GetContext(ctx, r.db, &w, `SELECT * FROM workflows WHERE id = ? AND org_id = ?`, id, orgID)
	return w, mapNotFound(err)
}

func (r *workflowsRepo) List(ctx context.Context, s domain.Scope) ([]domain.Workflow, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	out := []domain.Workflow{}
	err = sqlx.SelectContext(ctx, r.db, &out, `SELECT * FROM workflows WHERE org_id = ? ORDER BY name`, orgID)
	return out, err
}

func (r *workflowsRepo) ListActive(ctx context.Context, s domain.Scope, trigger domain.WorkflowTrigger) ([]domain.Workflow, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	out := []domain.Workflow{}
	err = sqlx.SelectContext(ctx, r.db, &out,
		`SELECT * FROM workflows WHERE org_id = ? AND trigger_type = ? AND active = 1 ORDER BY created_at, id`,
		orgID, trigger)
	return out, err
}

func (r *workflowsRepo) Update(ctx context.Context, s domain.Scope, w domain.Workflow) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	w.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE workflows
		SET name = :name, trigger_type = :trigger_type, active = :active, steps = :steps, updated_at = :updated_at
		WHERE id = :id AND org_id = :org_id`, w)
	return expectRow(res, err)
}

func (r *workflowsRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM workflows WHERE id = ? AND org_id = ?`, id, orgID))
}
