package sqlite

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type templatesRepo struct {
	db sqlx.ExtContext
}

func (r *templatesRepo) Create(ctx context.Context, s domain.Scope, t domain.ServiceTemplate) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	t.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO service_templates (id, org_id, name, items, created_at, updated_at)
		VALUES (:id, :org_id, :name, :items, :created_at, :updated_at)`, t)
	return mapConstraint(err)
}

func (r *templatesRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.ServiceTemplate, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.ServiceTemplate{}, err
	}

	var t domain.ServiceTemplate
	err = sqlx.GetContext(ctx, r.db, &t, `SELECT * FROM service_templates WHERE id = ? AND org_id = ?`, id, orgID)
	return t, mapNotFound(err)
}

func (r *templatesRepo) List(ctx context.Context, s domain.Scope) ([]domain.ServiceTemplate, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	out := []domain.ServiceTemplate{}
	err = sqlx.SelectContext(ctx, r.db, &out, `SELECT * FROM service_templates WHERE org_id = ? ORDER BY name`, orgID)
	return out, err
}

func (r *templatesRepo) Update(ctx context.Context, s domain.Scope, t domain.ServiceTemplate) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	t.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE service_templates SET name = :name, items = :items, updated_at = :updated_at
		WHERE id = :id AND org_id = :org_id`, t)
	return expectRow(res, err)
}

func (r *templatesRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM service_templates WHERE id = ? AND org_id = ?`, id, orgID))
}
