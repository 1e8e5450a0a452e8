package sqlite

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type formsRepo struct {
	db sqlx.ExtContext
}

func (r *formsRepo) Create(ctx context.Context, s domain.Scope, f domain.Form) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	f.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO forms (id, org_id, name, description, fields, published, created_at, updated_at)
		VALUES (:id, :org_id, :name, :description, :fields, :published, :created_at, :updated_at)`, f)
	return mapConstraint(err)
}

func (r *formsRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.Form, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Form{}, err
	}

	var f domain.Form
	err = sqlx.GetContext(ctx, r.db, &f, `SELECT * FROM forms WHERE id = ? AND org_id = ?`, id, orgID)
	return f, mapNotFound(err)
}

func (r *formsRepo) List(ctx context.Context, s domain.Scope) ([]domain.Form, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	out := []domain.Form{}
	err = sqlx.SelectContext(ctx, r.db, &out, `SELECT * FROM forms WHERE org_id = ? ORDER BY name`, orgID)
	return out, err
}

func (r *formsRepo) Update(ctx context.Context, s domain.Scope, f domain.Form) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	f.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE forms
		SET name = :name, description = :description, fields = :fields, published = :published, updated_at = :updated_at
		WHERE id = :id AND org_id = :org_id`, f)
	return expectRow(res, err)
}

func (r *formsRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM forms WHERE id = ? AND org_id = ?`, id, orgID))
}

func (r *formsRepo) CreateSubmission(ctx context.Context, s domain.Scope, sub domain.FormSubmission) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	sub.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO form_submissions (id, org_id, form_id, person_id, submitted_by, data, created_at)
		VALUES (:id, :org_id, :form_id, :person_id, :submitted_by, :data, :created_at)`, sub)
	return mapConstraint(err)
}

func (r *formsRepo) Submissions(ctx context.Context, s domain.Scope, formID string) ([]domain.FormSubmission, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	out := []domain.FormSubmission{}
	err = sqlx.SelectContext(ctx, r.db, &out,
		`SELECT * FROM form_submissions WHERE form_id = ? AND org_id = ? ORDER BY created_at DESC, id DESC`, formID, orgID)
	return out, err
}
