package sqlite

import (
	"context"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type tagsRepo struct {
	db sqlx.ExtContext
}

func (r *tagsRepo) Create(ctx context.Context, s domain.Scope, t domain.Tag) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tags (id, org_id, name, color, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, orgID, t.Name, t.Color, t.CreatedAt)
	return mapConstraint(err)
}

func (r *tagsRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.Tag, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Tag{}, err
	}

	var t domain.Tag
	err = sqlx.GetContext(ctx, r.db, &t, `SELECT * FROM tags WHERE id = ? AND org_id = ?`, id, orgID)
	return t, mapNotFound(err)
}

func (r *tagsRepo) GetByName(ctx context.Context, s domain.Scope, name string) (domain.Tag, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Tag{}, err
	}

	var t domain.Tag
	err = sqlx.GetContext(ctx, r.db, &t, `SELECT * FROM tags WHERE name = ? AND org_id = ?`, name, orgID)
	return t, mapNotFound(err)
}

func (r *tagsRepo) List(ctx context.Context, s domain.Scope) ([]domain.Tag, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	tags := []domain.Tag{}
	err = sqlx.SelectContext(ctx, r.db, &tags, `SELECT * FROM tags WHERE org_id = ? ORDER BY name`, orgID)
	return tags, err
}

func (r *tagsRepo) Update(ctx context.Context, s domain.Scope, t domain.Tag) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE tags SET name = ?, color = ? WHERE id = ? AND org_id = ?`, t.Name, t.Color, t.ID, orgID))
}

func (r *tagsRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ? AND org_id = ?`, id, orgID))
}

type customFieldsRepo struct {
	db sqlx.ExtContext
}

func (r *customFieldsRepo) Create(ctx context.Context, s domain.Scope, f domain.CustomField) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	f.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO custom_fields (id, org_id, name, type, options, created_at)
		VALUES (:id, :org_id, :name, :type, :options, :created_at)`, f)
	return mapConstraint(err)
}

func (r *customFieldsRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.CustomField, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.CustomField{}, err
	}

	var f domain.CustomField
	err = sqlx.GetContext(ctx, r.db, &f, `SELECT * FROM custom_fields WHERE id = ? AND org_id = ?`, id, orgID)
	return f, mapNotFound(err)
}

func (r *customFieldsRepo) List(ctx context.Context, s domain.Scope) ([]domain.CustomField, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	fields := []domain.CustomField{}
	err = sqlx.SelectContext(ctx, r.db, &fields, `SELECT * FROM custom_fields WHERE org_id = ? ORDER BY name`, orgID)
	return fields, err
}

func (r *customFieldsRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM custom_fields WHERE id = ? AND org_id = ?`, id, orgID))
}
