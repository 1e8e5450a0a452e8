package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/jmoiron/sqlx"
)

type servicePlansRepo struct {
	db sqlx.ExtContext
}

func (r *servicePlansRepo) Create(ctx context.Context, s domain.Scope, p domain.ServicePlan) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	p.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO service_plans (id, org_id, title, date, status, notes, created_at, updated_at)
		VALUES (:id, :org_id, :title, :date, :status, :notes, :created_at, :updated_at)`, p)
	return mapConstraint(err)
}

func (r *servicePlansRepo) Get(ctx context.Context, s domain.Scope, id string) (domain.ServicePlan, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.ServicePlan{}, err
	}

	var p domain.ServicePlan
	err = sqlx.GetContext(ctx, r.db, &p, `SELECT * FROM service_plans WHERE id = ? AND org_id = ?`, id, orgID)
	return p, mapNotFound(err)
}

func (r *servicePlansRepo) List(ctx context.Context, s domain.Scope, p domain.Page) ([]domain.ServicePlan, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	p = p.Normalize()
	plans := []domain.ServicePlan{}
	err = sqlx.SelectContext(ctx, r.db, &plans,
		`SELECT * FROM service_plans WHERE org_id = ? ORDER BY date DESC, id LIMIT ? OFFSET ?`,
		orgID, p.Limit, p.Offset)
	return plans, err
}

func (r *servicePlansRepo) Update(ctx context.Context, s domain.Scope, p domain.ServicePlan) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	p.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE service_plans
		SET title = :title, date = :date, status = :status, notes = :notes, updated_at = :updated_at
		WHERE id = :id AND org_id = :org_id`, p)
	return expectRow(res, err)
}

func (r *servicePlansRepo) Delete(ctx context.Context, s domain.Scope, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `DELETE FROM service_plans WHERE id = ? AND org_id = ?`, id, orgID))
}

func (r *servicePlansRepo) Items(ctx context.Context, s domain.Scope, planID string) ([]domain.ServiceItem, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	items := []domain.ServiceItem{}
	err = sqlx.SelectContext(ctx, r.db, &items,
		`SELECT * FROM service_items WHERE plan_id = ? AND org_id = ? ORDER BY position, id`, planID, orgID)
	return items, err
}

func (r *servicePlansRepo) GetItem(ctx context.Context, s domain.Scope, planID, itemID string) (domain.ServiceItem, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.ServiceItem{}, err
	}

	var it domain.ServiceItem
	err = sqlx.GetContext(ctx, r.db, &it,
		`SELECT * FROM service_items WHERE id = ? AND plan_id = ? AND org_id = ?`, itemID, planID, orgID)
	return it, mapNotFound(err)
}

func (r *servicePlansRepo) CreateItem(ctx context.Context, s domain.Scope, it domain.ServiceItem) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	it.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO service_items (id, org_id, plan_id, kind, title, song_id, duration_seconds, position, notes, created_at, updated_at)
		VALUES (:id, :org_id, :plan_id, :kind, :title, :song_id, :duration_seconds, :position, :notes, :created_at, :updated_at)`, it)
	return mapConstraint(err)
}

func (r *servicePlansRepo) UpdateItem(ctx context.Context, s domain.Scope, it domain.ServiceItem) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	it.OrgID = orgID

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE service_items
		SET kind = :kind, title = :title, song_id = :song_id, duration_seconds = :duration_seconds,
		    notes = :notes, updated_at = :updated_at
		WHERE id = :id AND plan_id = :plan_id AND org_id = :org_id`, it)
	return expectRow(res, err)
}

func (r *servicePlansRepo) DeleteItem(ctx context.Context, s domain.Scope, planID, itemID string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`DELETE FROM service_items WHERE id = ? AND plan_id = ? AND org_id = ?`, itemID, planID, orgID))
}

func (r *servicePlansRepo) SetPositions(ctx context.Context, s domain.Scope, planID string, ids []string, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}

	for pos, id := range ids {
		err := expectRow(r.db.ExecContext(ctx,
			`UPDATE service_items SET position = ?, updated_at = ? WHERE id = ? AND plan_id = ? AND org_id = ?`,
			pos, now, id, planID, orgID))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *servicePlansRepo) Assign(ctx context.Context, s domain.Scope, a domain.ServiceAssignment) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	a.OrgID = orgID

	_, err = sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO service_assignments (id, org_id, plan_id, person_id, role, status, created_at, updated_at)
		VALUES (:id, :org_id, :plan_id, :person_id, :role, :status, :created_at, :updated_at)`, a)
	return mapConstraint(err)
}

func (r *servicePlansRepo) Assignments(ctx context.Context, s domain.Scope, planID string) ([]domain.ServiceAssignment, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return nil, err
	}

	out := []domain.ServiceAssignment{}
	err = sqlx.SelectContext(ctx, r.db, &out,
		`SELECT * FROM service_assignments WHERE plan_id = ? AND org_id = ? ORDER BY role, created_at`, planID, orgID)
	return out, err
}

func (r *servicePlansRepo) GetAssignment(ctx context.Context, s domain.Scope, planID, id string) (domain.ServiceAssignment, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.ServiceAssignment{}, err
	}

	var a domain.ServiceAssignment
	err = sqlx.GetContext(ctx, r.db, &a,
		`SELECT * FROM service_assignments WHERE id = ? AND plan_id = ? AND org_id = ?`, id, planID, orgID)
	return a, mapNotFound(err)
}

func (r *servicePlansRepo) UpdateAssignmentStatus(ctx context.Context, s domain.Scope, id string, status domain.AssignmentStatus, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE service_assignments SET status = ?, updated_at = ? WHERE id = ? AND org_id = ?`, status, now, id, orgID))
}

func (r *servicePlansRepo) DeleteAssignment(ctx context.Context, s domain.Scope, planID, id string) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`DELETE FROM service_assignments WHERE id = ? AND plan_id = ? AND org_id = ?`, id, planID, orgID))
}

var _ store.ServicePlans = (*servicePlansRepo)(nil)
