package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/jmoiron/sqlx"
)

type organizationsRepo struct {
	db sqlx.ExtContext
}

func (r *organizationsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM organizations`)
	return n, err
}

func (r *organizationsRepo) Create(ctx context.Context, o domain.Organization) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, plan, limit_people, limit_groups, limit_service_plans, trial_ends_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Plan, o.People, o.Groups, o.ServicePlans, o.TrialEndsAt, o.CreatedAt, o.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) Get(ctx context.Context, s domain.Scope) (domain.Organization, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return domain.Organization{}, err
	}

	var o domain.Organization
	err = sqlx.GetContext(ctx, r.db, &o, `SELECT * FROM organizations WHERE id = ?`, orgID)
	return o, mapNotFound(err)
}

func (r *organizationsRepo) UpdateName(ctx context.Context, s domain.Scope, name string, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE organizations SET name = ?, updated_at = ? WHERE id = ?`, name, now, orgID))
}

func (r *organizationsRepo) SetPlan(ctx context.Context, s domain.Scope, plan domain.Plan, limits domain.PlanLimits, now time.Time) error {
	orgID, err := orgOf(s)
	if err != nil {
		return err
	}
	return expectRow(r.db.ExecContext(ctx, `
		UPDATE organizations
		SET plan = ?, limit_people = ?, limit_groups = ?, limit_service_plans = ?, updated_at = ?
		WHERE id = ?`,
		plan, limits.People, limits.Groups, limits.ServicePlans, now, orgID))
}

var resourceTables = map[domain.LimitedResource]string{
	domain.ResourcePeople:       "people",
	domain.ResourceGroups:       "small_groups",
	domain.ResourceServicePlans: "service_plans",
}

func (r *organizationsRepo) CountResource(ctx context.Context, s domain.Scope, res domain.LimitedResource) (int, error) {
	orgID, err := orgOf(s)
	if err != nil {
		return 0, err
	}
	table, ok := resourceTables[res]
	if !ok {
		return 0, fmt.Errorf("unknown limited resource %q", res)
	}

	var n int
	// table comes from the fixed map above
	err = sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM `+table+` WHERE org_id = ?`, orgID)
	return n, err
}
