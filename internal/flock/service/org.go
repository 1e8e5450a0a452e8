package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

type OrgService struct {
	Deps
}

type UpdateOrgRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// Get returns the caller's organization. Any member may read it; the plan
// limits drive what the UI offers.
func (s *OrgService) Get(ctx context.Context) (domain.Organization, error) {
	u, err := RequireAuth(ctx)
	if err != nil {
		return domain.Organization{}, err
	}
	org, err := s.Store.Organizations().Get(ctx, domain.ScopeOf(u))
	return org, notFound(err)
}

func (s *OrgService) Update(ctx context.Context, req UpdateOrgRequest) (domain.Organization, error) {
	a, err := authorize(ctx, domain.PermOrgManage)
	if err != nil {
		return domain.Organization{}, err
	}
	if err := check(req); err != nil {
		return domain.Organization{}, err
	}

	var out domain.Organization
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		org, err := tx.Organizations().Get(ctx, a.scope)
		if err != nil {
			return notFound(err)
		}

		now := s.now()
		if err := tx.Organizations().UpdateName(ctx, a.scope, req.Name, now); err != nil {
			return err
		}

		out = org
		out.Name = req.Name
		out.UpdatedAt = now
		return s.audit(ctx, tx, a, domain.AuditUpdated, domain.EntityOrganization, org.ID, domain.Diff{
			Old: map[string]any{"name": org.Name},
			New: map[string]any{"name": req.Name},
		})
	})
	return out, err
}

// SetPlan changes an organization's plan and limits. It is an operator
// action run from the CLI and bypasses session checks.
func (s *OrgService) SetPlan(ctx context.Context, orgID string, plan domain.Plan, limits domain.PlanLimits) error {
	if !plan.Valid() {
		return invalid("plan", "must be one of: trial standard pro")
	}
	if limits.People < 0 || limits.Groups < 0 || limits.ServicePlans < 0 {
		return invalid("limits", "must not be negative")
	}

	if err := s.Store.Organizations().SetPlan(ctx, domain.SystemScope(orgID), plan, limits, s.now()); err != nil {
		return notFound(err)
	}

	slogx.FromContext(ctx).Info("organization plan set",
		slog.String("org_id", orgID),
		slog.String("plan", string(plan)),
	)
	return nil
}
