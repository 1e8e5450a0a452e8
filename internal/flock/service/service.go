// Package service holds flock's use cases. Every mutating operation follows
// the same order: authenticate, authorize, validate, load the scoped row,
// mutate, then append an audit row in the same transaction.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/obs"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// Clock returns the current time. A nil Clock is the wall clock.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// Deps is embedded by every service.
type Deps struct {
	Store   store.Store
	Metrics *obs.Metrics // may be nil
	Clock   Clock
}

func (d Deps) now() time.Time { return d.Clock.Now() }

type principalKey struct{}

// WithPrincipal stores the authenticated user on ctx.
func WithPrincipal(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, principalKey{}, u)
}

// PrincipalFrom returns the authenticated user, if any.
func PrincipalFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(principalKey{}).(domain.User)
	return u, ok
}

// RequireAuth returns the signed in user or ErrUnauthorized.
func RequireAuth(ctx context.Context) (domain.User, error) {
	u, ok := PrincipalFrom(ctx)
	if !ok || !u.IsActive() {
		return domain.User{}, ErrUnauthorized
	}
	return u, nil
}

// RequirePermission fails with ErrPermissionDenied unless the user's role
// grants perm.
func RequirePermission(u domain.User, perm domain.Permission) error {
	if !domain.HasPermission(u, perm) {
		return ErrPermissionDenied
	}
	return nil
}

// actor is an authorized caller together with the scope their queries run in.
type actor struct {
	user  domain.User
	scope domain.Scope
}

func (a actor) id() string { return a.user.ID }

// authorize runs authentication then the permission check. Nothing else
// should touch the store before it succeeds.
func authorize(ctx context.Context, perm domain.Permission) (actor, error) {
	u, err := RequireAuth(ctx)
	if err != nil {
		return actor{}, err
	}
	if err := RequirePermission(u, perm); err != nil {
		slogx.FromContext(ctx).Warn("permission denied",
			slog.String("permission", string(perm)),
			slog.String("role", string(u.Role)),
		)
		return actor{}, err
	}
	return actor{user: u, scope: domain.ScopeOf(u)}, nil
}

// audit appends one audit row using tx. changes is marshalled as is; pass a
// domain.Diff for updates and a snapshot for creates and deletes.
func (d Deps) audit(ctx context.Context, tx store.Tx, a actor, action domain.AuditAction, entityType, entityID string, changes any) error {
	doc, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}

	entry := domain.AuditLog{
		ID:         idx.New().String(),
		ActorID:    a.id(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    doc,
		CreatedAt:  d.now(),
	}
	if err := tx.Audit().Append(ctx, a.scope, entry); err != nil {
		return fmt.Errorf("append audit: %w", err)
	}

	d.Metrics.ObserveAudit(entityType, string(action))
	return nil
}

// checkPlanLimit counts the resource inside tx and refuses the create when
// the organization is already at its limit. A limit of 0 means unlimited.
// Run it in the same transaction as the insert.
func (d Deps) checkPlanLimit(ctx context.Context, tx store.Tx, s domain.Scope, r domain.LimitedResource) error {
	org, err := tx.Organizations().Get(ctx, s)
	if err != nil {
		return fmt.Errorf("load organization: %w", err)
	}

	limit := org.Limit(r)
	if limit <= 0 {
		return nil
	}

	n, err := tx.Organizations().CountResource(ctx, s, r)
	if err != nil {
		return fmt.Errorf("count %s: %w", r, err)
	}
	if n >= limit {
		slogx.FromContext(ctx).Warn("plan limit reached",
			slog.String("resource", string(r)),
			slog.Int("limit", limit),
			slog.Int("count", n),
		)
		d.Metrics.ObservePlanLimit(string(r))
		return &PlanLimitError{Resource: r, Limit: limit}
	}
	return nil
}

// parseID rejects malformed ids before they reach a query. A malformed id is
// indistinguishable from a missing row.
func parseID(id string) (string, error) {
	parsed, err := idx.Parse(id)
	if err != nil {
		return "", ErrNotFound
	}
	return parsed.String(), nil
}
