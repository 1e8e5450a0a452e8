package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/stretchr/testify/require"
)

func TestUserRoleChanges(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	users := &UserService{Deps: h.deps()}

	_, err := users.UpdateRole(as(admin), admin.ID, UpdateRoleRequest{Role: domain.RoleMember})
	require.ErrorIs(t, err, ErrConflict, "nobody changes their own role")

	_, err = users.UpdateRole(as(leader), admin.ID, UpdateRoleRequest{Role: domain.RoleMember})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = users.UpdateRole(as(admin), leader.ID, UpdateRoleRequest{Role: "owner"})
	require.ErrorIs(t, err, ErrValidation)

	promoted, err := users.UpdateRole(as(admin), leader.ID, UpdateRoleRequest{Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, promoted.Role)

	// with two admins either can demote the other, but not the last one
	promoted.Role = domain.RoleAdmin
	_, err = users.UpdateRole(as(promoted), admin.ID, UpdateRoleRequest{Role: domain.RoleViewer})
	require.NoError(t, err)

	demoted := admin
	demoted.Role = domain.RoleViewer
	_, err = users.UpdateRole(as(demoted), promoted.ID, UpdateRoleRequest{Role: domain.RoleMember})
	require.ErrorIs(t, err, ErrPermissionDenied)

	list, err := users.List(as(promoted))
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestLastAdminCannotBeDeactivated(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	first := h.user(org, domain.RoleAdmin, "first@example.org")
	second := h.user(org, domain.RoleAdmin, "second@example.org")
	users := &UserService{Deps: h.deps()}
	auth := h.auth()

	res, err := auth.Login(context.Background(), LoginRequest{Email: second.Email, Password: testPassword}, testMeta, "")
	require.NoError(t, err)

	_, err = users.UpdateStatus(as(first), first.ID, UpdateStatusRequest{Status: domain.UserDeactivated})
	require.ErrorIs(t, err, ErrConflict)

	out, err := users.UpdateStatus(as(first), second.ID, UpdateStatusRequest{Status: domain.UserDeactivated})
	require.NoError(t, err)
	require.Equal(t, domain.UserDeactivated, out.Status)

	_, _, err = auth.Authenticate(context.Background(), res.Token)
	require.ErrorIs(t, err, ErrUnauthorized, "deactivation signs the user out")

	_, err = users.UpdateRole(as(first), second.ID, UpdateRoleRequest{Role: domain.RoleMember})
	require.NoError(t, err, "an inactive admin does not count as the last one")

	t.Run("other organizations are invisible", func(t *testing.T) {
		other := h.org("Open Door", domain.PlanLimits{})
		stranger := h.user(other, domain.RoleMember, "stranger@opendoor.org")
		_, err := users.UpdateStatus(as(first), stranger.ID, UpdateStatusRequest{Status: domain.UserDeactivated})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrganizationSettings(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{People: 10})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	member := h.user(org, domain.RoleMember, "member@example.org")
	orgs := &OrgService{Deps: h.deps()}

	got, err := orgs.Get(as(member))
	require.NoError(t, err)
	require.Equal(t, "Grace Chapel", got.Name)

	_, err = orgs.Update(as(member), UpdateOrgRequest{Name: "Mine now"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := orgs.Update(as(admin), UpdateOrgRequest{Name: "Grace Community Chapel"})
	require.NoError(t, err)
	require.Equal(t, "Grace Community Chapel", updated.Name)

	err = orgs.SetPlan(context.Background(), org.ID, domain.PlanStandard, domain.PlanLimits{People: -1})
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, orgs.SetPlan(context.Background(), org.ID, domain.PlanStandard, domain.PlanLimits{People: 500, Groups: 50}))
	got, err = orgs.Get(as(admin))
	require.NoError(t, err)
	require.Equal(t, 500, got.PlanLimits.People)

	audit := &AuditService{Deps: h.deps()}
	_, err = audit.List(as(member), domain.AuditFilter{})
	require.ErrorIs(t, err, ErrPermissionDenied)

	rows, err := audit.List(as(admin), domain.AuditFilter{EntityType: domain.EntityOrganization})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
