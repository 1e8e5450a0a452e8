package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleTableOnlyUsesKnownPermissions(t *testing.T) {
	known := make(map[Permission]bool, len(AllPermissions))
	for _, p := range AllPermissions {
		require.False(t, known[p], "duplicate permission %q", p)
		known[p] = true
	}

	for role, perms := range RolePermissions {
		for _, p := range perms {
			require.True(t, known[p], "role %q grants unknown permission %q", role, p)
		}
	}
}

func TestEveryRoleHasAnEntry(t *testing.T) {
	for _, r := range Roles {
		require.True(t, r.Valid())
		require.NotEmpty(t, RolePermissions[r])
	}
	require.False(t, Role("owner").Valid())
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleAdmin, PermAuditRead, true},
		{RoleAdmin, PermPeopleMerge, true},
		{RoleLeader, PermPeopleWrite, true},
		{RoleLeader, PermPeopleDelete, false},
		{RoleLeader, PermUsersManage, false},
		{RoleMember, PermFormsSubmit, true},
		{RoleMember, PermTagsRead, true},
		{RoleMember, PermPeopleWrite, false},
		{RoleViewer, PermPeopleRead, true},
		{RoleViewer, PermTagsRead, false},
		{RoleViewer, PermFormsSubmit, false},
		{Role("ghost"), PermPeopleRead, false},
	}

	for _, tt := range tests {
		got := HasPermission(User{Role: tt.role}, tt.perm)
		require.Equal(t, tt.want, got, "%s %s", tt.role, tt.perm)
	}
}

func TestPermissionsOfReturnsCopy(t *testing.T) {
	perms := PermissionsOf(RoleViewer)
	perms[0] = PermAuditRead
	require.False(t, HasPermission(User{Role: RoleViewer}, PermAuditRead))
}

func TestScope(t *testing.T) {
	var zero Scope
	require.True(t, zero.IsZero())
	require.False(t, zero.Owns(""))

	s := ScopeOf(User{OrgID: "org1"})
	require.Equal(t, "org1", s.OrgID())
	require.True(t, s.Owns("org1"))
	require.False(t, s.Owns("org2"))
	require.Equal(t, s, SystemScope("org1"))
}
