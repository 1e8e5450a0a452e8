package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLeader Role = "leader"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// Roles in descending order of privilege.
var Roles = []Role{RoleAdmin, RoleLeader, RoleMember, RoleViewer}

// Permission is a "<resource>:<action>" capability.
type Permission string

const (
	PermPeopleRead   Permission = "people:read"
	PermPeopleWrite  Permission = "people:write"
	PermPeopleDelete Permission = "people:delete"
	PermPeopleImport Permission = "people:import"
	PermPeopleExport Permission = "people:export"
	PermPeopleMerge  Permission = "people:merge"

	PermGroupsRead   Permission = "groups:read"
	PermGroupsWrite  Permission = "groups:write"
	PermGroupsDelete Permission = "groups:delete"

	PermServicesRead   Permission = "services:read"
	PermServicesWrite  Permission = "services:write"
	PermServicesDelete Permission = "services:delete"

	PermSongsRead   Permission = "songs:read"
	PermSongsWrite  Permission = "songs:write"
	PermSongsDelete Permission = "songs:delete"

	PermTagsRead  Permission = "tags:read"
	PermTagsWrite Permission = "tags:write"

	PermTemplatesRead  Permission = "templates:read"
	PermTemplatesWrite Permission = "templates:write"

	PermFormsRead   Permission = "forms:read"
	PermFormsWrite  Permission = "forms:write"
	PermFormsSubmit Permission = "forms:submit"

	PermWorkflowsRead  Permission = "workflows:read"
	PermWorkflowsWrite Permission = "workflows:write"
	PermWorkflowsRun   Permission = "workflows:run"

	PermUsersManage Permission = "users:manage"
	PermOrgManage   Permission = "org:manage"
	PermAuditRead   Permission = "audit:read"
)

// AllPermissions is every permission that exists.
var AllPermissions = []Permission{
	PermPeopleRead, PermPeopleWrite, PermPeopleDelete, PermPeopleImport, PermPeopleExport, PermPeopleMerge,
	PermGroupsRead, PermGroupsWrite, PermGroupsDelete,
	PermServicesRead, PermServicesWrite, PermServicesDelete,
	PermSongsRead, PermSongsWrite, PermSongsDelete,
	PermTagsRead, PermTagsWrite,
	PermTemplatesRead, PermTemplatesWrite,
	PermFormsRead, PermFormsWrite, PermFormsSubmit,
	PermWorkflowsRead, PermWorkflowsWrite, PermWorkflowsRun,
	PermUsersManage, PermOrgManage, PermAuditRead,
}

// RolePermissions is the static role table.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleLeader: {
		PermPeopleRead, PermPeopleWrite,
		PermGroupsRead, PermGroupsWrite, PermGroupsDelete,
		PermServicesRead, PermServicesWrite, PermServicesDelete,
		PermSongsRead, PermSongsWrite, PermSongsDelete,
		PermTagsRead, PermTagsWrite,
		PermTemplatesRead, PermTemplatesWrite,
		PermFormsRead, PermFormsWrite, PermFormsSubmit,
		PermWorkflowsRead, PermWorkflowsWrite, PermWorkflowsRun,
	},
	RoleMember: {
		PermPeopleRead,
		PermGroupsRead,
		PermServicesRead,
		PermSongsRead,
		PermTagsRead,
		PermFormsRead, PermFormsSubmit,
	},
	RoleViewer: {
		PermPeopleRead,
		PermGroupsRead,
		PermServicesRead,
		PermSongsRead,
	},
}

// HasPermission is a pure lookup in the role table. Unknown roles have no
// permissions.
func HasPermission(u User, p Permission) bool {
	for _, have := range RolePermissions[u.Role] {
		if have == p {
			return true
		}
	}
	return false
}

// PermissionsOf lists what a role may do, for the /me endpoint.
func PermissionsOf(r Role) []Permission {
	perms := RolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}
