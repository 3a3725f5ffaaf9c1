// Package access holds the repository's role hierarchy and the static table
// of permissions each role is granted.
package access

type Role string
type Permission string

// Roles, least to most privileged.
const (
	RoleReader   Role = "reader"
	RoleAuthor   Role = "author"
	RoleReviewer Role = "reviewer"
	RoleEditor   Role = "editor"
	RoleAdmin    Role = "admin"
)

const (
	PermViewDashboard      Permission = "viewDashboard"
	PermSubmitItem         Permission = "submitItem"
	PermViewOwnSubmissions Permission = "viewOwnSubmissions"
	PermReviewItem         Permission = "reviewItem"
	PermManageCommunities  Permission = "manageCommunities"
	PermManageCollections  Permission = "manageCollections"
	PermManageItems        Permission = "manageItems"
	PermViewAdminPanel     Permission = "viewAdminPanel"
	PermManageUsers        Permission = "manageUsers"
	PermManageRoles        Permission = "manageRoles"
)

var rank = map[Role]int{
	RoleReader:   0,
	RoleAuthor:   1,
	RoleReviewer: 2,
	RoleEditor:   3,
	RoleAdmin:    4,
}

var labels = map[Role]string{
	RoleReader:   "Reader",
	RoleAuthor:   "Author",
	RoleReviewer: "Reviewer",
	RoleEditor:   "Editor",
	RoleAdmin:    "Admin",
}

// minRole is the least privileged role granted each permission. Grants are
// cumulative up the hierarchy.
var minRole = map[Permission]Role{
	PermViewDashboard:      RoleReader,
	PermSubmitItem:         RoleAuthor,
	PermViewOwnSubmissions: RoleAuthor,
	PermReviewItem:         RoleReviewer,
	PermManageCommunities:  RoleEditor,
	PermManageCollections:  RoleEditor,
	PermManageItems:        RoleEditor,
	PermViewAdminPanel:     RoleAdmin,
	PermManageUsers:        RoleAdmin,
	PermManageRoles:        RoleAdmin,
}

// AllRoles lists every role in hierarchy order.
func AllRoles() []Role {
	return []Role{RoleReader, RoleAuthor, RoleReviewer, RoleEditor, RoleAdmin}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Label is the human-readable role name.
func (r Role) Label() string {
	return labels[r]
}

// ParseRole maps a role name to a Role, falling back to reader.
func ParseRole(s string) Role {
	if r := Role(s); r.Valid() {
		return r
	}
	return RoleReader
}

// HasPermission reports whether role is granted perm.
func HasPermission(role Role, perm Permission) bool {
	need, ok := minRole[perm]
	if !ok || !role.Valid() {
		return false
	}
	return rank[role] >= rank[need]
}

// MeetsMinRole reports whether role is at least as privileged as min.
func MeetsMinRole(role, min Role) bool {
	if !role.Valid() || !min.Valid() {
		return false
	}
	return rank[role] >= rank[min]
}

// Permissions lists every permission granted to role.
func Permissions(role Role) []Permission {
	var out []Permission
	for _, p := range allPermissions {
		if HasPermission(role, p) {
			out = append(out, p)
		}
	}
	return out
}

var allPermissions = []Permission{
	PermViewDashboard,
	PermSubmitItem,
	PermViewOwnSubmissions,
	PermReviewItem,
	PermManageCommunities,
	PermManageCollections,
	PermManageItems,
	PermViewAdminPanel,
	PermManageUsers,
	PermManageRoles,
}
