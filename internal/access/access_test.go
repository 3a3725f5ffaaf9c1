package access

import "testing"

func TestHasPermission(t *testing.T) {
	cases := []struct {
		name  string
		role  Role
		perm  Permission
		allow bool
	}{
		{name: "reader dashboard", role: RoleReader, perm: PermViewDashboard, allow: true},
		{name: "reader submit", role: RoleReader, perm: PermSubmitItem, allow: false},
		{name: "author submit", role: RoleAuthor, perm: PermSubmitItem, allow: true},
		{name: "author own submissions", role: RoleAuthor, perm: PermViewOwnSubmissions, allow: true},
		{name: "author review", role: RoleAuthor, perm: PermReviewItem, allow: false},
		{name: "reviewer review", role: RoleReviewer, perm: PermReviewItem, allow: true},
		{name: "reviewer manage items", role: RoleReviewer, perm: PermManageItems, allow: false},
		{name: "editor manage communities", role: RoleEditor, perm: PermManageCommunities, allow: true},
		{name: "editor admin panel", role: RoleEditor, perm: PermViewAdminPanel, allow: false},
		{name: "admin manage roles", role: RoleAdmin, perm: PermManageRoles, allow: true},
		{name: "unknown role", role: Role("guest"), perm: PermViewDashboard, allow: false},
		{name: "unknown permission", role: RoleAdmin, perm: Permission("launchRockets"), allow: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasPermission(tc.role, tc.perm); got != tc.allow {
				t.Fatalf("HasPermission(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.allow)
			}
		})
	}
}

func TestPermissions_Cumulative(t *testing.T) {
	want := map[Role]int{
		RoleReader:   1,
		RoleAuthor:   3,
		RoleReviewer: 4,
		RoleEditor:   7,
		RoleAdmin:    10,
	}
	for role, n := range want {
		if got := len(Permissions(role)); got != n {
			t.Errorf("%s: expected %d permissions, got %d", role, n, got)
		}
	}
}

func TestMeetsMinRole(t *testing.T) {
	if !MeetsMinRole(RoleEditor, RoleAuthor) {
		t.Error("expected editor to meet author")
	}
	if !MeetsMinRole(RoleAuthor, RoleAuthor) {
		t.Error("expected a role to meet itself")
	}
	if MeetsMinRole(RoleReader, RoleAuthor) {
		t.Error("expected reader not to meet author")
	}
	if MeetsMinRole(Role("root"), RoleReader) {
		t.Error("expected unknown role to fail")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"reviewer", RoleReviewer},
		{"", RoleReader},
		{"Admin", RoleReader},
		{"superuser", RoleReader},
	}
	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAllRolesOrderAndLabels(t *testing.T) {
	roles := AllRoles()
	labels := []string{"Reader", "Author", "Reviewer", "Editor", "Admin"}
	if len(roles) != len(labels) {
		t.Fatalf("expected %d roles, got %d", len(labels), len(roles))
	}
	for i, r := range roles {
		if r.Label() != labels[i] {
			t.Errorf("role[%d]: expected label %q, got %q", i, labels[i], r.Label())
		}
		if i > 0 && !MeetsMinRole(r, roles[i-1]) {
			t.Errorf("expected %s to outrank %s", r, roles[i-1])
		}
	}
}
