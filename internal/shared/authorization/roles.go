package authorization

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTeamMember UserRole = "team_member"
	RoleUser       UserRole = "user"
	RoleGuest      UserRole = "guest"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role may triage any request, not only its own.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleTeamMember
}

// CanBeAssigned reports whether users holding this role are eligible
// assignees for requests.
func (r UserRole) CanBeAssigned() bool {
	return r == RoleAdmin || r == RoleTeamMember
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeamMember, RoleUser, RoleGuest:
		return true
	}
	return false
}

// ParseUserRole falls back to the least-privileged non-guest role for
// unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
