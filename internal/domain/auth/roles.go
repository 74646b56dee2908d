package auth

// Role is the closed set of user categories. A session's role is fixed at
// login and drives every authorization decision.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleHRManager Role = "hr_manager"
	RoleTeamLead  Role = "team_lead"
	RoleEmployee  Role = "employee"
)

var allRoles = []Role{RoleAdmin, RoleHRManager, RoleTeamLead, RoleEmployee}

// Roles returns every known role.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}
