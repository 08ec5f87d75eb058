package domain

// Role is an access role. Roles are totally ordered: admin > collector > member.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCollector Role = "collector"
	RoleMember    Role = "member"
	RoleNone      Role = ""
)

// Rank returns the precedence of r. Unknown roles rank below member.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleCollector:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// HighestRole returns the role with the greatest precedence, or RoleNone when
// roles holds no known role.
func HighestRole(roles []Role) Role {
	highest := RoleNone
	for _, role := range roles {
		if role.Rank() > highest.Rank() {
			highest = role
		}
	}
	return highest
}

// RoleAssignment is a single grant of a role to a user, one row of the
// user_roles table.
type RoleAssignment struct {
	UserID string `json:"user_id" db:"user_id" validate:"required"`
	Role   Role   `json:"role" db:"role" validate:"required,oneof=admin collector member"`
}

// UserRoles is the set of roles held by one user.
type UserRoles struct {
	UserID string `json:"user_id"`
	Roles  []Role `json:"roles"`
}

// Has reports whether the user holds role.
func (u UserRoles) Has(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GroupRoles folds assignment rows into one entry per user, in order of each
// user's first appearance. Duplicate grants are collapsed.
func GroupRoles(assignments []RoleAssignment) []UserRoles {
	index := make(map[string]int)
	grouped := make([]UserRoles, 0)

	for _, a := range assignments {
		i, ok := index[a.UserID]
		if !ok {
			i = len(grouped)
			index[a.UserID] = i
			grouped = append(grouped, UserRoles{UserID: a.UserID})
		}
		if !grouped[i].Has(a.Role) {
			grouped[i].Roles = append(grouped[i].Roles, a.Role)
		}
	}

	return grouped
}
