package accounts

// Role is the named authorization role derived from a stored role code.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
	RoleDev   Role = "Dev"
)

// RoleFromID maps a stored role code to its named role. The mapping is total:
// unknown codes resolve to RoleUser. Token issuance and claim interpretation
// both go through this function so the two can never diverge.
func RoleFromID(id int) Role {
	switch id {
	case 2:
		return RoleAdmin
	case 3:
		return RoleDev
	default:
		return RoleUser
	}
}

// ID returns the stored role code for the role.
func (r Role) ID() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleDev:
		return 3
	default:
		return 1
	}
}

// IsValid checks if the role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDev:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole resolves a role name, falling back to RoleUser for anything
// unrecognized, mirroring RoleFromID.
func ParseRole(name string) Role {
	switch Role(name) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDev:
		return RoleDev
	default:
		return RoleUser
	}
}

// AllRoles returns the predefined roles in ascending code order.
func AllRoles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleDev}
}
