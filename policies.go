package accounts

// Policy is a named rule requiring the principal to hold one of a fixed set
// of role names. The set exposed here is what the surrounding framework
// registers its authorization checks against.
type Policy struct {
	Name  string
	Roles []Role
}

var (
	PolicyAdminOnly  = Policy{Name: "AdminOnly", Roles: []Role{RoleAdmin}}
	PolicyDevOnly    = Policy{Name: "DevOnly", Roles: []Role{RoleDev}}
	PolicyAdminOrDev = Policy{Name: "AdminOrDev", Roles: []Role{RoleAdmin, RoleDev}}
)

// Policies returns every named policy.
func Policies() []Policy {
	return []Policy{PolicyAdminOnly, PolicyDevOnly, PolicyAdminOrDev}
}

// LookupPolicy resolves a policy by name.
func LookupPolicy(name string) (Policy, bool) {
	for _, p := range Policies() {
		if p.Name == name {
			return p, true
		}
	}
	return Policy{}, false
}

// Allows reports whether the principal satisfies the policy. Anonymous
// principals never do.
func (p Policy) Allows(principal Principal) bool {
	if !principal.IsAuthenticated() {
		return false
	}
	for _, role := range p.Roles {
		if principal.Role == role {
			return true
		}
	}
	return false
}
