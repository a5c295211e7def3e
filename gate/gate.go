package gate

import "strings"

// Role represents a user role granted by the backend. The set is closed on
// the client: every screen dispatches on RoleAdmin or RoleUser. Authorities
// the backend may add later still parse into opaque Role values so that the
// gate can deny them explicitly instead of misreading them.
type Role string

const (
	// RoleAdmin grants access to the catalog/order/discount administration screens
	RoleAdmin Role = "ADMIN"
	// RoleUser is a regular authenticated customer
	RoleUser Role = "USER"
)

// authorityPrefix is prepended to role names in the backend's token payload
// (Spring Security convention, e.g. "ROLE_ADMIN").
const authorityPrefix = "ROLE_"

// ParseRole converts a token authority into a Role, stripping the backend's
// authority prefix.
func ParseRole(authority string) Role {
	return Role(strings.TrimPrefix(authority, authorityPrefix))
}

// ParseRoles converts a list of token authorities into Roles.
func ParseRoles(authorities []string) []Role {
	roles := make([]Role, 0, len(authorities))
	for _, a := range authorities {
		roles = append(roles, ParseRole(a))
	}
	return roles
}

// Session is the view of the session state the gate needs. The gate holds no
// state of its own: every decision is recomputed from the session at the
// moment of navigation, since login and logout happen asynchronously
// relative to route rendering.
type Session interface {
	Authenticated() bool
	HasRole(role Role) bool
}

// Requirement describes what a route demands: either any authenticated
// session, or a specific role on top of that.
type Requirement struct {
	role    Role
	hasRole bool
}

// AnyAuthenticated returns a requirement satisfied by every logged-in session.
func AnyAuthenticated() Requirement {
	return Requirement{}
}

// Require returns a requirement satisfied only by sessions holding the given role.
func Require(role Role) Requirement {
	return Requirement{role: role, hasRole: true}
}

// Allowed reports whether the session satisfies the requirement. A denied
// session should be routed to the unauthenticated landing view.
func (r Requirement) Allowed(s Session) bool {
	if s == nil || !s.Authenticated() {
		return false
	}
	if !r.hasRole {
		return true
	}
	return s.HasRole(r.role)
}
