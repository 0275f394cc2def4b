// Package access declares the closed set of permission statements and the two
// application roles. Enforcement happens in the auth subsystem at session-check
// time, not in the HTTP layer.
package access

// Role names stored in the users.role column.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Statements is the closed permission set: resource name to allowed actions.
// These mirror the default admin statements of the auth layer.
var Statements = map[string][]string{
	"user":    {"create", "list", "set-role", "ban", "impersonate", "delete", "set-password"},
	"session": {"list", "revoke", "delete"},
}

// Role is a named set of permitted statements.
type Role struct {
	Name       string
	statements map[string][]string
}

var (
	// Admin inherits every statement, including ban/impersonate/manage-user.
	Admin = Role{Name: RoleAdmin, statements: Statements}
	// User carries no elevated permissions.
	User = Role{Name: RoleUser, statements: map[string][]string{}}
)

// ForName returns the role declared under name, defaulting to User for any
// unknown value so a corrupted role column never grants permissions.
func ForName(name string) Role {
	if name == RoleAdmin {
		return Admin
	}
	return User
}

// Valid reports whether name is a declared role.
func Valid(name string) bool {
	return name == RoleAdmin || name == RoleUser
}

// Can reports whether the role permits action on resource.
func (r Role) Can(resource, action string) bool {
	for _, a := range r.statements[resource] {
		if a == action {
			return true
		}
	}
	return false
}
