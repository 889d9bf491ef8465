package domain

import "fmt"

// Role separates the system section, written at provisioning, from the user
// section, written at runtime.
type Role int

const (
	RoleSystem Role = iota
	RoleUser
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleSystem:
		return "system"
	case RoleUser:
		return "user"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Roles returns all roles in the order they are opened.
func Roles() []Role {
	return []Role{RoleSystem, RoleUser}
}
