package enums

import "fmt"

// Role is the caller's platform role. Every authenticated caller maps to
// exactly one role; the role fixes the permission set (see permission.go).
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleBrandOwner Role = "brand-owner"
	RoleCustomer   Role = "customer"
	RoleModerator  Role = "moderator"
)

var validRoles = []Role{
	RoleAdmin,
	RoleBrandOwner,
	RoleCustomer,
	RoleModerator,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
