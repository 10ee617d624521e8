package enums

import (
	"fmt"
	"strings"
)

// Role is the account-level permission role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// adminEmailPrefix marks addresses that receive the ADMIN role at registration.
const adminEmailPrefix = "admin"

var validRoles = []Role{RoleUser, RoleAdmin}

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

// IsAdminEmail reports whether the address starts with the admin prefix.
// The check is case-sensitive, matching how emails are stored.
func IsAdminEmail(email string) bool {
	return strings.HasPrefix(email, adminEmailPrefix)
}

// RoleForEmail derives the role assigned to a newly registered account.
func RoleForEmail(email string) Role {
	if IsAdminEmail(email) {
		return RoleAdmin
	}
	return RoleUser
}
