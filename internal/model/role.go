package model

import "strings"

// Role is the closed set of account categories.
type Role string

const (
	RoleBrand   Role = "BRAND"
	RoleCreator Role = "CREATOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps free-form input onto a Role. Matching is case-insensitive and
// anything other than brand or admin, including the empty string, is a creator.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(s)) {
	case RoleBrand:
		return RoleBrand
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCreator
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
