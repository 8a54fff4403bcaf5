package domain

import "errors"

type Role string

const (
	RolePublicUser        Role = "PUBLIC_USER"
	RoleOrganizationAdmin Role = "ORGANIZATION_ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts only the closed set of stored role values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePublicUser, RoleOrganizationAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }
