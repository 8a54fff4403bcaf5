// Package authz holds the authorization gate and organization role
// resolution. Policy and lookup stay apart: callers resolve a role from data
// they already loaded, derive a capability, then pass it through Authorize.
package authz

import (
	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/pkg/result"
)

// Authorize returns Ok(true) when allowed, otherwise an AUTHORIZATION error
// with message and ctx.
func Authorize(allowed bool, message string, ctx result.Context) result.Result[bool] {
	if !allowed {
		return result.Err[bool](result.New(result.CodeAuthorization, message, ctx))
	}
	return result.Ok(true)
}

// AuditData is the context attached to a denial.
type AuditData struct {
	Role       domain.Role `json:"role"`
	ResourceID string      `json:"resourceId"`
	UserID     string      `json:"userId,omitempty"`
}

func HasOrganizationAdminAbilities(role domain.Role) bool {
	return role == domain.RoleOrganizationAdmin
}

// HasPublicUserAbilities holds for every known role; admins can do anything a
// public user can.
func HasPublicUserAbilities(role domain.Role) bool {
	return role == domain.RolePublicUser || role == domain.RoleOrganizationAdmin
}

// LookupRole finds the role assigned to userID in org. It reports false when
// org is nil, the user has no assignment or the stored value is not a known
// role.
func LookupRole(org *domain.Organization, userID string) (domain.Role, bool) {
	if org == nil || userID == "" {
		return "", false
	}
	for _, m := range org.Members {
		if m.UserID != userID {
			continue
		}
		role, err := domain.ParseRole(m.Role)
		if err != nil {
			return "", false
		}
		return role, true
	}
	return "", false
}

// ResolveRole is LookupRole defaulting to PUBLIC_USER.
func ResolveRole(org *domain.Organization, userID string) domain.Role {
	if role, ok := LookupRole(org, userID); ok {
		return role
	}
	return domain.RolePublicUser
}
