package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shanco/accessissues/internal/accessissues/authz"
	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/internal/accessissues/store"
	"github.com/shanco/accessissues/pkg/idx"
	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/slogx"
	"github.com/shanco/accessissues/pkg/validatex"
)

const (
	MsgOrgNotFound        = "Organization not found"
	MsgCreateUserDenied   = "You do not have permission to create users."
	MsgRemoveMemberDenied = "You do not have permission to remove organization members."
)

// CreateOrgUserInput adds a user, created when missing, as an administrator
// of the organization with OrganizationSlug.
type CreateOrgUserInput struct {
	Name             string             `json:"name" validate:"required"`
	Email            string             `json:"email" validate:"required,email"`
	OrganizationSlug string             `json:"organizationSlug" validate:"required"`
	Session          domain.SessionData `json:"session"`
}

// RemoveOrgMemberInput removes UserID's role in the organization.
type RemoveOrgMemberInput struct {
	UserID           string             `json:"userId" validate:"required,ulid"`
	OrganizationSlug string             `json:"organizationSlug" validate:"required"`
	Session          domain.SessionData `json:"session"`
}

// OrganizationService reads organizations and manages their administrators.
type OrganizationService struct {
	Store     store.Store
	Invites   *InviteService
	Validator *validatex.Validator
}

// findOrg returns nil without error when slug does not exist.
func (s *OrganizationService) findOrg(ctx context.Context, slug string) (*domain.Organization, error) {
	org, err := s.Store.Organizations().GetOrganizationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

type slugData struct {
	Slug   string `json:"slug"`
	UserID string `json:"userId,omitempty"`
}

// GetRole resolves the role of userID in the organization, PUBLIC_USER when
// the organization or the assignment is missing.
func (s *OrganizationService) GetRole(ctx context.Context, slug, userID string) result.Result[domain.Role] {
	org, err := s.findOrg(ctx, slug)
	if err != nil {
		return result.Err[domain.Role](dbError(err, slugData{slug, userID}))
	}
	return result.Ok(authz.ResolveRole(org, userID))
}

func (s *OrganizationService) IsOrgAdmin(ctx context.Context, slug, userID string) result.Result[bool] {
	role := s.GetRole(ctx, slug, userID)
	if !role.IsOk() {
		return result.Err[bool](role.Error)
	}
	return result.Ok(authz.HasOrganizationAdminAbilities(role.Data))
}

// GetOrg returns the public summary of an organization, nil when missing.
func (s *OrganizationService) GetOrg(ctx context.Context, slug string) result.Result[*domain.OrganizationSummary] {
	org, err := s.findOrg(ctx, slug)
	if err != nil {
		return result.Err[*domain.OrganizationSummary](dbError(err, slugData{Slug: slug}))
	}
	if org == nil {
		return result.Ok[*domain.OrganizationSummary](nil)
	}
	return result.Ok(org.Summary())
}

func (s *OrganizationService) ListAllOrgs(ctx context.Context) result.Result[[]domain.Organization] {
	orgs, err := s.Store.Organizations().ListOrganizations(ctx)
	if err != nil {
		return result.Err[[]domain.Organization](dbError(err, nil))
	}
	if orgs == nil {
		orgs = []domain.Organization{}
	}
	return result.Ok(orgs)
}

// GetOrgMembers lists the users of an organization. A stored role outside
// the known set is reported as PUBLIC_USER.
func (s *OrganizationService) GetOrgMembers(ctx context.Context, orgID string) result.Result[[]domain.Member] {
	members, err := s.Store.Organizations().ListOrganizationMembers(ctx, orgID)
	if err != nil {
		return result.Err[[]domain.Member](dbError(err, map[string]string{"organizationId": orgID}))
	}

	out := make([]domain.Member, 0, len(members))
	for _, m := range members {
		role, err := domain.ParseRole(string(m.Role))
		if err != nil {
			slogx.FromContext(ctx).Warn("unknown member role",
				slog.String("organization_id", orgID),
				slog.String("user_id", m.ID),
				slog.String("role", string(m.Role)),
			)
			role = domain.RolePublicUser
		}
		m.Role = role
		out = append(out, m)
	}
	return result.Ok(out)
}

// CreateOrgUser makes the user with input.Email an administrator of the
// organization, creating the account first when it does not exist, and
// sends an invitation email. Only administrators of the organization may
// call it.
func (s *OrganizationService) CreateOrgUser(ctx context.Context, input CreateOrgUserInput) result.Result[bool] {
	log := slogx.FromContext(ctx)
	input.Email = NormalizeEmail(input.Email)

	// 1. Organization.
	org, err := s.findOrg(ctx, input.OrganizationSlug)
	if err != nil {
		return result.Err[bool](dbError(err, input))
	}
	if org == nil {
		return result.Err[bool](result.New(result.CodeAuthorization, MsgOrgNotFound, result.Context{Data: input}))
	}

	// 2. Caller must administer it.
	role := authz.ResolveRole(org, input.Session.UserID)
	allowed := authz.Authorize(authz.HasOrganizationAdminAbilities(role), MsgCreateUserDenied, result.Context{
		Data: authz.AuditData{Role: role, ResourceID: org.ID, UserID: input.Session.UserID},
	})
	if !allowed.IsOk() {
		log.Warn("create organization user denied",
			slog.String("organization_id", org.ID),
			slog.String("user_id", input.Session.UserID),
		)
		return result.Err[bool](allowed.Error)
	}

	// 3. Inputs.
	if appErr := validate(s.Validator, input); appErr != nil {
		return result.Err[bool](appErr)
	}

	// 4. User and role in one transaction.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByEmail(ctx, input.Email)
		if errors.Is(err, store.ErrNotFound) {
			user = domain.User{ID: idx.New().String(), Name: input.Name, Email: input.Email}
			err = tx.Users().CreateUser(ctx, user)
		}
		if err != nil {
			return err
		}
		return tx.Users().AddToOrganization(ctx, user.ID, org.ID, domain.RoleOrganizationAdmin)
	})
	if err != nil {
		log.Error("failed to create organization user", slog.String("organization_id", org.ID), slog.Any("error", err))
		return result.Err[bool](dbError(err, input))
	}

	log.Info("organization admin added", slog.String("organization_id", org.ID), slog.String("email", input.Email))

	// 5. Invitation.
	if s.Invites == nil {
		return result.Ok(true)
	}
	return s.Invites.InviteUser(ctx, InviteInput{
		Email:            input.Email,
		OrganizationName: org.Name,
	})
}

// RemoveOrgMember drops a user's role in an organization. Removing a user
// that holds no role succeeds.
func (s *OrganizationService) RemoveOrgMember(ctx context.Context, input RemoveOrgMemberInput) result.Result[bool] {
	log := slogx.FromContext(ctx)

	// 1. Inputs.
	if appErr := validate(s.Validator, input); appErr != nil {
		return result.Err[bool](appErr)
	}

	// 2. Organization.
	org, err := s.findOrg(ctx, input.OrganizationSlug)
	if err != nil {
		return result.Err[bool](dbError(err, input))
	}
	if org == nil {
		return result.Err[bool](result.New(result.CodeAuthorization, MsgOrgNotFound, result.Context{Data: input}))
	}

	// 3. Caller must administer it.
	role := authz.ResolveRole(org, input.Session.UserID)
	allowed := authz.Authorize(authz.HasOrganizationAdminAbilities(role), MsgRemoveMemberDenied, result.Context{
		Data: authz.AuditData{Role: role, ResourceID: org.ID, UserID: input.Session.UserID},
	})
	if !allowed.IsOk() {
		log.Warn("remove organization member denied",
			slog.String("organization_id", org.ID),
			slog.String("user_id", input.Session.UserID),
		)
		return result.Err[bool](allowed.Error)
	}

	// 4. Remove.
	err = s.Store.Users().RemoveFromOrganization(ctx, input.UserID, org.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to remove organization member", slog.String("organization_id", org.ID), slog.Any("error", err))
		return result.Err[bool](dbError(err, input))
	}

	log.Info("organization member removed", slog.String("organization_id", org.ID), slog.String("member_id", input.UserID))
	return result.Ok(true)
}
