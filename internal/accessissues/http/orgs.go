package http

import (
	"net/http"

	"github.com/shanco/accessissues/internal/accessissues/authz"
	"github.com/shanco/accessissues/internal/accessissues/domain"
	"github.com/shanco/accessissues/internal/accessissues/service"
	"github.com/shanco/accessissues/internal/accessissues/session"
	"github.com/shanco/accessissues/pkg/authsdk"
	"github.com/shanco/accessissues/pkg/httpx"
	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/slogx"
)

const (
	FlashMemberAdded   = "User invited"
	FlashMemberRemoved = "Member removed"
)

type OrgsHandler struct {
	OrganizationService *service.OrganizationService
	Sessions            *session.Manager
}

// HandleList godoc
//
//	@Summary		List organizations
//	@Tags			Organizations
//	@Produce		json
//	@Success		200	{object}	authsdk.Envelope[[]authsdk.Organization]	"Organizations ordered by name"
//	@Router			/v1/orgs [get].
func (h *OrgsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	res := h.OrganizationService.ListAllOrgs(r.Context())
	httpx.WriteResult(w, r, "orgs", http.StatusOK, mapResult(res, func(orgs []domain.Organization) []authsdk.Organization {
		out := make([]authsdk.Organization, 0, len(orgs))
		for _, o := range orgs {
			out = append(out, authsdk.Organization{
				ID:          o.ID,
				Name:        o.Name,
				Slug:        o.Slug,
				Description: o.Description,
				NumIssues:   o.NumIssues,
				DonateURL:   o.DonateURL,
				LogoURL:     o.LogoURL,
			})
		}
		return out
	}))
}

// HandleGet godoc
//
//	@Summary		Get an organization
//	@Description	Data is null when the organization does not exist.
//	@Tags			Organizations
//	@Produce		json
//	@Param			slug	path		string											true	"Organization slug"
//	@Success		200		{object}	authsdk.Envelope[authsdk.OrganizationSummary]	"Organization summary"
//	@Router			/v1/orgs/{slug} [get].
func (h *OrgsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res := h.OrganizationService.GetOrg(r.Context(), r.PathValue("slug"))
	httpx.WriteResult(w, r, "org", http.StatusOK, mapResult(res, func(o *domain.OrganizationSummary) *authsdk.OrganizationSummary {
		if o == nil {
			return nil
		}
		return &authsdk.OrganizationSummary{ID: o.ID, Slug: o.Slug, Name: o.Name, LogoURL: o.LogoURL}
	}))
}

// HandleRole godoc
//
//	@Summary		My role in an organization
//	@Description	PUBLIC_USER when the organization or an assignment is missing.
//	@Tags			Organizations
//	@Produce		json
//	@Param			slug	path		string								true	"Organization slug"
//	@Success		200		{object}	authsdk.Envelope[authsdk.RoleResponse]	"Role"
//	@Failure		401		{object}	authsdk.Envelope[authsdk.RoleResponse]	"Unable to get session."
//	@Security		SessionCookie
//	@Router			/v1/orgs/{slug}/role [get].
func (h *OrgsHandler) HandleRole(w http.ResponseWriter, r *http.Request) {
	data, _ := session.FromContext(r.Context())
	res := h.OrganizationService.GetRole(r.Context(), r.PathValue("slug"), data.UserID)
	httpx.WriteResult(w, r, "role", http.StatusOK, mapResult(res, func(role domain.Role) authsdk.RoleResponse {
		return authsdk.RoleResponse{Role: role.String(), IsAdmin: authz.HasOrganizationAdminAbilities(role)}
	}))
}

// HandleMembers godoc
//
//	@Summary		List organization members
//	@Tags			Organizations
//	@Produce		json
//	@Param			slug	path		string								true	"Organization slug"
//	@Success		200		{object}	authsdk.Envelope[[]authsdk.Member]	"Members ordered by name"
//	@Failure		401		{object}	authsdk.Envelope[[]authsdk.Member]	"Unable to get session."
//	@Failure		403		{object}	authsdk.Envelope[[]authsdk.Member]	"Organization not found"
//	@Security		SessionCookie
//	@Router			/v1/orgs/{slug}/members [get].
func (h *OrgsHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	org := h.OrganizationService.GetOrg(ctx, r.PathValue("slug"))
	if !org.IsOk() {
		writeErr[[]authsdk.Member](w, r, "members", org.Error)
		return
	}
	if org.Data == nil {
		writeErr[[]authsdk.Member](w, r, "members", result.New(result.CodeAuthorization, service.MsgOrgNotFound, result.Context{}))
		return
	}

	res := h.OrganizationService.GetOrgMembers(ctx, org.Data.ID)
	httpx.WriteResult(w, r, "members", http.StatusOK, mapResult(res, func(members []domain.Member) []authsdk.Member {
		out := make([]authsdk.Member, 0, len(members))
		for _, m := range members {
			out = append(out, authsdk.Member{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role.String()})
		}
		return out
	}))
}

// HandleAddMember godoc
//
//	@Summary		Add an organization administrator
//	@Description	Creates the user when missing, makes them ORGANIZATION_ADMIN and emails an invitation.
//	@Description	Only administrators of the organization may call it.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string						true	"Organization slug"
//	@Param			request	body		authsdk.AddMemberRequest	true	"New administrator"
//	@Success		200		{object}	authsdk.Envelope[bool]		"Added"
//	@Failure		400		{object}	authsdk.Envelope[bool]		"Invalid inputs"
//	@Failure		403		{object}	authsdk.Envelope[bool]		"Not an administrator"
//	@Security		SessionCookie
//	@Router			/v1/orgs/{slug}/members [post].
func (h *OrgsHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, _ := session.FromContext(ctx)

	var req authsdk.AddMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeErr[bool](w, r, "add_member", result.New(result.CodeValidation, "Invalid inputs", result.Context{Err: err}))
		return
	}

	res := h.OrganizationService.CreateOrgUser(ctx, service.CreateOrgUserInput{
		Name:             req.Name,
		Email:            req.Email,
		OrganizationSlug: r.PathValue("slug"),
		Session:          data,
	})
	if res.IsOk() {
		h.flash(w, r, FlashMemberAdded)
	}
	httpx.WriteResult(w, r, "add_member", http.StatusOK, res)
}

// HandleRemoveMember godoc
//
//	@Summary		Remove an organization member
//	@Description	Removing a user without a role succeeds. Only administrators of the organization may call it.
//	@Tags			Organizations
//	@Produce		json
//	@Param			slug	path		string					true	"Organization slug"
//	@Param			userID	path		string					true	"Member id"
//	@Success		200		{object}	authsdk.Envelope[bool]	"Removed"
//	@Failure		400		{object}	authsdk.Envelope[bool]	"Invalid inputs"
//	@Failure		403		{object}	authsdk.Envelope[bool]	"Not an administrator"
//	@Security		SessionCookie
//	@Router			/v1/orgs/{slug}/members/{userID} [delete].
func (h *OrgsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, _ := session.FromContext(ctx)

	res := h.OrganizationService.RemoveOrgMember(ctx, service.RemoveOrgMemberInput{
		UserID:           r.PathValue("userID"),
		OrganizationSlug: r.PathValue("slug"),
		Session:          data,
	})
	if res.IsOk() {
		h.flash(w, r, FlashMemberRemoved)
	}
	httpx.WriteResult(w, r, "remove_member", http.StatusOK, res)
}

func (h *OrgsHandler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Sessions == nil {
		return
	}
	if err := h.Sessions.SetFlash(w, r, msg); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to set flash", "error", err)
	}
}

// mapResult converts the data of an ok result, passing errors through.
func mapResult[T, U any](res result.Result[T], fn func(T) U) result.Result[U] {
	if !res.IsOk() {
		return result.Err[U](res.Error)
	}
	return result.Ok(fn(res.Data))
}
