package authsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

func orgPath(slug string, rest ...string) string {
	p := "/v1/orgs/" + url.PathEscape(slug)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

func (c *Client) ListOrgs(ctx context.Context) ([]Organization, error) {
	orgs, err := call[[]Organization](ctx, c, http.MethodGet, "/v1/orgs", nil)
	if err != nil {
		return nil, err
	}
	return *orgs, nil
}

// GetOrg returns nil without error when slug does not exist.
func (c *Client) GetOrg(ctx context.Context, slug string) (*OrganizationSummary, error) {
	org, err := call[OrganizationSummary](ctx, c, http.MethodGet, orgPath(slug), nil)
	if errors.Is(err, ErrNoData) {
		return nil, nil
	}
	return org, err
}

func (c *Client) GetRole(ctx context.Context, slug string) (*RoleResponse, error) {
	return call[RoleResponse](ctx, c, http.MethodGet, orgPath(slug, "role"), nil)
}

func (c *Client) ListMembers(ctx context.Context, slug string) ([]Member, error) {
	members, err := call[[]Member](ctx, c, http.MethodGet, orgPath(slug, "members"), nil)
	if err != nil {
		return nil, err
	}
	return *members, nil
}

// AddMember makes email an administrator of the organization.
func (c *Client) AddMember(ctx context.Context, slug string, req AddMemberRequest) error {
	_, err := call[bool](ctx, c, http.MethodPost, orgPath(slug, "members"), req)
	return err
}

func (c *Client) RemoveMember(ctx context.Context, slug, userID string) error {
	_, err := call[bool](ctx, c, http.MethodDelete, orgPath(slug, "members", userID), nil)
	return err
}
