package domain

import "time"

type Organization struct {
	ID          string
	Name        string
	Slug        string
	Description string
	NumIssues   int
	DonateURL   string
	LogoURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Members holds the role assignments of the organization. Only populated
	// by lookups that join memberships.
	Members []Membership
}

// Membership is a row of users_to_organizations. Role is the raw stored
// value; use ParseRole before trusting it.
type Membership struct {
	UserID         string
	OrganizationID string
	Role           string
}

// Member is a user listed together with their role in one organization.
type Member struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// OrganizationSummary is the public card of an organization.
type OrganizationSummary struct {
	ID      string
	Slug    string
	Name    string
	LogoURL string
}

func (o *Organization) Summary() *OrganizationSummary {
	return &OrganizationSummary{
		ID:      o.ID,
		Slug:    o.Slug,
		Name:    o.Name,
		LogoURL: o.LogoURL,
	}
}
