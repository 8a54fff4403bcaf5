package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/domain"
)

const organizationColumns = `id, name, slug, description, num_issues, donate_url, logo_url, created_at, updated_at`

type organizationsRepo struct {
	q *Queries
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}

	_, err := r.q.exec(ctx,
		`INSERT INTO organizations (`+organizationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Slug, o.Description, o.NumIssues,
		mapStringNull(o.DonateURL), mapStringNull(o.LogoURL),
		o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	)
	if err != nil {
		return r.q.mapWriteError(err)
	}
	return nil
}

func (r *organizationsRepo) GetOrganizationBySlug(ctx context.Context, slug string) (domain.Organization, error) {
	row := r.q.queryRow(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE slug = ?`, slug)
	org, err := scanOrganization(row)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}

	rows, err := r.q.query(ctx,
		`SELECT user_id, organization_id, role FROM users_to_organizations WHERE organization_id = ? ORDER BY user_id`,
		org.ID,
	)
	if err != nil {
		return domain.Organization{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.UserID, &m.OrganizationID, &m.Role); err != nil {
			return domain.Organization{}, err
		}
		org.Members = append(org.Members, m)
	}
	if err := rows.Err(); err != nil {
		return domain.Organization{}, err
	}

	return org, nil
}

func (r *organizationsRepo) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	rows, err := r.q.query(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *organizationsRepo) GetOrganizationRole(ctx context.Context, organizationID, userID string) (string, error) {
	var role string
	err := r.q.queryRow(ctx,
		`SELECT role FROM users_to_organizations WHERE organization_id = ? AND user_id = ?`,
		organizationID, userID,
	).Scan(&role)
	if err != nil {
		return "", mapNotFound(err)
	}
	return role, nil
}

func (r *organizationsRepo) ListOrganizationMembers(ctx context.Context, organizationID string) ([]domain.Member, error) {
	rows, err := r.q.query(ctx,
		`SELECT u.id, u.name, u.email, uto.role
		 FROM users_to_organizations uto
		 JOIN users u ON u.id = uto.user_id
		 WHERE uto.organization_id = ?
		 ORDER BY u.name, u.id`,
		organizationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var (
			m    domain.Member
			role string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &role); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		members = append(members, m)
	}
	return members, rows.Err()
}

func scanOrganization(row rowScanner) (domain.Organization, error) {
	var (
		o         domain.Organization
		donateURL sql.NullString
		logoURL   sql.NullString
	)
	if err := row.Scan(
		&o.ID, &o.Name, &o.Slug, &o.Description, &o.NumIssues,
		&donateURL, &logoURL, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return domain.Organization{}, err
	}
	o.DonateURL = mapNullString(donateURL)
	o.LogoURL = mapNullString(logoURL)
	return o, nil
}
