package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/domain"
)

const userColumns = `id, name, email, otp_hash, token_hash, challenge_issued_at, created_at, updated_at`

type usersRepo struct {
	q *Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := r.q.exec(ctx,
		`INSERT INTO users (id, name, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil {
		return r.q.mapWriteError(err)
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return r.q.execOne(ctx, `DELETE FROM users WHERE id = ?`, userID)
}

func (r *usersRepo) SetChallenge(
	ctx context.Context,
	email, tokenHash, otpHash string,
	issuedAt time.Time,
) error {
	return r.q.execOne(ctx,
		`UPDATE users SET token_hash = ?, otp_hash = ?, challenge_issued_at = ?, updated_at = ? WHERE email = ?`,
		tokenHash, otpHash, issuedAt.UnixMilli(), time.Now().UTC(), email,
	)
}

func (r *usersRepo) ClearChallenge(ctx context.Context, userID string) error {
	return r.q.execOne(ctx,
		`UPDATE users SET token_hash = NULL, otp_hash = NULL, challenge_issued_at = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID,
	)
}

func (r *usersRepo) ClearExpiredChallenges(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.exec(ctx,
		`UPDATE users SET token_hash = NULL, otp_hash = NULL, challenge_issued_at = NULL
		 WHERE challenge_issued_at IS NOT NULL AND challenge_issued_at < ?`,
		before.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) AddToOrganization(
	ctx context.Context,
	userID, organizationID string,
	role domain.Role,
) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO users_to_organizations (user_id, organization_id, role) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, organization_id) DO UPDATE SET role = excluded.role`,
		userID, organizationID, string(role),
	)
	if err != nil {
		return r.q.mapWriteError(err)
	}
	return nil
}

func (r *usersRepo) RemoveFromOrganization(ctx context.Context, userID, organizationID string) error {
	return r.q.execOne(ctx,
		`DELETE FROM users_to_organizations WHERE user_id = ? AND organization_id = ?`,
		userID, organizationID,
	)
}

func (r *usersRepo) IsInOrganization(ctx context.Context, userID, organizationID string) (bool, error) {
	var count int
	err := r.q.queryRow(ctx,
		`SELECT COUNT(*) FROM users_to_organizations WHERE user_id = ? AND organization_id = ?`,
		userID, organizationID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		otpHash   sql.NullString
		tokenHash sql.NullString
		issuedAt  sql.NullInt64
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &otpHash, &tokenHash, &issuedAt, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return domain.User{}, err
	}

	u.OTPHash = mapNullStringPtr(otpHash)
	u.TokenHash = mapNullStringPtr(tokenHash)
	if issuedAt.Valid {
		t := time.UnixMilli(issuedAt.Int64).UTC()
		u.ChallengeIssuedAt = &t
	}
	return u, nil
}
