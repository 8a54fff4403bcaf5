package store

import (
	"context"
	"errors"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories hang off it so a Tx-scoped Store can hand
// out the same repos bound to the transaction.
type Store interface {
	Users() Users
	Organizations() Organizations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, rolling back when fn returns an error
	// and committing otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used by the login handshake to find the challenge.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser cascades to organization memberships (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// SetChallenge overwrites the pending login challenge of the user with
	// email. Returns ErrNotFound when no user has that email.
	SetChallenge(ctx context.Context, email, tokenHash, otpHash string, issuedAt time.Time) error

	// ClearChallenge drops the pending challenge so it cannot be replayed.
	ClearChallenge(ctx context.Context, userID string) error

	// ClearExpiredChallenges drops every challenge issued before the cutoff
	// and returns how many were cleared.
	ClearExpiredChallenges(ctx context.Context, before time.Time) (int64, error)

	// AddToOrganization assigns role, replacing any existing assignment.
	AddToOrganization(ctx context.Context, userID, organizationID string, role domain.Role) error
	RemoveFromOrganization(ctx context.Context, userID, organizationID string) error
	IsInOrganization(ctx context.Context, userID, organizationID string) (bool, error)
}

type Organizations interface {
	CreateOrganization(ctx context.Context, o domain.Organization) error

	// GetOrganizationBySlug returns the organization with its role
	// assignments in Members.
	GetOrganizationBySlug(ctx context.Context, slug string) (domain.Organization, error)

	// ListOrganizations returns all organizations ordered by name, without
	// members.
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)

	// GetOrganizationRole returns the raw stored role of userID.
	GetOrganizationRole(ctx context.Context, organizationID, userID string) (string, error)

	// ListOrganizationMembers returns the users of an organization ordered by
	// name. Member.Role is the stored value and may be unknown.
	ListOrganizationMembers(ctx context.Context, organizationID string) ([]domain.Member, error)
}
