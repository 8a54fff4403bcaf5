package domain

import "time"

type User struct {
	ID        string
	Name      string
	Email     string
	OTPHash   *string // bcrypt, nil when no login is pending
	TokenHash *string // bcrypt of the login nonce, nil when no login is pending

	// ChallengeIssuedAt is when the pending challenge was written. Nil when no
	// login is pending.
	ChallengeIssuedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasChallenge reports whether a login challenge is pending for the user.
func (u *User) HasChallenge() bool {
	return u.OTPHash != nil && u.TokenHash != nil
}
