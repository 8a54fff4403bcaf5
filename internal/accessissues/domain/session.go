package domain

// SessionData is the authenticated identity carried by the session cookie.
type SessionData struct {
	UserID string `json:"userId" validate:"required,ulid"`
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name"`
}
