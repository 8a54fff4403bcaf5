package authsdk

// Envelope is the keyed result every JSON endpoint writes.
type Envelope[T any] struct {
	Key   string     `json:"key"`
	Data  *T         `json:"data"`
	Error *ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Context *ErrorContext `json:"context,omitempty"`
}

// ErrorContext only ever carries validation issues to clients.
type ErrorContext struct {
	Issues []Issue `json:"issues,omitempty"`
}

type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SendCodeRequest starts a login.
type SendCodeRequest struct {
	Email      string `json:"email" example:"climber@example.com"`
	RedirectTo string `json:"redirectTo,omitempty" example:"/orgs/crag-keepers"`
}

type SendCodeResponse struct {
	// Token is the signed login token to send back with the passcode.
	Token string `json:"token"`

	// Redirect is the passcode entry page for Token.
	Redirect string `json:"redirect" example:"/login/eyJhbGciOi...?redirectTo=%2F"`
}

// VerifyRequest completes a login with the emailed passcode.
type VerifyRequest struct {
	OTP        string `json:"otp" example:"123456"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

type VerifyResponse struct {
	Redirect string `json:"redirect" example:"/"`
}

type SessionUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type SessionResponse struct {
	User  SessionUser `json:"user"`
	Flash string      `json:"flash,omitempty"`
}

type LogoutResponse struct {
	Redirect string `json:"redirect" example:"/login"`
}

type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	NumIssues   int    `json:"numIssues"`
	DonateURL   string `json:"donateUrl,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

type OrganizationSummary struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type RoleResponse struct {
	Role    string `json:"role" example:"ORGANIZATION_ADMIN"`
	IsAdmin bool   `json:"isAdmin"`
}

type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AddMemberRequest makes a user, created when missing, an administrator.
type AddMemberRequest struct {
	Name  string `json:"name" example:"Dana"`
	Email string `json:"email" example:"dana@example.com"`
}

// HealthResponse is written by /livez and /readyz outside the envelope.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
