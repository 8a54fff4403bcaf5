package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SendCode emails a login passcode to email.
func (c *Client) SendCode(ctx context.Context, email string) (*SendCodeResponse, error) {
	return call[SendCodeResponse](ctx, c, http.MethodPost, "/v1/login", SendCodeRequest{Email: email})
}

// Verify exchanges a login token and its passcode for the session cookie.
func (c *Client) Verify(ctx context.Context, token, otp string) (*VerifyResponse, error) {
	return call[VerifyResponse](ctx, c, http.MethodPost, "/v1/login/"+url.PathEscape(token), VerifyRequest{OTP: otp})
}

// Session returns the signed-in user.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	return call[SessionResponse](ctx, c, http.MethodGet, "/v1/session", nil)
}

// Logout ends the session. The server answers with a redirect to the login
// page, which is not followed.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/logout", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther && resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}
