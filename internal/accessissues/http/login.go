package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shanco/accessissues/internal/accessissues/service"
	"github.com/shanco/accessissues/internal/accessissues/session"
	"github.com/shanco/accessissues/pkg/authsdk"
	"github.com/shanco/accessissues/pkg/httpx"
	"github.com/shanco/accessissues/pkg/result"
	"github.com/shanco/accessissues/pkg/slogx"
	"github.com/shanco/accessissues/pkg/validatex"
)

const (
	MsgInvalidEmail   = "Invalid email"
	MsgSendCodeFailed = "Unable to send verification code."
	MsgInvalidOTP     = "Invalid OTP"

	otpLength   = 6
	keySendCode = "login"
	keyVerify   = "login_token"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Sessions    *session.Manager
	Validator   *validatex.Validator
}

// HandleSendCode godoc
//
//	@Summary		Send a login code
//	@Description	Emails a 6-digit passcode to a registered address and returns the signed login token.
//	@Description	Unknown addresses fail the same way as delivery failures.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			request		body		authsdk.SendCodeRequest								true	"Email address"
//	@Param			redirectTo	query		string												false	"Path to return to after login"
//	@Success		200			{object}	authsdk.Envelope[authsdk.SendCodeResponse]			"Login token and passcode page"
//	@Failure		400			{object}	authsdk.Envelope[authsdk.SendCodeResponse]			"Invalid email or unable to send"
//	@Failure		429			{object}	authsdk.Envelope[authsdk.SendCodeResponse]			"Too many requests"
//	@Router			/v1/login [post].
func (h *LoginHandler) HandleSendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.SendCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeErr[authsdk.SendCodeResponse](w, r, keySendCode, result.New(result.CodeValidation, MsgInvalidEmail, result.Context{Err: err}))
		return
	}
	email := strings.TrimSpace(req.Email)

	issues, err := h.Validator.Var(email, "required,email")
	if err != nil || len(issues) > 0 {
		writeErr[authsdk.SendCodeResponse](w, r, keySendCode, result.New(result.CodeValidation, MsgInvalidEmail, result.Context{Issues: issues, Err: err}))
		return
	}

	sent := h.AuthService.SendOTP(ctx, email)
	if !sent.IsOk() {
		// Full cause goes to the log, the client only learns that it failed.
		result.Log(ctx, log, sent.Error)
		writeErr[authsdk.SendCodeResponse](w, r, keySendCode, result.New(result.CodeOTP, MsgSendCodeFailed, result.Context{}))
		return
	}

	redirectTo := safeRedirect(firstNonEmpty(r.URL.Query().Get("redirectTo"), req.RedirectTo))
	token := sent.Data

	httpx.WriteResult(w, r, keySendCode, http.StatusOK, result.Ok(authsdk.SendCodeResponse{
		Token:    token,
		Redirect: "/login/" + url.PathEscape(token) + "?redirectTo=" + url.QueryEscape(redirectTo),
	}))
}

// HandleVerify godoc
//
//	@Summary		Verify a login code
//	@Description	Exchanges a login token and its passcode for the session cookie. Every failure reads "Invalid OTP".
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			token		path		string									true	"Login token"
//	@Param			request		body		authsdk.VerifyRequest					true	"Passcode"
//	@Param			redirectTo	query		string									false	"Path to return to"
//	@Success		200			{object}	authsdk.Envelope[authsdk.VerifyResponse]	"Session cookie set"
//	@Failure		401			{object}	authsdk.Envelope[authsdk.VerifyResponse]	"Invalid OTP"
//	@Failure		429			{object}	authsdk.Envelope[authsdk.VerifyResponse]	"Too many requests"
//	@Router			/v1/login/{token} [post].
func (h *LoginHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	invalid := result.New(result.CodeAuthentication, MsgInvalidOTP, result.Context{})

	var req authsdk.VerifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeErr[authsdk.VerifyResponse](w, r, keyVerify, invalid)
		return
	}

	token := strings.TrimSpace(r.PathValue("token"))
	otp := strings.TrimSpace(req.OTP)
	if token == "" || len(otp) != otpLength {
		writeErr[authsdk.VerifyResponse](w, r, keyVerify, invalid)
		return
	}

	authed := h.AuthService.Authenticate(ctx, token, otp)
	if !authed.IsOk() {
		result.Log(ctx, log, authed.Error)
		writeErr[authsdk.VerifyResponse](w, r, keyVerify, invalid)
		return
	}

	if err := h.Sessions.Set(w, r, authed.Data); err != nil {
		_ = httpx.WriteCaught[authsdk.VerifyResponse](w, r, keyVerify, err)
		return
	}

	log.Info("login completed", slog.String("user_id", authed.Data.UserID))
	httpx.WriteResult(w, r, keyVerify, http.StatusOK, result.Ok(authsdk.VerifyResponse{
		Redirect: safeRedirect(firstNonEmpty(r.URL.Query().Get("redirectTo"), req.RedirectTo)),
	}))
}

// safeRedirect keeps redirects on this site: only absolute paths are
// accepted, anything else becomes "/".
func safeRedirect(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeErr[T any](w http.ResponseWriter, r *http.Request, key string, e *result.AppError) {
	httpx.WriteResult(w, r, key, http.StatusOK, result.Err[T](e))
}
