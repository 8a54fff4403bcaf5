package http

import (
	"net/http"

	"github.com/shanco/accessissues/internal/accessissues/session"
	"github.com/shanco/accessissues/pkg/authsdk"
	"github.com/shanco/accessissues/pkg/httpx"
	"github.com/shanco/accessissues/pkg/result"
)

type SessionHandler struct {
	Sessions *session.Manager
}

// HandleSession godoc
//
//	@Summary		Current session
//	@Description	Returns the signed-in user and pops the pending flash message.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	authsdk.Envelope[authsdk.SessionResponse]	"Signed-in user"
//	@Failure		401	{object}	authsdk.Envelope[authsdk.SessionResponse]	"Unable to get session."
//	@Security		SessionCookie
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	data, ok := session.FromContext(r.Context())
	if !ok {
		writeErr[authsdk.SessionResponse](w, r, "session", result.New(result.CodeAuthentication, session.MsgUnableToGetSession, result.Context{}))
		return
	}

	flash, err := h.Sessions.PopFlash(w, r)
	if err != nil {
		_ = httpx.WriteCaught[authsdk.SessionResponse](w, r, "session", err)
		return
	}

	httpx.WriteResult(w, r, "session", http.StatusOK, result.Ok(authsdk.SessionResponse{
		User:  authsdk.SessionUser{UserID: data.UserID, Email: data.Email, Name: data.Name},
		Flash: flash,
	}))
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Destroys the session cookie and redirects to the login page.
//	@Tags			Session
//	@Success		303	"Redirect to /login"
//	@Router			/v1/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w, r)
}
