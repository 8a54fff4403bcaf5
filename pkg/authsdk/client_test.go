package authsdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shanco/accessissues/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, status int, body string) *authsdk.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := authsdk.NewClient(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestEnvelopeDecoding(t *testing.T) {
	ctx := context.Background()

	t.Run("data", func(t *testing.T) {
		c := stubServer(t, http.StatusOK, `{"key":"login","data":{"token":"tok","redirect":"/login/tok"},"error":null}`)
		res, err := c.SendCode(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, "tok", res.Token)
	})

	t.Run("error with issues", func(t *testing.T) {
		c := stubServer(t, http.StatusBadRequest, `{"key":"add_member","data":null,"error":{"code":"VALIDATION","message":"Invalid inputs","context":{"issues":[{"path":"email","message":"email must be a valid email address"}]}}}`)
		err := c.AddMember(ctx, "crag", authsdk.AddMemberRequest{})
		require.True(t, authsdk.IsCode(err, authsdk.CodeValidation))

		var apiErr *authsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, []authsdk.Issue{{Path: "email", Message: "email must be a valid email address"}}, apiErr.Issues)
	})

	t.Run("null data", func(t *testing.T) {
		c := stubServer(t, http.StatusOK, `{"key":"org","data":null,"error":null}`)
		org, err := c.GetOrg(ctx, "nope")
		require.NoError(t, err)
		require.Nil(t, org)

		_, err = c.GetRole(ctx, "nope")
		require.ErrorIs(t, err, authsdk.ErrNoData)
	})

	t.Run("non json failure", func(t *testing.T) {
		c := stubServer(t, http.StatusBadGateway, `upstream down`)
		_, err := c.ListOrgs(ctx)

		var apiErr *authsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		require.Empty(t, apiErr.Code)
		require.Equal(t, "upstream down", apiErr.Message)
	})
}

func TestReadyReturnsDegradedBody(t *testing.T) {
	c := stubServer(t, http.StatusServiceUnavailable, `{"status":"degraded","uptime":"1s","version":"v","checks":{"database":"error: closed"}}`)

	health, err := c.Ready(context.Background())
	require.Error(t, err)
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "error: closed", health.Checks.Database)
}

func TestLogoutAcceptsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}))
	t.Cleanup(srv.Close)

	c, err := authsdk.NewClient(srv.URL)
	require.NoError(t, err)
	require.NoError(t, c.Logout(context.Background()))
}
