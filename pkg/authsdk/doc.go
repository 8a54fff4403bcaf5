/*
Package authsdk is the Go client of the Access Issues service and the home of
the request and response types its handlers use.

Every JSON endpoint answers with a keyed result envelope:

	{"key": "login", "data": {...}, "error": null}
	{"key": "login", "data": null, "error": {"code": "OTP", "message": "Invalid email"}}

Failed envelopes come back from the client as *APIError.

# Login

The login handshake takes two calls. SendCode emails a passcode and returns
the login token; Verify exchanges the token and passcode for the session
cookie, which the client keeps in its cookie jar:

	client, err := authsdk.NewClient("https://accessissues.example.com")
	sent, err := client.SendCode(ctx, "a@x.com")
	// read the code from the email
	_, err = client.Verify(ctx, sent.Token, "123456")
	me, err := client.Session(ctx)

Logout drops the cookie on both sides.
*/
package authsdk
