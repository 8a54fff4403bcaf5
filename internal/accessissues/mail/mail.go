// Package mail renders the transactional emails of the login and invite
// flows.
package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

const (
	LoginCodeSubject = "Login to Access Issues"
	inviteSubject    = "You've been invited to %s on Access Issues"
)

//go:embed templates/*.tmpl
var files embed.FS

// Rendered is a subject with its plain text and HTML bodies.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

// Templates holds the parsed email templates.
type Templates struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func New() (*Templates, error) {
	text, err := texttemplate.ParseFS(files, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("mail: parse text templates: %w", err)
	}
	html, err := htmltemplate.ParseFS(files, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("mail: parse html templates: %w", err)
	}
	return &Templates{text: text, html: html}, nil
}

// LoginCode renders the email carrying a login passcode valid for lifetime.
func (t *Templates) LoginCode(code string, lifetime time.Duration) (Rendered, error) {
	data := struct {
		Code    string
		Minutes int
	}{code, int(lifetime.Minutes())}

	return t.render(LoginCodeSubject, "login_code", data)
}

// Invite renders the email telling a new member where to sign in.
func (t *Templates) Invite(organizationName, siteURL string) (Rendered, error) {
	data := struct {
		OrganizationName string
		SignInURL        string
	}{organizationName, SignInURL(siteURL)}

	return t.render(fmt.Sprintf(inviteSubject, organizationName), "invite", data)
}

// SignInURL is the login page of the site.
func SignInURL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + "/login"
}

func (t *Templates) render(subject, name string, data any) (Rendered, error) {
	var text, html bytes.Buffer
	if err := t.text.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return Rendered{}, fmt.Errorf("mail: render %s text: %w", name, err)
	}
	if err := t.html.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return Rendered{}, fmt.Errorf("mail: render %s html: %w", name, err)
	}
	return Rendered{Subject: subject, Text: text.String(), HTML: html.String()}, nil
}
