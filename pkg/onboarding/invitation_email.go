package onboarding

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

var invitationTmpl = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2d1f;">
  <h2>You have been invited to {{.TenantName}}</h2>
  <p>Hello{{if .FullName}} {{.FullName}}{{end}},</p>
  <p>An administrator created a workspace for your farm operation and
  invited you to take ownership of it. Follow the link below to set a
  password and finish your registration.</p>
  <p><a href="{{.Link}}" style="background: #2f7d32; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">Complete registration</a></p>
  <p>The link is valid for 48 hours. If it expires, ask your
  administrator to send a new invitation.</p>
  <p>If you were not expecting this email you can safely ignore it.</p>
</body>
</html>`))

type invitationEmailData struct {
	FullName   string
	TenantName string
	Link       string
}

// renderInvitationEmail builds the invitation email body. The link
// points at the registration page with the token in the query string.
func renderInvitationEmail(baseURL, token, fullName, tenantName string) (string, error) {
	link := strings.TrimRight(baseURL, "/") + "/register?token=" + url.QueryEscape(token)

	var b strings.Builder
	err := invitationTmpl.Execute(&b, invitationEmailData{
		FullName:   fullName,
		TenantName: tenantName,
		Link:       link,
	})
	if err != nil {
		return "", fmt.Errorf("render invitation email: %w", err)
	}
	return b.String(), nil
}
