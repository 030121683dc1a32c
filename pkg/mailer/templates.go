package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
	"time"
)

// PremiumNotice is the data for the premium grant/revoke emails sent by the
// notify worker.
type PremiumNotice struct {
	Name      string
	ExpiresAt *time.Time
}

const premiumGrantedText = `Hi {{.Name}},

Your premium access is now active{{if .ExpiresAt}} until {{.ExpiresAt.Format "02 January 2006"}}{{end}}.
Enjoy the full catalog, including premium-only titles.
`

const premiumGrantedHTML = `<p>Hi {{.Name}},</p>
<p>Your premium access is now active{{if .ExpiresAt}} until <strong>{{.ExpiresAt.Format "02 January 2006"}}</strong>{{end}}.</p>
<p>Enjoy the full catalog, including premium-only titles.</p>
`

const premiumRevokedText = `Hi {{.Name}},

Your premium access has ended. You can keep watching everything in the free catalog.
`

const premiumRevokedHTML = `<p>Hi {{.Name}},</p>
<p>Your premium access has ended. You can keep watching everything in the free catalog.</p>
`

var (
	textTemplates = texttpl.Must(texttpl.New("premium_granted").Parse(premiumGrantedText))
	htmlTemplates = htmltpl.Must(htmltpl.New("premium_granted").Parse(premiumGrantedHTML))
)

func init() {
	texttpl.Must(textTemplates.New("premium_revoked").Parse(premiumRevokedText))
	htmltpl.Must(htmlTemplates.New("premium_revoked").Parse(premiumRevokedHTML))
}

// RenderPremiumNotice renders subject, text and HTML bodies for the given
// template name ("premium_granted" or "premium_revoked").
func RenderPremiumNotice(name string, data PremiumNotice) (subject, text, html string, err error) {
	switch name {
	case "premium_granted":
		subject = "Your premium access is active"
	case "premium_revoked":
		subject = "Your premium access has ended"
	default:
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	if data.Name == "" {
		data.Name = "there"
	}

	var tb bytes.Buffer
	if err = textTemplates.ExecuteTemplate(&tb, name, data); err != nil {
		return "", "", "", err
	}
	var hb bytes.Buffer
	if err = htmlTemplates.ExecuteTemplate(&hb, name, data); err != nil {
		return "", "", "", err
	}
	return subject, tb.String(), hb.String(), nil
}
