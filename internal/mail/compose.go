package mail

import (
	htmltemplate "html/template"
	"net/url"
	"strings"
	"text/template"
)

var (
	registrationText = template.Must(template.New("registration").Parse(`Hello, {{.Username}}, and thanks for signing up for an account!

To send you emails, we need you to activate your account with {{.Site}}. To activate your account, click this link within 5 days:

{{.ConfirmURL}}

Thanks for using our site,

The CourtListener team

-------------------
For questions or comments, please see our contact page, {{.BaseURL}}/contact/.
`))

	resendText = template.Must(template.New("resend").Parse(`Hello, {{.Username}},

Please confirm your email address by clicking the following link within 5 days:

{{.ConfirmURL}}

Thanks for using our site,

The CourtListener team

-------------------
For questions or comments, please visit our contact page, {{.BaseURL}}/contact/.
`))

	emailChangedText = template.Must(template.New("email_changed").Parse(`Hello, {{.Username}},

You have successfully changed your email address at {{.Site}}. Please confirm this change by clicking the following link within 5 days:

{{.ConfirmURL}}

Thanks for using our site,

The CourtListener team

-------------------
For questions or comments, please see our contact page, {{.BaseURL}}/contact/.
`))

	digestText = template.Must(template.New("digest").Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).Parse(`Hello, {{.Username}},
{{if .Hits}}
Your {{.Frequency}} alert "{{.AlertName}}" found {{len .Hits}} new result(s) for: {{.Query}}
{{range $i, $h := .Hits}}
{{inc $i}}. {{$h.Title}}{{if $h.DateFiled}} ({{$h.DateFiled}}){{end}}
   {{$h.URL}}{{if $h.Snippet}}
   {{$h.Snippet}}{{end}}
{{end}}{{else}}
Your {{.Frequency}} alert "{{.AlertName}}" found no new results for: {{.Query}}
{{end}}
View the full results: {{.SearchURL}}

Edit or disable this alert: {{.BaseURL}}/profile/alerts/

The CourtListener team
`))

	digestHTML = htmltemplate.Must(htmltemplate.New("digest").Parse(`<html><body>
<p>Hello, {{.Username}},</p>
{{if .Hits}}<p>Your {{.Frequency}} alert <strong>{{.AlertName}}</strong> found {{len .Hits}} new result(s) for <em>{{.Query}}</em>:</p>
<ol>{{range .Hits}}
<li><a href="{{.URL}}">{{.Title}}</a>{{if .DateFiled}} ({{.DateFiled}}){{end}}{{if .Snippet}}<br>{{.Snippet}}{{end}}</li>{{end}}
</ol>{{else}}<p>Your {{.Frequency}} alert <strong>{{.AlertName}}</strong> found no new results for <em>{{.Query}}</em>.</p>{{end}}
<p><a href="{{.SearchURL}}">View the full results</a></p>
<p><a href="{{.BaseURL}}/profile/alerts/">Edit or disable this alert</a></p>
<p>The CourtListener team</p>
</body></html>
`))
)

// Composer renders the account and alert mails for one site.
type Composer struct {
	siteName string
	baseURL  string
}

func NewComposer(siteName, baseURL string) *Composer {
	return &Composer{siteName: siteName, baseURL: strings.TrimRight(baseURL, "/")}
}

type confirmationData struct {
	Username   string
	Site       string
	BaseURL    string
	ConfirmURL string
}

func (c *Composer) confirmation(username, activationKey string) confirmationData {
	return confirmationData{
		Username:   username,
		Site:       c.siteName,
		BaseURL:    c.baseURL,
		ConfirmURL: c.baseURL + "/email/confirm/" + activationKey + "/",
	}
}

func (c *Composer) Registration(to, username, activationKey string) (Message, error) {
	body, err := render(registrationText, c.confirmation(username, activationKey))
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       to,
		Subject:  "Confirm your account on " + c.siteName,
		TextBody: body,
		Kind:     KindRegistration,
	}, nil
}

func (c *Composer) ResendConfirmation(to, username, activationKey string) (Message, error) {
	body, err := render(resendText, c.confirmation(username, activationKey))
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       to,
		Subject:  "Confirm your account on " + c.siteName,
		TextBody: body,
		Kind:     KindConfirmationResend,
	}, nil
}

func (c *Composer) EmailChanged(to, username, activationKey string) (Message, error) {
	body, err := render(emailChangedText, c.confirmation(username, activationKey))
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       to,
		Subject:  "Email changed successfully on " + c.siteName,
		TextBody: body,
		Kind:     KindEmailChanged,
	}, nil
}

type DigestHit struct {
	Title     string
	URL       string
	Snippet   string
	DateFiled string
}

type Digest struct {
	To        string
	Username  string
	AlertName string
	Query     string
	Frequency string
	Hits      []DigestHit
	Plaintext bool
}

type digestData struct {
	Digest
	BaseURL   string
	SearchURL string
}

func (c *Composer) AlertDigest(d Digest) (Message, error) {
	data := digestData{
		Digest:    d,
		BaseURL:   c.baseURL,
		SearchURL: c.searchURL(d.Query),
	}

	text, err := render(digestText, data)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		To:       d.To,
		TextBody: text,
		Kind:     KindAlertDigest,
		Subject:  "[" + c.siteName + "] New hits for your alert: " + d.AlertName,
	}
	if len(d.Hits) == 0 {
		msg.Kind = KindAlertDigestNegative
		msg.Subject = "[" + c.siteName + "] No new hits for your alert: " + d.AlertName
	}

	if !d.Plaintext {
		var b strings.Builder
		if err := digestHTML.Execute(&b, data); err != nil {
			return Message{}, err
		}
		msg.HTMLBody = b.String()
	}
	return msg, nil
}

// searchURL links to the site search for a saved alert query, which is either
// a query string ("q=foo&type=oa") or plain search text.
func (c *Composer) searchURL(query string) string {
	query = strings.TrimPrefix(query, "?")
	if strings.Contains(query, "q=") || strings.Contains(query, "type=") {
		return c.baseURL + "/?" + query
	}
	return c.baseURL + "/?" + url.Values{"q": {query}}.Encode()
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
