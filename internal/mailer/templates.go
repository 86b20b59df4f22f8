package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// The three mail bodies the notification service renders. Each template is
// named after the notification it serves.
const (
	TemplateWelcome      = "welcome"
	TemplateEventRequest = "event-request"
	TemplateEventReply   = "event-reply"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "welcome"}}<html>
<body>
  <h2>Welcome to Event Social App, {{.Name}}!</h2>
  <p>Your registration was successful. Create an event or find one to join.</p>
</body>
</html>{{end}}

{{define "event-request"}}<html>
<body>
  <h2>Hi {{.Name}},</h2>
  <p><strong>{{.RequesterName}}</strong> has requested to join your event
  <strong>{{.EventTitle}}</strong>.</p>
  <p>Log in to accept or reject the request.</p>
</body>
</html>{{end}}

{{define "event-reply"}}<html>
<body>
  <h2>Hi {{.Name}},</h2>
  <p>Your request to join <strong>{{.EventTitle}}</strong> has been
  <strong>{{.Status}}</strong>.</p>
</body>
</html>{{end}}
`))

// Render executes the named template with the given data and returns the
// HTML body.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}
