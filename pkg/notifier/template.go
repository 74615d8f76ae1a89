package notifier

import (
	"strings"

	"github.com/google/uuid"

	"github.com/openshift-online/heartbeat/pkg/config"
)

const (
	placeholderUUID = "%UUID%"
	placeholderName = "%NAME%"
)

// Templates holds the subject and body of the down and up messages.
type Templates struct {
	DownSubject string
	DownBody    string
	UpSubject   string
	UpBody      string
}

func NewTemplates(c *config.SMTPConfig) Templates {
	return Templates{
		DownSubject: c.DownSubject,
		DownBody:    c.DownBody,
		UpSubject:   c.UpSubject,
		UpBody:      c.UpBody,
	}
}

// Down returns the rendered subject and body of a down message.
func (t Templates) Down(id uuid.UUID, name string) (string, string) {
	return Render(t.DownSubject, id, name), Render(t.DownBody, id, name)
}

// Up returns the rendered subject and body of an up message.
func (t Templates) Up(id uuid.UUID, name string) (string, string) {
	return Render(t.UpSubject, id, name), Render(t.UpBody, id, name)
}

// Render replaces every %UUID% and %NAME% in tmpl. The replacement is done in a single pass, so a
// server name containing a placeholder is not expanded again.
func Render(tmpl string, id uuid.UUID, name string) string {
	return strings.NewReplacer(placeholderUUID, id.String(), placeholderName, name).Replace(tmpl)
}
