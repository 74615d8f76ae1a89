package notifier

import (
	"context"

	"github.com/google/uuid"

	"github.com/openshift-online/heartbeat/pkg/api"
	"github.com/openshift-online/heartbeat/pkg/logger"
)

var _ Notifier = &LogNotifier{}

// LogNotifier writes rendered notifications to the log instead of mailing them.
type LogNotifier struct {
	templates Templates
}

func NewLogNotifier(templates Templates) *LogNotifier {
	return &LogNotifier{templates: templates}
}

func (n *LogNotifier) Down(ctx context.Context, id uuid.UUID, name string) error {
	subject, body := n.templates.Down(id, name)
	n.log(api.ServerStateDown, id, name, subject, body)
	return nil
}

func (n *LogNotifier) Up(ctx context.Context, id uuid.UUID, name string) error {
	subject, body := n.templates.Up(id, name)
	n.log(api.ServerStateUp, id, name, subject, body)
	return nil
}

func (n *LogNotifier) log(state api.ServerState, id uuid.UUID, name, subject, body string) {
	logger.ForServer(id, name).Infow("server changed state",
		"state", state, "subject", subject, "body", body)
}
