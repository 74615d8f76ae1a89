package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/openshift-online/heartbeat/pkg/api"
	"github.com/openshift-online/heartbeat/pkg/config"
	"github.com/openshift-online/heartbeat/pkg/errors"
	"github.com/openshift-online/heartbeat/pkg/logger"
)

var _ Notifier = &SMTPNotifier{}

// mailSender is the part of *mail.Client used to deliver a message.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPNotifier sends one plain text email per transition. The connection is upgraded with STARTTLS
// and authenticated with username and password; implicit TLS is never used.
type SMTPNotifier struct {
	client    mailSender
	templates Templates
	fromName  string
	fromEmail string
	toName    string
	toEmail   string
}

func NewSMTPNotifier(c *config.SMTPConfig) (*SMTPNotifier, error) {
	client, err := mail.NewClient(c.Hostname,
		mail.WithPort(c.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.Username),
		mail.WithPassword(c.Password),
		mail.WithTimeout(c.Timeout),
	)
	if err != nil {
		return nil, errors.ConfigError("unable to create smtp client for %s:%d: %v", c.Hostname, c.Port, err)
	}
	return newSMTPNotifier(client, c), nil
}

func newSMTPNotifier(client mailSender, c *config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		client:    client,
		templates: NewTemplates(c),
		fromName:  c.FromName,
		fromEmail: c.FromEmail,
		toName:    c.ToName,
		toEmail:   c.ToEmail,
	}
}

func (n *SMTPNotifier) Down(ctx context.Context, id uuid.UUID, name string) error {
	subject, body := n.templates.Down(id, name)
	return n.send(ctx, api.ServerStateDown, id, name, subject, body)
}

func (n *SMTPNotifier) Up(ctx context.Context, id uuid.UUID, name string) error {
	subject, body := n.templates.Up(id, name)
	return n.send(ctx, api.ServerStateUp, id, name, subject, body)
}

func (n *SMTPNotifier) send(ctx context.Context, state api.ServerState, id uuid.UUID, name, subject, body string) error {
	msg, err := n.message(subject, body)
	if err != nil {
		return errors.NotificationError(err, "unable to build %s message for server %s (%s)", state, name, id)
	}
	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.NotificationError(err, "unable to send %s message for server %s (%s)", state, name, id)
	}
	logger.ForServer(id, name).Debugw("notification sent", "state", state, "to", n.toEmail)
	return nil
}

func (n *SMTPNotifier) message(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(n.fromName, n.fromEmail); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", n.fromEmail, err)
	}
	if err := msg.AddToFormat(n.toName, n.toEmail); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", n.toEmail, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
