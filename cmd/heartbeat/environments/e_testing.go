package environments

import (
	"github.com/openshift-online/heartbeat/pkg/notifier"
)

var _ EnvironmentImpl = &testingEnvImpl{}

// testingEnvImpl never talks to an SMTP server and binds nothing on well known ports.
type testingEnvImpl struct {
	env *Env
}

func (e *testingEnvImpl) VisitConfig(c *ApplicationConfig) error {
	return nil
}

// VisitClients replaces whatever notifier the flags selected with a LogNotifier.
func (e *testingEnvImpl) VisitClients(c *Clients) error {
	if _, ok := c.Notifier.(*notifier.LogNotifier); ok {
		return nil
	}
	c.Notifier = notifier.NewLogNotifier(notifier.NewTemplates(e.env.Config.SMTP))
	return nil
}

func (e *testingEnvImpl) Flags() map[string]string {
	return map[string]string{
		"enable-sentry":                "false",
		"smtp-disabled":                "true",
		"heartbeat-bind-address":       "127.0.0.1",
		"heartbeat-bindport":           "0",
		"health-check-server-bindport": "0",
		"metrics-server-bindport":      "0",
		"sweep-interval":               "100ms",
		"liveness-threshold":           "1s",
	}
}
