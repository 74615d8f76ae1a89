package environments

import (
	"fmt"
)

var _ EnvironmentImpl = &productionEnvImpl{}

type productionEnvImpl struct {
	env *Env
}

// VisitConfig refuses to run production without mail, nobody would hear about an outage.
func (e *productionEnvImpl) VisitConfig(c *ApplicationConfig) error {
	if c.ApplicationConfig.SMTP.Disabled {
		return fmt.Errorf("--smtp-disabled is not allowed in the production environment")
	}
	return nil
}

func (e *productionEnvImpl) VisitClients(c *Clients) error {
	return nil
}

func (e *productionEnvImpl) Flags() map[string]string {
	return map[string]string{
		"enable-sentry": "true",
		"log-level":     "info",
	}
}
