package environments

import (
	"fmt"
	"path/filepath"
)

var _ EnvironmentImpl = &devEnvImpl{}

// devEnvImpl sends real mail and logs notifications at debug level. A relative --config is
// resolved against the working directory.
type devEnvImpl struct {
	env *Env
}

func (e *devEnvImpl) VisitConfig(c *ApplicationConfig) error {
	path, err := filepath.Abs(c.ApplicationConfig.ConfigFile)
	if err != nil {
		return fmt.Errorf("unable to resolve config file %q: %v", c.ApplicationConfig.ConfigFile, err)
	}
	c.ApplicationConfig.ConfigFile = path
	return nil
}

func (e *devEnvImpl) VisitClients(c *Clients) error {
	return nil
}

func (e *devEnvImpl) Flags() map[string]string {
	return map[string]string{
		"enable-sentry": "false",
		"smtp-timeout":  "10s",
		"log-level":     "debug",
	}
}
