package environments

import (
	"sync"

	"github.com/openshift-online/heartbeat/pkg/config"
	"github.com/openshift-online/heartbeat/pkg/notifier"
)

type Env struct {
	Name    string
	Clients Clients
	// packaging requires this construct for visiting
	ApplicationConfig ApplicationConfig
	// most code relies on env.Config
	Config *config.ApplicationConfig
}

type ApplicationConfig struct {
	ApplicationConfig *config.ApplicationConfig
}

type Clients struct {
	Notifier notifier.Notifier
}

var environment *Env
var once sync.Once
var environments map[string]EnvironmentImpl

// ApplicationConfig visitor
var _ ConfigVisitable = &ApplicationConfig{}

type ConfigVisitable interface {
	Accept(v ConfigVisitor) error
}

type ConfigVisitor interface {
	VisitConfig(c *ApplicationConfig) error
}

func (c *ApplicationConfig) Accept(v ConfigVisitor) error {
	return v.VisitConfig(c)
}

// Clients visitor
var _ ClientVisitable = &Clients{}

type ClientVisitor interface {
	VisitClients(c *Clients) error
}

type ClientVisitable interface {
	Accept(v ClientVisitor) error
}

func (c *Clients) Accept(v ClientVisitor) error {
	return v.VisitClients(c)
}
