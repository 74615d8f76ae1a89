package environments

import (
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	envtypes "github.com/openshift-online/heartbeat/cmd/heartbeat/environments/types"
	"github.com/openshift-online/heartbeat/pkg/config"
	"github.com/openshift-online/heartbeat/pkg/errors"
	"github.com/openshift-online/heartbeat/pkg/logger"
	"github.com/openshift-online/heartbeat/pkg/notifier"
)

func init() {
	once.Do(func() {
		environment = &Env{}

		// Create the configuration
		environment.Config = config.NewApplicationConfig()
		environment.ApplicationConfig = ApplicationConfig{environment.Config}
		environment.Name = envtypes.GetEnvironmentStrFromEnv()

		environments = environmentImpls(environment)
	})
}

func environmentImpls(env *Env) map[string]EnvironmentImpl {
	return map[string]EnvironmentImpl{
		envtypes.DevelopmentEnv: &devEnvImpl{env},
		envtypes.TestingEnv:     &testingEnvImpl{env},
		envtypes.ProductionEnv:  &productionEnvImpl{env},
	}
}

// environmentImpl returns the behaviors of the named environment bound to e.
func (e *Env) environmentImpl() (EnvironmentImpl, bool) {
	impls := environments
	if e != environment {
		impls = environmentImpls(e)
	}
	envImpl, found := impls[e.Name]
	return envImpl, found
}

// EnvironmentImpl defines a set of behaviors for a heartbeat environment.
// Each environment provides a set of flags for basic set/override of the environment,
// a config visitor applied after flag parsing but before ReadFiles is called, and a
// clients visitor applied once the notifier configured by the flags has been created.
type EnvironmentImpl interface {
	ConfigVisitor
	ClientVisitor
	Flags() map[string]string
}

func Environment() *Env {
	return environment
}

// Adds environment flags, using the environment's config struct, to the flagset 'flags'
func (e *Env) AddFlags(flags *pflag.FlagSet) error {
	envImpl, found := e.environmentImpl()
	if !found {
		return fmt.Errorf("unknown runtime environment: %s", e.Name)
	}
	e.Config.AddFlags(flags)
	return setConfigDefaults(flags, envImpl.Flags())
}

// Initialize loads the configuration files and creates the clients.
// This should be called after the e.Config has been set appropriately though AddFlags and parsing, done elsewhere.
// The environment does NOT handle flag parsing.
func (e *Env) Initialize() error {
	klog.Infof("Initializing environment: %s", e.Name)

	envImpl, found := e.environmentImpl()
	if !found {
		return errors.ConfigError("unknown runtime environment: %s", e.Name)
	}

	if err := e.ApplicationConfig.Accept(envImpl); err != nil {
		return errors.ConfigError("failed to visit ApplicationConfig: %v", err)
	}

	messages := e.Config.ReadFiles()
	if len(messages) != 0 {
		return errors.ConfigError("unable to read configuration files:\n%s", strings.Join(messages, "\n"))
	}

	if e.Config.LogLevel != "" {
		logger.SetLogLevel(e.Config.LogLevel)
	}

	if err := e.InitializeSentry(); err != nil {
		return err
	}

	if err := e.LoadClients(); err != nil {
		return err
	}
	if err := e.Clients.Accept(envImpl); err != nil {
		return errors.ConfigError("failed to visit Clients: %v", err)
	}

	return nil
}

// InitializeSentry sets up fatal error reporting when it is enabled.
func (e *Env) InitializeSentry() error {
	if !e.Config.Sentry.Enabled {
		klog.V(4).Info("Sentry error reporting is disabled")
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         e.Config.Sentry.DSN,
		Debug:       e.Config.Sentry.Debug,
		Environment: e.Name,
	})
	if err != nil {
		return errors.ConfigError("unable to initialize sentry: %v", err)
	}
	klog.Info("Sentry error reporting enabled")
	return nil
}

func (e *Env) LoadClients() error {
	if e.Config.SMTP.Disabled {
		klog.V(4).Info("Using log notifier")
		e.Clients.Notifier = notifier.NewLogNotifier(notifier.NewTemplates(e.Config.SMTP))
		return nil
	}

	smtpNotifier, err := notifier.NewSMTPNotifier(e.Config.SMTP)
	if err != nil {
		return err
	}
	e.Clients.Notifier = smtpNotifier
	return nil
}

func (e *Env) Teardown() {
	if e.Config.Sentry.Enabled {
		sentry.Flush(e.Config.Sentry.Timeout)
	}
	logger.SyncLogger()
}

func setConfigDefaults(flags *pflag.FlagSet, defaults map[string]string) error {
	for name, value := range defaults {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("Error setting flag %s: %v", name, err)
		}
	}
	return nil
}
