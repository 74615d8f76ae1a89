package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openshift-online/heartbeat/pkg/constants"
)

type ApplicationConfig struct {
	ConfigFile  string             `json:"config_file"`
	LogLevel    string             `json:"log_level"`
	Heartbeat   *HeartbeatConfig   `json:"heartbeat"`
	Liveness    *LivenessConfig    `json:"liveness"`
	Roster      *RosterConfig      `json:"roster"`
	SMTP        *SMTPConfig        `json:"smtp"`
	HealthCheck *HealthCheckConfig `json:"health_check"`
	Metrics     *MetricsConfig     `json:"metrics"`
	Sentry      *SentryConfig      `json:"sentry"`
}

func NewApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		ConfigFile:  "config",
		Heartbeat:   NewHeartbeatConfig(),
		Liveness:    NewLivenessConfig(),
		Roster:      NewRosterConfig(),
		SMTP:        NewSMTPConfig(),
		HealthCheck: NewHealthCheckConfig(),
		Metrics:     NewMetricsConfig(),
		Sentry:      NewSentryConfig(),
	}
}

func (c *ApplicationConfig) AddFlags(flagset *pflag.FlagSet) {
	flagset.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file holding the server roster and SMTP settings, the extension is optional")
	flagset.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Level of the notification logger (debug, info, warn, error), defaults to the environment's level")
	c.Heartbeat.AddFlags(flagset)
	c.Liveness.AddFlags(flagset)
	c.SMTP.AddFlags(flagset)
	c.HealthCheck.AddFlags(flagset)
	c.Metrics.AddFlags(flagset)
	c.Sentry.AddFlags(flagset)
}

// ReadFiles loads the config file and every file-backed setting. It returns one message per failure.
func (c *ApplicationConfig) ReadFiles() []string {
	v, err := LoadConfigFile(c.ConfigFile)
	if err != nil {
		return []string{fmt.Sprintf("ConfigFile %s", err.Error())}
	}

	readFiles := []struct {
		f    func() error
		name string
	}{
		{func() error { return c.Roster.ReadConfig(v) }, "Roster"},
		{func() error { return c.SMTP.ReadConfig(v) }, "SMTP"},
		{c.SMTP.ReadFiles, "SMTP"},
		{c.SMTP.Validate, "SMTP"},
		{c.Heartbeat.ReadFiles, "Heartbeat"},
		{c.Liveness.ReadFiles, "Liveness"},
		{c.HealthCheck.ReadFiles, "HealthCheck"},
		{c.Metrics.ReadFiles, "Metrics"},
		{c.Sentry.ReadFiles, "Sentry"},
	}
	messages := []string{}
	for _, rf := range readFiles {
		if err := rf.f(); err != nil {
			msg := fmt.Sprintf("%s %s", rf.name, err.Error())
			messages = append(messages, msg)
		}
	}
	return messages
}

// LoadConfigFile reads the config file at path. Without an extension every format viper knows is
// tried, so "config" finds config.yaml, config.toml or config.json. Values can be overridden by
// HEARTBEAT_ prefixed environment variables, e.g. HEARTBEAT_SMTP_PASSWORD for smtp.password.
func LoadConfigFile(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.ConfigEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if filepath.Ext(path) == "" {
		v.SetConfigName(filepath.Base(path))
		v.AddConfigPath(filepath.Dir(path))
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file %q: %w", path, err)
	}
	return v, nil
}

// Read the contents of file into string value
func readFileValueString(file string, val *string) error {
	fileContents, err := ReadFile(file)
	if err != nil {
		return err
	}

	*val = strings.TrimSuffix(fileContents, "\n")
	return err
}

// ReadFile reads a file relative to the project root when the path is not absolute.
func ReadFile(file string) (string, error) {
	if file == "" {
		return "", nil
	}

	absFilePath := file
	if !filepath.IsAbs(file) {
		absFilePath = filepath.Join(GetProjectRootDir(), file)
	}

	buf, err := os.ReadFile(absFilePath)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// GetProjectRootDir returns the root directory of the module, falling back to the working directory
// when the binary runs outside the source tree.
func GetProjectRootDir() string {
	_, b, _, ok := runtime.Caller(0)
	if ok {
		root := filepath.Join(filepath.Dir(b), "..", "..")
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
