package config

import (
	"time"

	"github.com/spf13/pflag"
)

// SentryConfig controls reporting of fatal errors to Sentry.
type SentryConfig struct {
	Enabled bool          `json:"enabled"`
	DSN     string        `json:"dsn"`
	DSNFile string        `json:"dsn_file"`
	Debug   bool          `json:"debug"`
	Timeout time.Duration `json:"timeout"`
}

func NewSentryConfig() *SentryConfig {
	return &SentryConfig{
		Enabled: false,
		DSNFile: "secrets/sentry.dsn",
		Timeout: 5 * time.Second,
	}
}

func (c *SentryConfig) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.Enabled, "enable-sentry", c.Enabled, "Enable sentry error reporting")
	fs.StringVar(&c.DSN, "sentry-dsn", c.DSN, "Sentry DSN, overrides --sentry-dsn-file")
	fs.StringVar(&c.DSNFile, "sentry-dsn-file", c.DSNFile, "File containing the Sentry DSN")
	fs.BoolVar(&c.Debug, "sentry-debug", c.Debug, "Turn on sentry debug logging")
	fs.DurationVar(&c.Timeout, "sentry-timeout", c.Timeout, "Timeout for flushing events to sentry")
}

func (c *SentryConfig) ReadFiles() error {
	if !c.Enabled || c.DSN != "" {
		return nil
	}
	return readFileValueString(c.DSNFile, &c.DSN)
}
