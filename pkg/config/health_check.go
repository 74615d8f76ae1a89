package config

import (
	"github.com/spf13/pflag"
)

type HealthCheckConfig struct {
	BindPort string `json:"bind_port"`
	Enabled  bool   `json:"enabled"`
}

func NewHealthCheckConfig() *HealthCheckConfig {
	return &HealthCheckConfig{
		BindPort: "8083",
		Enabled:  true,
	}
}

func (c *HealthCheckConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.BindPort, "health-check-server-bindport", c.BindPort, "Health check server bind port")
	fs.BoolVar(&c.Enabled, "enable-health-check", c.Enabled, "Enable the health check and server status endpoints")
}

func (c *HealthCheckConfig) ReadFiles() error {
	return nil
}
