package config

import (
	"github.com/spf13/pflag"
)

type MetricsConfig struct {
	BindPort string `json:"bind_port"`
	Enabled  bool   `json:"enabled"`
}

func NewMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		BindPort: "8080",
		Enabled:  true,
	}
}

func (c *MetricsConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.BindPort, "metrics-server-bindport", c.BindPort, "Metrics server bind port")
	fs.BoolVar(&c.Enabled, "enable-metrics", c.Enabled, "Enable the prometheus metrics server")
}

func (c *MetricsConfig) ReadFiles() error {
	return nil
}
