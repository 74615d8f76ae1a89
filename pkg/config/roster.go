package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ServerEntry is one monitored server as written in the config file.
type ServerEntry struct {
	Name string `json:"name" mapstructure:"name"`
	UUID string `json:"uuid" mapstructure:"uuid"`
}

// RosterConfig holds the fleet of monitored servers. It is only read from the config file:
//
//	servers:
//	  - name: alpha
//	    uuid: 11111111-1111-1111-1111-111111111111
type RosterConfig struct {
	Servers []ServerEntry `json:"servers"`
}

func NewRosterConfig() *RosterConfig {
	return &RosterConfig{}
}

// ReadConfig reads the "servers" list. Entries are validated when the registry is built.
func (c *RosterConfig) ReadConfig(v *viper.Viper) error {
	if !v.IsSet("servers") {
		return fmt.Errorf("no servers configured")
	}
	var servers []ServerEntry
	if err := v.UnmarshalKey("servers", &servers); err != nil {
		return fmt.Errorf("unable to read servers: %w", err)
	}
	c.Servers = servers
	return nil
}
