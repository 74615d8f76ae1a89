package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/openshift-online/heartbeat/pkg/constants"
)

// HeartbeatConfig contains the configuration of the UDP heartbeat listener.
type HeartbeatConfig struct {
	BindAddress string `json:"bind_address"`
	BindPort    string `json:"bind_port"`
}

func NewHeartbeatConfig() *HeartbeatConfig {
	return &HeartbeatConfig{
		BindAddress: "0.0.0.0",
		BindPort:    strconv.Itoa(constants.DefaultHeartbeatPort),
	}
}

func (c *HeartbeatConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.BindAddress, "heartbeat-bind-address", c.BindAddress, "Address the heartbeat listener binds to")
	fs.StringVar(&c.BindPort, "heartbeat-bindport", c.BindPort, "UDP port the heartbeat listener binds to")
}

func (c *HeartbeatConfig) ReadFiles() error {
	port, err := strconv.Atoi(c.BindPort)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid heartbeat bind port %q", c.BindPort)
	}
	return nil
}

// Address returns the host:port the heartbeat listener binds to.
func (c *HeartbeatConfig) Address() string {
	return net.JoinHostPort(c.BindAddress, c.BindPort)
}
