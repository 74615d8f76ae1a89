package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/openshift-online/heartbeat/pkg/constants"
)

// LivenessConfig contains the timing of the liveness sweeper.
type LivenessConfig struct {
	SweepInterval time.Duration `json:"sweep_interval"`
	Threshold     time.Duration `json:"threshold"`
}

// NewLivenessConfig creates a new LivenessConfig with a 5 second sweep interval and a 10 second threshold.
func NewLivenessConfig() *LivenessConfig {
	return &LivenessConfig{
		SweepInterval: constants.DefaultSweepInterval,
		Threshold:     constants.DefaultLivenessThreshold,
	}
}

// AddFlags configures the LivenessConfig with command line flags.
//   - "sweep-interval" sets the pause between two liveness sweeps (default: 5s).
//   - "liveness-threshold" sets the heartbeat silence after which a server is considered down (default: 10s).
//     A server silent for exactly the threshold is still up.
func (c *LivenessConfig) AddFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&c.SweepInterval, "sweep-interval", c.SweepInterval, "Sets the interval between two liveness sweeps")
	fs.DurationVar(&c.Threshold, "liveness-threshold", c.Threshold, "Sets the heartbeat silence after which a server is considered down")
}

func (c *LivenessConfig) ReadFiles() error {
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("liveness threshold must be positive, got %s", c.Threshold)
	}
	return nil
}
