package constants

import "time"

const (
	// DefaultHeartbeatPort is the UDP port monitored servers send their heartbeats to.
	DefaultHeartbeatPort = 28915

	// HeartbeatIDLength is the length of the canonical hyphenated identifier carried by a heartbeat.
	HeartbeatIDLength = 36

	// MaxDatagramSize is the receive buffer of the heartbeat listener. Anything longer than
	// HeartbeatIDLength after trimming is rejected, so the buffer only needs to be large enough
	// to see that a payload is oversized rather than truncate it into a valid identifier.
	MaxDatagramSize = 512

	// DefaultLivenessThreshold is the silence after which a server is considered down.
	DefaultLivenessThreshold = 10 * time.Second

	// DefaultSweepInterval is the pause between two liveness sweeps.
	DefaultSweepInterval = 5 * time.Second

	// ConfigEnvPrefix prefixes environment overrides of the config file, e.g. HEARTBEAT_SMTP_PASSWORD.
	ConfigEnvPrefix = "HEARTBEAT"
)
