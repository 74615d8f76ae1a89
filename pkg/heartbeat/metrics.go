package heartbeat

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Subsystem used to define the metrics:
const listenerMetricsSubsystem = "heartbeat_listener"

const datagramsTotalMetric = "datagrams_total"

const listenerMetricsResultLabel = "result"

type datagramResult string

// Possible values for the result label of received datagrams:
const (
	datagramResultAccepted  datagramResult = "accepted"
	datagramResultMalformed datagramResult = "malformed"
	datagramResultUnknown   datagramResult = "unknown"
)

// datagramsTotal counts received heartbeat datagrams, labeled by how they were handled:
var datagramsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: listenerMetricsSubsystem,
		Name:      datagramsTotalMetric,
		Help:      "Total number of heartbeat datagrams received.",
	},
	[]string{listenerMetricsResultLabel},
)

func init() {
	// Register the metrics:
	prometheus.MustRegister(datagramsTotal)
}
