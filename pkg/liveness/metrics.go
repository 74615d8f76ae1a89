package liveness

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Subsystem used to define the metrics:
const livenessMetricsSubsystem = "liveness"

// Names of the metrics:
const (
	serversDownMetric        = "servers_down"
	transitionsTotalMetric   = "transitions_total"
	notificationsTotalMetric = "notifications_total"
	sweepDurationMetric      = "sweep_duration_seconds"
)

// Names of the labels added to metrics:
const (
	livenessMetricsStateLabel  = "state"
	livenessMetricsStatusLabel = "status"
)

type notificationStatus string

// Possible values for the status label of notifications:
const (
	notificationStatusSuccess notificationStatus = "success"
	notificationStatusError   notificationStatus = "error"
)

var (
	// serversDownGauge is the number of servers in the down-set after the last sweep:
	serversDownGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: livenessMetricsSubsystem,
			Name:      serversDownMetric,
			Help:      "Number of monitored servers currently considered down.",
		},
	)

	// transitionsTotal counts state changes, labeled by the new state:
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: livenessMetricsSubsystem,
			Name:      transitionsTotalMetric,
			Help:      "Total number of server state transitions detected by the sweeper.",
		},
		[]string{livenessMetricsStateLabel},
	)

	// notificationsTotal counts notification attempts, labeled by state and status:
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: livenessMetricsSubsystem,
			Name:      notificationsTotalMetric,
			Help:      "Total number of down/up notifications attempted by the sweeper.",
		},
		[]string{livenessMetricsStateLabel, livenessMetricsStatusLabel},
	)

	sweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Subsystem: livenessMetricsSubsystem,
			Name:      sweepDurationMetric,
			Help:      "Time spent in one sweep pass, notifications included.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	// Register the metrics:
	prometheus.MustRegister(serversDownGauge)
	prometheus.MustRegister(transitionsTotal)
	prometheus.MustRegister(notificationsTotal)
	prometheus.MustRegister(sweepDuration)
}
