package liveness

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/openshift-online/heartbeat/pkg/api"
	"github.com/openshift-online/heartbeat/pkg/errors"
	"github.com/openshift-online/heartbeat/pkg/notifier"
)

// Sweeper periodically looks for servers that went silent or came back and notifies about each
// transition.
type Sweeper struct {
	store     *Store
	notifier  notifier.Notifier
	clock     clock.PassiveClock
	threshold time.Duration
	interval  time.Duration
}

func NewSweeper(store *Store, n notifier.Notifier, clk clock.PassiveClock, threshold, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:     store,
		notifier:  n,
		clock:     clk,
		threshold: threshold,
		interval:  interval,
	}
}

// Start runs a sweep immediately and then once per interval after the previous one finished,
// until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	logger := klog.FromContext(ctx).WithValues("threshold", s.threshold, "interval", s.interval)
	ctx = klog.NewContext(ctx, logger)
	logger.Info("Starting liveness sweeper")

	wait.UntilWithContext(ctx, func(ctx context.Context) { s.Sweep(ctx) }, s.interval)

	logger.Info("Liveness sweeper stopped")
}

// Sweep runs one pass. The transitions are computed under the store lock; notifications are sent
// afterwards, one at a time. A failed notification is logged and the transition stands.
func (s *Sweeper) Sweep(ctx context.Context) []Transition {
	start := time.Now()
	defer func() {
		sweepDuration.Observe(time.Since(start).Seconds())
	}()

	logger := klog.FromContext(ctx)
	transitions := s.store.Sweep(s.clock.Now(), s.threshold)
	serversDownGauge.Set(float64(s.store.DownCount()))

	for _, t := range transitions {
		transitionsTotal.WithLabelValues(string(t.State)).Inc()
		logger.Info("Server changed state", "id", t.Server.ID, "name", t.Server.Name,
			"state", t.State, "silence", t.Silence.Round(time.Millisecond))

		var err error
		switch t.State {
		case api.ServerStateDown:
			err = s.notifier.Down(ctx, t.Server.ID, t.Server.Name)
		case api.ServerStateUp:
			err = s.notifier.Up(ctx, t.Server.ID, t.Server.Name)
		}
		if err != nil {
			if !errors.IsNotificationError(err) {
				err = errors.NotificationError(err, "unable to notify %s of server %s", t.State, t.Server.Name)
			}
			notificationsTotal.WithLabelValues(string(t.State), string(notificationStatusError)).Inc()
			logger.Error(err, "Unable to send notification", "id", t.Server.ID, "name", t.Server.Name, "state", t.State)
			continue
		}
		notificationsTotal.WithLabelValues(string(t.State), string(notificationStatusSuccess)).Inc()
	}

	logger.V(4).Info("Sweep finished", "transitions", len(transitions))
	return transitions
}
