package heartbeat

import (
	"context"
	"net"
	"sync/atomic"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/openshift-online/heartbeat/pkg/constants"
	"github.com/openshift-online/heartbeat/pkg/errors"
	"github.com/openshift-online/heartbeat/pkg/liveness"
)

// Listener receives heartbeat datagrams and records them in the liveness store. Nothing is sent back.
type Listener struct {
	address string
	store   *liveness.Store
	clock   clock.PassiveClock
	bound   atomic.Bool
}

func NewListener(address string, store *liveness.Store, clk clock.PassiveClock) *Listener {
	return &Listener{
		address: address,
		store:   store,
		clock:   clk,
	}
}

// Listen binds the heartbeat socket.
func (l *Listener) Listen() (net.PacketConn, error) {
	conn, err := net.ListenPacket("udp", l.address)
	if err != nil {
		return nil, errors.SocketError(err, "unable to bind heartbeat socket on %s", l.address)
	}
	l.bound.Store(true)
	return conn, nil
}

// Ready reports whether the socket is bound and being served.
func (l *Listener) Ready() bool {
	return l.bound.Load()
}

// Serve reads datagrams from conn until ctx is cancelled, in which case conn is closed and nil is
// returned. Bad datagrams never stop the loop; any other receive failure is returned as a
// SocketError.
func (l *Listener) Serve(ctx context.Context, conn net.PacketConn) error {
	logger := klog.FromContext(ctx).WithValues("address", conn.LocalAddr().String())
	ctx = klog.NewContext(ctx, logger)
	defer l.bound.Store(false)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stopped:
		}
	}()

	logger.Info("Serving heartbeats")
	buf := make([]byte, constants.MaxDatagramSize)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("Heartbeat listener stopped")
				return nil
			}
			return errors.SocketError(err, "unable to receive heartbeat")
		}
		_ = l.Handle(ctx, buf[:n], from)
	}
}

// Handle processes one datagram. The returned error is already logged; it is a ParseError for a
// malformed payload and an UnknownSender for an identifier that is not registered.
func (l *Listener) Handle(ctx context.Context, payload []byte, from net.Addr) error {
	logger := klog.FromContext(ctx)

	id, err := ParseHeartbeat(payload)
	if err != nil {
		datagramsTotal.WithLabelValues(string(datagramResultMalformed)).Inc()
		logger.Error(err, "Received invalid heartbeat", "from", addrString(from))
		return err
	}

	if !l.store.Touch(id, l.clock.Now()) {
		datagramsTotal.WithLabelValues(string(datagramResultUnknown)).Inc()
		err := errors.UnknownSender("heartbeat from unknown server %s", id)
		logger.Info("Received heartbeat from unknown server", "id", id, "from", addrString(from))
		return err
	}

	datagramsTotal.WithLabelValues(string(datagramResultAccepted)).Inc()
	logger.V(4).Info("Received heartbeat", "id", id, "from", addrString(from))
	return nil
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}

