package server

import (
	"context"
	"sync"

	"k8s.io/klog/v2"

	"github.com/openshift-online/heartbeat/pkg/heartbeat"
)

var _ Server = &HeartbeatServer{}

// HeartbeatServer runs the UDP heartbeat listener. A socket that cannot be bound or read stops the process.
type HeartbeatServer struct {
	listener *heartbeat.Listener
	mux      sync.Mutex
	cancel   context.CancelFunc
	stopped  bool
}

func NewHeartbeatServer(listener *heartbeat.Listener) *HeartbeatServer {
	return &HeartbeatServer{listener: listener}
}

func (s *HeartbeatServer) Start(ctx context.Context) {
	ctx = s.serveContext(ctx)
	logger := klog.FromContext(ctx)
	logger.Info("Starting Heartbeat server")

	conn, err := s.listener.Listen()
	check(ctx, err, "Unable to start heartbeat listener")

	err = s.listener.Serve(ctx, conn)
	check(ctx, err, "Heartbeat listener terminated with errors")
	logger.Info("Heartbeat server terminated")
}

// serveContext derives the context Stop cancels. After Stop it is already cancelled.
func (s *HeartbeatServer) serveContext(ctx context.Context) context.Context {
	s.mux.Lock()
	defer s.mux.Unlock()
	ctx, s.cancel = context.WithCancel(ctx)
	if s.stopped {
		s.cancel()
	}
	return ctx
}

func (s *HeartbeatServer) Stop() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.stopped = true
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}
