package server

import (
	"context"
	"net"
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/openshift-online/heartbeat/cmd/heartbeat/server/logging"
)

var _ Server = &MetricsServer{}

type MetricsServer struct {
	httpServer *http.Server
}

func NewMetricsServer(ctx context.Context, bindPort string) *MetricsServer {
	router := mux.NewRouter()
	logging.RegisterLoggerMiddleware(ctx, router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return &MetricsServer{
		httpServer: &http.Server{
			Handler: gorillahandlers.RecoveryHandler()(router),
			Addr:    net.JoinHostPort("", bindPort),
		},
	}
}

func (s *MetricsServer) Start(ctx context.Context) {
	logger := klog.FromContext(ctx)
	logger.Info("Serving Metrics without TLS", "address", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	check(ctx, err, "Metrics server terminated with errors")
	logger.Info("Metrics server terminated")
}

func (s *MetricsServer) Stop() error {
	return s.httpServer.Shutdown(context.Background())
}
