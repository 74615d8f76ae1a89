package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/google/uuid"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/openshift-online/heartbeat/cmd/heartbeat/server/logging"
	"github.com/openshift-online/heartbeat/pkg/liveness"
)

var _ Server = &HealthCheckServer{}

// ReadinessFunc reports whether the heartbeat socket is being served.
type ReadinessFunc func() bool

// HealthCheckServer serves the readiness check of the monitor and the current state of every
// monitored server.
type HealthCheckServer struct {
	httpServer *http.Server
	ready      ReadinessFunc
	store      *liveness.Store
	clock      clock.PassiveClock
}

func NewHealthCheckServer(ctx context.Context, bindPort string, ready ReadinessFunc, store *liveness.Store, clk clock.PassiveClock) *HealthCheckServer {
	router := mux.NewRouter()
	router.Use(gorillahandlers.CompressHandler)
	srv := &http.Server{
		Handler: gorillahandlers.RecoveryHandler(gorillahandlers.PrintRecoveryStack(true))(removeTrailingSlash(router)),
		Addr:    net.JoinHostPort("", bindPort),
	}

	logging.RegisterLoggerMiddleware(ctx, router)
	server := &HealthCheckServer{
		httpServer: srv,
		ready:      ready,
		store:      store,
		clock:      clk,
	}

	router.HandleFunc("/healthcheck", server.healthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/heartbeat/v1/servers", server.listServersHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/heartbeat/v1/servers/{id}", server.getServerHandler).Methods(http.MethodGet)

	return server
}

func (s *HealthCheckServer) Start(ctx context.Context) {
	logger := klog.FromContext(ctx)
	logger.Info("Serving HealthCheck without TLS", "address", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	check(ctx, err, "HealthCheck server terminated with errors")
	logger.Info("HealthCheck server terminated")
}

func (s *HealthCheckServer) Stop() error {
	return s.httpServer.Shutdown(context.Background())
}

// healthCheckHandler returns a 200 OK once the heartbeat socket is served, 503 Service Unavailable otherwise.
func (s *HealthCheckServer) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if s.ready() {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	writeJSON(r.Context(), w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
}

func (s *HealthCheckServer) listServersHandler(w http.ResponseWriter, r *http.Request) {
	statuses := s.store.Snapshot(s.clock.Now())
	writeJSON(r.Context(), w, http.StatusOK, map[string]interface{}{
		"kind":  "ServerStatusList",
		"total": len(statuses),
		"items": statuses,
	})
}

func (s *HealthCheckServer) getServerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(r.Context(), w, http.StatusBadRequest, map[string]string{"reason": "invalid server id"})
		return
	}
	for _, status := range s.store.Snapshot(s.clock.Now()) {
		if status.ID == id {
			writeJSON(r.Context(), w, http.StatusOK, status)
			return
		}
	}
	writeJSON(r.Context(), w, http.StatusNotFound, map[string]string{"reason": "server not found"})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		klog.FromContext(ctx).Error(err, "Error writing response")
	}
}
