package logging

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"k8s.io/klog/v2"
)

// RegisterLoggerMiddleware logs every request and its response. Health checks are polled often, so
// they are only logged at a higher verbosity.
func RegisterLoggerMiddleware(ctx context.Context, router *mux.Router) {
	baseLogger := klog.FromContext(ctx)
	router.Use(
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path := strings.TrimSuffix(r.URL.Path, "/")
				logLevel := 2
				if path == "/healthcheck" || path == "/metrics" {
					logLevel = 4
				}

				logger := baseLogger.WithValues("method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
				loggingWriter := NewLoggingWriter(w)
				logger.V(logLevel).Info("Request received")

				before := time.Now()
				next.ServeHTTP(loggingWriter, r.WithContext(klog.NewContext(r.Context(), logger)))

				logger.V(logLevel).Info("Response sent",
					"status", loggingWriter.Status(), "bytes", loggingWriter.Written(), "elapsed", time.Since(before).String())
			})
		})
}
