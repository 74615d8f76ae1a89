package server

import (
	"context"
	e "errors"
	"net/http"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"k8s.io/klog/v2"

	"github.com/openshift-online/heartbeat/cmd/heartbeat/environments"
	"github.com/openshift-online/heartbeat/pkg/errors"
)

type Server interface {
	Start(ctx context.Context)
	Stop() error
}

func env() *environments.Env {
	return environments.Environment()
}

func removeTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = strings.TrimSuffix(r.URL.Path, "/")
		next.ServeHTTP(w, r)
	})
}

// Exit on error. Errors the monitor recovers from are only logged.
func check(ctx context.Context, err error, msg string) {
	if err == nil || e.Is(err, http.ErrServerClosed) {
		return
	}
	logger := klog.FromContext(ctx)
	var herr *errors.HeartbeatError
	if e.As(err, &herr) {
		logger = logger.WithValues("code", errors.CodeStr(herr.Code), "title", herr.Title())
		if !herr.Fatal() {
			logger.Error(err, msg)
			return
		}
	}
	logger.Error(err, msg)
	sentry.CaptureException(err)
	sentry.Flush(env().Config.Sentry.Timeout)
	os.Exit(1)
}
