package logger

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	envtypes "github.com/openshift-online/heartbeat/cmd/heartbeat/environments/types"
)

// The notification log is a single sugared logger whose level can change at runtime
// through --log-level.
var (
	zapLogLevel = zap.NewAtomicLevel()
	zapLogger   *zap.SugaredLogger
	zapOnce     sync.Once
)

// GetLogger returns the notification logger. Production writes JSON lines so that mail
// failures can be collected; development and testing write console lines at debug level.
func GetLogger() *zap.SugaredLogger {
	zapOnce.Do(func() {
		zapLogger = newLogger(envtypes.GetEnvironmentStrFromEnv())
	})
	return zapLogger
}

func newLogger(env string) *zap.SugaredLogger {
	var zapConfig zap.Config
	switch env {
	case envtypes.ProductionEnv:
		zapConfig = zap.NewProductionConfig()
		zapLogLevel.SetLevel(zapcore.InfoLevel)
	default:
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Encoding = "console"
		zapLogLevel.SetLevel(zapcore.DebugLevel)
	}
	zapConfig.DisableStacktrace = true
	zapConfig.Level = zapLogLevel

	zlog, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	return zlog.Sugar().Named("notifier")
}

// ForServer returns the notification logger annotated with a monitored server.
func ForServer(id uuid.UUID, name string) *zap.SugaredLogger {
	return GetLogger().With("id", id.String(), "name", name)
}

// SetLogLevel sets the log level for the logger.
func SetLogLevel(level string) {
	log := GetLogger()
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		log.Errorf("failed to parse log level: %v", err)
		return
	}
	zapLogLevel.SetLevel(zapLevel)
}

// GetLoggerLevel returns the current log level of the logger.
func GetLoggerLevel() string {
	return zapLogLevel.String()
}

// SyncLogger flushes any buffered log entries.
func SyncLogger() {
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
}
