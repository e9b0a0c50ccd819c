package contract

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger atomic.Pointer[zap.Logger]
	osExit = os.Exit
)

func init() {
	logger.Store(newConsoleLogger())
}

// newConsoleLogger is the logger used before InitLogger runs, so CLI warnings still reach stderr.
func newConsoleLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	config.DisableStacktrace = true
	config.DisableCaller = true
	l, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// InitLogger builds the process logger as JSON on stderr at the given level.
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(l)
	return nil
}

// Logger returns the process logger.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger swaps the process logger and returns the previous one.
func SetLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return logger.Swap(l)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	l := Logger()
	l.Error(msg, zap.Error(err))
	_ = l.Sync()
	osExit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, zap.Error(err))
}
