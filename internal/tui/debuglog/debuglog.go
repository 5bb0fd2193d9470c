// ABOUTME: File-backed zap logger for the TUI
// ABOUTME: Avoids interfering with terminal display while capturing errors

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	logger *zap.Logger
	file   *os.File
)

// Init initializes the debug logger with the config directory.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		logger = nil
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		logger = nil
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		logger = nil
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(f),
		zapcore.DebugLevel,
	)

	file = f
	logger = zap.New(core)
	return nil
}

// Close flushes and closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	if file != nil {
		file.Close()
		file = nil
	}
}

// Logger returns the active logger, or a nop logger when disabled.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Log writes a message to the debug log
func Log(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	Logger().Error(context, zap.Error(err))
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}
