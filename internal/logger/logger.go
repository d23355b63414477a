package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// Config selects level and encoding of the process logger.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once

	nopLogger = &Logger{SugaredLogger: zap.NewNop().Sugar()}
)

// Init builds the singleton from cfg. Later calls return the first instance.
func Init(cfg Config) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(cfg)
	})
	return globalLogger
}

// Get returns a singleton logger configured with the provided level.
func Get(level string) *Logger {
	return Init(Config{Level: level, Format: ConsoleFormat})
}

// GetLogger returns the initialized singleton, or a no-op logger before Init.
func GetLogger() *Logger {
	if globalLogger == nil {
		return nopLogger
	}
	return globalLogger
}
