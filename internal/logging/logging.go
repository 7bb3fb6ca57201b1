// Package logging provides the process-wide structured logger.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = newLogger()

func newLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tb",
	})
	if DebugEnabled() {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// DebugEnabled returns true if debug logging is enabled via the TB_DEBUG
// environment variable
func DebugEnabled() bool {
	return os.Getenv("TB_DEBUG") != ""
}

// SetVerbose lowers the log level to debug at runtime
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// Debug logs a message with optional key-value pairs at debug level
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs a message with optional key-value pairs at info level
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a message with optional key-value pairs at warn level
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs a message with optional key-value pairs at error level
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}
