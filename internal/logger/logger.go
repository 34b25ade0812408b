package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Backend receives log calls from the package-level functions
type Backend interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

var backends []Backend

// Init replaces the active backends. With no backends, logging is a no-op.
func Init(b ...Backend) {
	backends = b
}

// Options configures the console backend
type Options struct {
	Verbose bool
	Output  io.Writer // defaults to stderr
}

// NewConsole returns a charmbracelet logger writing to stderr
func NewConsole(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: opts.Verbose,
		Level:           level,
		Prefix:          "censusflat",
	})
}

// Debug logs at DEBUG level
func Debug(msg string, keyvals ...interface{}) {
	for _, b := range backends {
		b.Debug(msg, keyvals...)
	}
}

// Info logs at INFO level
func Info(msg string, keyvals ...interface{}) {
	for _, b := range backends {
		b.Info(msg, keyvals...)
	}
}

// Warn logs at WARN level
func Warn(msg string, keyvals ...interface{}) {
	for _, b := range backends {
		b.Warn(msg, keyvals...)
	}
}

// Error logs at ERROR level
func Error(msg string, keyvals ...interface{}) {
	for _, b := range backends {
		b.Error(msg, keyvals...)
	}
}
