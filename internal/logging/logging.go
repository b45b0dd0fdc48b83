// Package logging provides autocore's logging infrastructure built on
// charmbracelet/log.
//
// All log output goes to stderr. Stdout is reserved for the printed build
// invocation and the build tool's own output, so that
//
//	autocore --build foo --dry-run > plan.txt
//
// captures only the command and never a log line.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRunE):
//	logging.Setup(logging.Options{Verbose: verbose, Quiet: quiet, Format: logging.FormatFromEnv(os.Getenv)})
//
//	// In each component constructor:
//	logger := logging.New("store")
//	logger.Debug("configuration written", "path", "conf/foo.conf")
//
// Setup must run before New: charmbracelet/log copies the default logger's
// state into a child at creation time.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels, so consumers do not need to
// import charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Format selects the log line encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// FormatEnvVar names the environment variable read by FormatFromEnv.
const FormatEnvVar = "AUTOCORE_LOG_FORMAT"

// FormatFromEnv returns FormatJSON when AUTOCORE_LOG_FORMAT is "json"
// (case-insensitive) and FormatText otherwise.
func FormatFromEnv(getenv func(string) string) Format {
	if getenv == nil {
		return FormatText
	}
	if strings.EqualFold(strings.TrimSpace(getenv(FormatEnvVar)), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// Options controls Setup.
type Options struct {
	// Verbose lowers the level to Debug.
	Verbose bool
	// Quiet raises the level to Error. Quiet wins over Verbose.
	Quiet bool
	// Format defaults to FormatText when empty.
	Format Format
}

// Level returns the level Setup would apply for o.
func (o Options) Level() log.Level {
	switch {
	case o.Quiet:
		return log.ErrorLevel
	case o.Verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Setup configures the global logging defaults and directs output to stderr.
// Call once during CLI initialization.
func Setup(o Options) {
	log.SetLevel(o.Level())
	log.SetOutput(os.Stderr)

	if o.Format == FormatJSON {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. An empty component
// produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger. Tests use it
// to capture output; restore it with t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
