// Package logging builds the logrus loggers used across wikistorm.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config configures a logger.
type Config struct {
	// Level is the minimum level to output: debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format"`
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer `toml:"-" yaml:"-"`
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: FormatText,
		Output: os.Stderr,
	}
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(s) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New creates a logger with the given configuration.
func New(cfg Config) *logrus.Logger {
	l := logrus.New()
	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	}
	l.SetLevel(ParseLevel(cfg.Level))
	if strings.EqualFold(cfg.Format, FormatJSON) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02T15:04:05.000",
			QuoteEmptyFields: true,
		})
	}
	return l
}

// Discard returns a logger that writes nothing.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// WithComponent returns l with the component field set. A nil logger
// yields a discarding one.
func WithComponent(l logrus.FieldLogger, component string) logrus.FieldLogger {
	if l == nil {
		l = Discard()
	}
	return l.WithField("component", component)
}
