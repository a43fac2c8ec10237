package logging

import (
	"io"
	"os"
	"strings"

	"codeexplainer/config"

	"github.com/sirupsen/logrus"
)

// Option adjusts the logging settings before they are applied.
type Option func(*config.LoggingConfig)

// StdoutReserved routes stdout logging to stderr, for processes whose stdout
// carries command output or a protocol stream.
func StdoutReserved() Option {
	return func(cfg *config.LoggingConfig) {
		if isStdout(cfg.Output) {
			cfg.Output = "stderr"
		}
	}
}

// Verbose forces debug level when on is true.
func Verbose(on bool) Option {
	return func(cfg *config.LoggingConfig) {
		if on {
			cfg.Level = "debug"
		}
	}
}

// InitLogger configures the standard logger from config.AppConfig.Logging.
func InitLogger(opts ...Option) {
	cfg := config.AppConfig.Logging
	for _, opt := range opts {
		opt(&cfg)
	}
	Configure(cfg)
	logrus.WithFields(logrus.Fields{
		"level":  logrus.GetLevel().String(),
		"output": cfg.Output,
	}).Debug("Logger initialized")
}

// Configure applies level, format and output to the standard logrus logger.
func Configure(cfg config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', using 'info' instead. Error: %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.SetOutput(openOutput(cfg.Output))
}

func isStdout(target string) bool {
	return target == "" || strings.EqualFold(target, "stdout")
}

func openOutput(target string) io.Writer {
	if isStdout(target) {
		return os.Stdout
	}
	if strings.EqualFold(target, "stderr") {
		return os.Stderr
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.Warnf("Failed to open log file '%s', using stderr instead. Error: %v", target, err)
		return os.Stderr
	}
	return file
}
