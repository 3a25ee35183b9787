package logger

import (
	"os"
	"sync"

	"github.com/anoideaopen/introspect/internal/config"
	"github.com/sirupsen/logrus"
)

const module = "introspect"

var (
	lg   *logrus.Entry
	once sync.Once
)

// Logger returns the logger of the introspection library. It is built on first use from the
// INTROSPECT_LOGGING_LEVEL and INTROSPECT_LOGGING_FORMAT environment variables.
func Logger() *logrus.Entry {
	once.Do(func() {
		lg = New(config.FromEnv())
	})
	return lg
}

// New builds a logger writing to stderr with the given settings.
// An unknown level falls back to warning.
func New(cfg config.Config) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	l.SetLevel(level)

	if cfg.LogFormat == config.FormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000 MST",
		})
	}

	return l.WithField("module", module)
}

// SetLogger replaces the library logger. Intended for tests and embedding applications.
func SetLogger(entry *logrus.Entry) {
	once.Do(func() {})
	lg = entry
}
