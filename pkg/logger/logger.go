package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	PACKAGE   = "pkg"
	REQUEST   = "request_id"
	COMPONENT = "component"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Init configures the global logger. format is "json" or "console".
func Init(level, format string) {
	log.Logger = New(os.Stdout, level, format)
}

// New builds a logger writing to w at the given level.
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// ForPackage returns a child of the global logger tagged with pkg=name.
func ForPackage(name string) zerolog.Logger {
	return log.With().Str(PACKAGE, name).Logger()
}
