package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/td0m/taskmaster/internal/config"
)

// New builds the application logger writing to w. Local runs get a
// human readable console writer, everything else gets JSON lines.
func New(cfg *config.Config, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.TimestampFieldName = "timestamp"

	if cfg.Env == config.EnvLocal {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = w
		w = consoleWriter
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}

// OpenFile opens (or creates) a log file for appending
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
}
