package logger

import (
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leondli/centriq/internal/infrastructure/config"
)

// Service is attached to every log line
const Service = "centriq"

// Init configures the global zerolog logger from the log settings.
// The returned closer releases the log file when output is "file".
func Init(cfg *config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output, closer, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	log.Logger = New(output, cfg.Format)
	return closer, nil
}

// New builds a logger writing to w, as JSON or in the human readable console format
func New(w io.Writer, format string) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().
		Timestamp().
		Str("service", Service).
		Caller().
		Logger()
}

// NewLogger creates a new logger with the given component name
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openOutput(cfg *config.LogConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, errors.New("log.file_path is required when log.output is file")
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to open log file %s", cfg.FilePath)
		}
		return file, file, nil
	case "stderr":
		return os.Stderr, io.NopCloser(nil), nil
	default:
		return os.Stdout, io.NopCloser(nil), nil
	}
}
