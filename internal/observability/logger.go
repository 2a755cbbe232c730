package observability

import (
	"io"
	"time"

	"github.com/danmuck/coaphdr/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger builds the console logger for app, installs it as the
// package-level zerolog logger and returns it.
func InitLogger(out io.Writer, app string, cfg logging.Config) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !cfg.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	level := cfg.Level
	if cfg.Bypass {
		level = zerolog.Disabled
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
