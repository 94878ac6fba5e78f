// Package logging configures the process-wide zerolog logger: a console
// writer for interactive use and, when a log directory is configured, an
// additional per-day log file next to it.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level string `koanf:"level"`
	// Dir enables the file sink. Log files are named after the current
	// date, one file per day.
	Dir string `koanf:"dir"`
}

// New builds a logger according to conf. An empty level means info, an
// unknown level is an error. The returned logger is safe to use as the
// package-level logger via zerolog/log.
func New(conf Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if conf.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(conf.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("unknown log level %q: %w", conf.Level, err)
		}
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}

	if conf.Dir != "" {
		if err := os.MkdirAll(conf.Dir, 0o755); err != nil {
			return zerolog.Nop(), fmt.Errorf("create log directory: %w", err)
		}
		name := filepath.Join(conf.Dir, time.Now().Format("2006-01-02")+".log")
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
