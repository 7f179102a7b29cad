package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/config"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
	mu           sync.RWMutex
)

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	once.Do(func() {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		mu.Lock()
		globalLogger = zerolog.New(consoleWriter).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New constructs the service logger from configuration. Invalid level or format
// values fall back to info/console and are reported on the returned logger.
func New(cfg *config.Config) zerolog.Logger {
	log, err := Build(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log, _ = Build(os.Stdout, "info", "console")
		log.Warn().Err(err).
			Str("level", cfg.LogLevel).
			Str("format", cfg.LogFormat).
			Msg("invalid log configuration, using defaults")
	}

	log = log.With().Str("service", cfg.ServiceName).Logger()

	GetLogger()
	mu.Lock()
	globalLogger = log
	mu.Unlock()
	return log
}

// Build creates a zerolog logger writing to out with the given level and format.
func Build(out io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		writer = zerolog.New(out).With().Timestamp().Logger()
	case "console", "":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	return writer.Level(lvl), nil
}
