// Package logger sets up the process-wide zerolog logger and hands out
// component loggers derived from it.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is the log section of the gateway configuration
type Config struct {
	// Level is a zerolog level name; empty means info
	Level string `mapstructure:"level"`
	// Debug forces the debug level whatever Level says
	Debug bool `mapstructure:"debug"`
	// Output is stdout or stderr
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
	// Pretty switches to the human readable console writer
	Pretty bool `mapstructure:"pretty"`
}

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init replaces the process logger according to cfg
func Init(cfg Config) error {
	var out io.Writer = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	l, err := build(cfg, out)
	if err != nil {
		return err
	}
	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	mu.Lock()
	root = l
	log.Logger = l
	mu.Unlock()
	return nil
}

func build(cfg Config, out io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	switch {
	case cfg.Debug:
		level = zerolog.DebugLevel
	case cfg.Level != "":
		var err error
		if level, err = zerolog.ParseLevel(cfg.Level); err != nil {
			return zerolog.Logger{}, err
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// WithComponent returns a child logger tagged with the component name
func WithComponent(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", component).Logger()
}
