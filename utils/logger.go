package utils

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the root logger and redirects the standard logger into it
func NewLogger(level string, console bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	log.SetFlags(0)
	log.SetOutput(logger)
	return logger
}
