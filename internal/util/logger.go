package util

import (
	"fmt"
	"os"

	"github.com/mxcd/go-config/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger from config.
// In dev mode output goes through a human-readable console writer.
func InitLogger() error {
	level, err := zerolog.ParseLevel(config.Get().String("LOG_LEVEL"))
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	if config.Get().Bool("DEV") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return nil
}
