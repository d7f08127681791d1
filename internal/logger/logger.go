package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New monta o logger do processo. Em dev o nível cai para debug e a
// saída fica legível no terminal; fora disso, JSON puro no stdout.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "dev" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(out).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
