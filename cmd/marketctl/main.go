package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stoneridge/go-marketplace-client/internal/config"
)

func main() {
	// A missing .env is fine; env vars and defaults still apply.
	_ = godotenv.Load()

	c := config.New()
	log := newLogger(c)

	if err := run(c, log); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(c config.Config, log zerolog.Logger) error {
	cmd := newRootCommand(c, log)
	return cmd.Execute()
}

func newLogger(c config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if c.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
