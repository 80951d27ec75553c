package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/album-downloader/internal/config"
	"github.com/handiism/album-downloader/internal/tui"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	logPath := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings and starts the TUI. It never exits the process.
func run(configPath, logPath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	if configPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			configPath = config.DefaultPath(dir)
		}
	}
	settings := config.DefaultSettings(home)
	if configPath != "" {
		if settings, err = config.Load(configPath, home); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// The screen belongs to Bubble Tea; logs only go to a file on request.
	logger := zerolog.Nop()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	return tui.Run(settings, logger)
}
