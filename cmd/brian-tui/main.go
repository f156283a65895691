// Command brian-tui is the terminal frontend over the brian REST API.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"brian/internal/api"
	"brian/internal/config"
	"brian/internal/logging"
	"brian/internal/store"
	"brian/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "brian-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	logPath := flag.String("log", "", "write logs to this file (disabled when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logging goes to a file or nowhere.
	logger := zap.NewNop()
	if *logPath != "" {
		fileLogger, _, err := logging.NewFile(cfg.Logging, *logPath)
		if err != nil {
			return err
		}
		defer fileLogger.Sync()
		logger = fileLogger
	}

	logger.Info("starting brian-tui", zap.String("api_url", cfg.APIURL))

	client := api.NewClient(cfg.APIURL, logger)
	st := store.New(client, logger)

	return tui.Run(cfg, st, logger)
}
