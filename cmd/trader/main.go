package main

import (
	"fmt"
	"os"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/cli"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/config"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/logging"
)

func main() {
	configDir := os.Getenv("OPTIONS_TRADER_CONFIG")
	if configDir == "" {
		configDir = config.DefaultConfigDir()
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	logCfg.File = cfg.Logging.File
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
