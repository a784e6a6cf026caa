package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vango-dev/routegen/internal/config"
	"github.com/vango-dev/routegen/internal/logger"
)

// loadProject resolves the project directory, loads and validates its
// configuration, and builds the logger. Explicit flags override config.
func loadProject(cmd *cobra.Command, opts *globalOptions) (*config.Config, *zap.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.dir != "" {
		cfg, err = config.Load(opts.dir)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = opts.logJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.JSON,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
