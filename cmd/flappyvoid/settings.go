package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-void/internal/config"
	"github.com/vovakirdan/flappy-void/internal/storage"
)

// loadSettings loads the config file and applies the flags the user set.
func loadSettings(cmd *cobra.Command) (config.Config, config.Source, error) {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return cfg, src, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.FPS = flagFPS
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("assets") {
		cfg.Assets.Dir = flagAssets
	}
	if flags.Changed("player") {
		cfg.Player.Name = flagPlayer
	}
	if flagNoScores {
		cfg.Storage.Disabled = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, src, err
	}
	return cfg, src, nil
}

// newLogger creates the command logger. Full-screen commands pass
// io.Discard as fallback so log lines never tear the game screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappyvoid",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the score database unless storage is disabled.
// A database that cannot be opened is logged and the game runs without it.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if cfg.Storage.Disabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// exitOnError prints err and exits with status 1.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
