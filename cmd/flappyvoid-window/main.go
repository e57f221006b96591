// flappyvoid-window plays flappy-void in a desktop window.
//
// It reads the same configuration and scores database as the terminal
// build, so runs from both end up on one leaderboard.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-void/internal/assets"
	"github.com/vovakirdan/flappy-void/internal/config"
	"github.com/vovakirdan/flappy-void/internal/platform/window"
	"github.com/vovakirdan/flappy-void/internal/storage"
)

var (
	flagConfig   string
	flagAssets   string
	flagScale    int
	flagSeed     int64
	flagPlayer   string
	flagNoScores bool
	flagDebug    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err the way cmd/flappyvoid does.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

var rootCmd = &cobra.Command{
	Use:   "flappyvoid-window",
	Short: "Play flappy-void in a desktop window",
	Long: `Play flappy-void in a desktop window.

Controls:
  Space  - Jump (restart after a crash)
  Esc    - Quit

Examples:
  flappyvoid-window
  flappyvoid-window --scale 2 --assets ./assets`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Path to config YAML")
	f.StringVar(&flagAssets, "assets", "", "Directory containing map.jpg, zm.jpg and sld.jpg")
	f.IntVar(&flagScale, "scale", 0, "Window size multiplier")
	f.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	f.StringVar(&flagPlayer, "player", "", "Player name for the leaderboard")
	f.BoolVar(&flagNoScores, "no-scores", false, "Do not record scores")
	f.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if flagScale > 0 {
		cfg.Display.ScaleWindow = flagScale
	}
	if flagPlayer != "" {
		cfg.Player.Name = flagPlayer
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappyvoid",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	a, err := assets.Load(cfg.Assets.Dir, logger)
	if err != nil {
		return err
	}

	opts := window.Options{
		Assets:     a,
		Background: cfg.BackgroundRGB(),
		Text:       cfg.TextRGB(),
		Seed:       flagSeed,
		TPS:        cfg.Display.FPS,
		Scale:      cfg.Display.ScaleWindow,
		Player:     cfg.PlayerName(),
		Logger:     logger,
	}

	if !flagNoScores && !cfg.Storage.Disabled {
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "error", err)
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	return window.Run(opts)
}
