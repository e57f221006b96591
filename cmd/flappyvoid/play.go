package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-void/internal/assets"
	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

The playfield is drawn with half-block characters in truecolor and scaled to
fit the terminal. A bigger terminal (or a smaller font) gives a sharper image.

Controls:
  Space      - Jump (restart after a crash)
  Esc/Q      - Quit
  Ctrl+C     - Quit

Examples:
  flappyvoid play
  flappyvoid play --seed 42
  flappyvoid play --assets ./assets --player ana
  flappyvoid play --log-file flappyvoid.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, _, err := loadSettings(cmd)
	exitOnError(err)

	logger, closeLog, err := newLogger(io.Discard)
	exitOnError(err)
	defer closeLog()

	a, err := assets.Load(cfg.Assets.Dir, logger)
	exitOnError(err)

	// Get terminal size; the model also receives a WindowSizeMsg on start
	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Display.FPS
	rc.Seed = flagSeed

	deps := tui.Deps{
		Renderer: tui.NewRenderer(a, cfg.BackgroundRGB(), cfg.TextRGB()),
		Player:   cfg.PlayerName(),
		Logger:   logger,
	}

	// Open score storage
	store := openStore(cfg, logger)
	if store != nil {
		deps.Recorder = store
	}

	logger.Debug("starting game", "player", deps.Player, "fps", rc.TickRate, "seed", rc.Seed)

	// Run the game
	runErr := tui.Run(rc, deps)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
