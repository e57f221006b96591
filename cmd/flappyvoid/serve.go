package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-void/internal/assets"
	"github.com/vovakirdan/flappy-void/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game. The SSH user name is the player name,
and all users share the server's leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from the config, generating it if needed

Examples:
  flappyvoid serve                           # Listen on :23234
  flappyvoid serve --ssh :2222               # Listen on port 2222
  flappyvoid serve --host-key ./my_host_key  # Use specific host key
  flappyvoid serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh ana@localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (e.g. 10m)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, _, err := loadSettings(cmd)
	exitOnError(err)

	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}

	// The server is not full-screen, so logs go to stderr by default
	logger, closeLog, err := newLogger(os.Stderr)
	exitOnError(err)
	defer closeLog()

	a, err := assets.Load(cfg.Assets.Dir, logger)
	exitOnError(err)

	store := openStore(cfg, logger)
	var recorder tui.ScoreRecorder
	if store != nil {
		recorder = store
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKeyPath,
		IdleTimeout: cfg.Server.IdleTimeout,
		MaxTimeout:  cfg.Server.MaxTimeout,
		TickRate:    cfg.Display.FPS,
	}, tui.NewRenderer(a, cfg.BackgroundRGB(), cfg.TextRGB()), recorder, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting flappy-void SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
