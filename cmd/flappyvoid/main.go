// flappyvoid is a one-button reflex game for the terminal: keep the ball in
// the air and thread it through the gaps in the scrolling walls.
//
// Usage:
//
//	flappyvoid               - Play in the terminal (same as "play")
//	flappyvoid play          - Play in the terminal
//	flappyvoid scores        - Show the leaderboard
//	flappyvoid serve         - Start SSH server for remote play
//	flappyvoid config        - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.flappyvoid, ./configs)
//	--fps <rate>       - Set frame rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gap placement
//	--db <path>        - Set database path (default: ~/.flappyvoid/scores.db)
//	--assets <dir>     - Directory with map.jpg, zm.jpg and sld.jpg
//	--player <name>    - Leaderboard name (default: OS user)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagAssets   string
	flagPlayer   string
	flagLogFile  string
	flagLogLevel string
	flagNoScores bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyvoid",
	Short: "flappy-void - a one-button reflex game for your terminal",
	Long: `flappy-void drops a ball into a field of scrolling walls. Press space to
push it up, get through the gaps, and every wall you clear is a point.

Available commands:
  play     - Play in the terminal (default)
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  flappyvoid
  flappyvoid play --seed 42
  flappyvoid scores --limit 50
  flappyvoid serve --ssh :2222`,
	Run:          runPlay,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.flappyvoid/scores.db", "Path to scores database")
	pf.StringVar(&flagAssets, "assets", "assets", "Directory containing map.jpg, zm.jpg and sld.jpg")
	pf.StringVar(&flagPlayer, "player", "", "Player name for the leaderboard (default: OS user)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagNoScores, "no-scores", false, "Do not record scores")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
