package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-void/internal/storage"
)

var (
	flagLimit      int
	flagRankPlayer string
	flagRuns       bool
	flagClear      bool
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5f5f5"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9a9a9a"))
	leaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c6c6c"))
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best score of every player, highest first.

Ties are broken by who reached the score first.

Examples:
  flappyvoid scores
  flappyvoid scores --limit 50
  flappyvoid scores --rank ana
  flappyvoid scores --runs
  flappyvoid scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of entries to show")
	scoresCmd.Flags().StringVar(&flagRankPlayer, "rank", "", "Show the standing of one player")
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List the best individual runs instead of players")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, _, err := loadSettings(cmd)
	exitOnError(err)

	// Open score storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = store.ClearScores()
		if err == nil {
			fmt.Println("All scores cleared.")
		}
	case flagRankPlayer != "":
		err = printRank(store, flagRankPlayer)
	case flagRuns:
		err = printRuns(store, flagLimit)
	default:
		err = printLeaderboard(store, flagLimit)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printLeaderboard(store *storage.Store, limit int) error {
	board, err := store.Leaderboard(limit)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Leaderboard - flappy-void"))
	fmt.Println()

	if len(board) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappyvoid' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Println(headerStyle.Render(fmt.Sprintf("  %-4s  %-20s  %-6s  %-5s  %s", "Rank", "Player", "Best", "Runs", "Reached")))

	for _, e := range board {
		line := fmt.Sprintf("  %-4d  %-20s  %-6d  %-5d  %s",
			e.Rank, e.Player, e.BestScore, e.Runs, e.AchievedAt.Format("2006-01-02 15:04"))
		if e.Rank == 1 {
			line = leaderStyle.Render(line)
		}
		fmt.Println(line)
	}

	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d runs by %d players, average %.1f, last played %s",
		stats.Runs, stats.Players, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))))
	return nil
}

func printRuns(store *storage.Store, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Best Runs - flappy-void"))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("  %-4s  %-20s  %-6s  %-8s  %s", "#", "Player", "Score", "Time", "Date")))
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-20s  %-6d  %-8s  %s\n",
			i+1, entry.Player, entry.Score, entry.Duration.Round(100*time.Millisecond), entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRank(store *storage.Store, player string) error {
	e, err := store.PlayerRank(player)
	if errors.Is(err, storage.ErrPlayerNotFound) {
		fmt.Printf("%s has not played yet.\n", player)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(e.Player))
	fmt.Printf("  Rank:        #%d\n", e.Rank)
	fmt.Printf("  Best:        %d (%s)\n", e.BestScore, e.AchievedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  Runs:        %d\n", e.Runs)
	fmt.Printf("  Last played: %s\n", e.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}
