package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

var scoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the leaderboard",
	Long:  `Print the fastest campaign clears from the Redis or Postgres leaderboard.`,
	RunE:  runScores,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	RunE:  runLevels,
}

func init() {
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", 10, "Number of entries to show")
	addStoreFlags(scoresCmd)
}

func runScores(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("no leaderboard configured, pass --redis or --postgres")
	}
	defer store.Close()

	entries, err := store.Top(ctx, scoresLimit)
	if err != nil {
		return fmt.Errorf("failed to read leaderboard: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores yet.")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%2d. %-16s %-8s %5ds  %s\n", i+1, e.Username, e.Class, e.Seconds, e.Timestamp.Format(time.DateOnly))
	}
	return nil
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for i, level := range cfg.Levels.Levels {
		fmt.Fprintln(cmd.OutOrStdout(), levelSummary(i, level))
	}
	return nil
}

// levelSummary formats one level for the levels command
func levelSummary(i int, level config.LevelConfig) string {
	width := 0
	if len(level.Map) > 0 {
		width = len(level.Map[0])
	}
	s := fmt.Sprintf("%d. %s (%dx%d)", i+1, level.Name, width, len(level.Map))
	for _, e := range level.Enemies {
		s += fmt.Sprintf("\n   - %s at (%.0f, %.0f)", e.Type, e.X, e.Y)
	}
	return s
}
