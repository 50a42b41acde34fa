// Package main is the entry point for the skirmish game
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

var (
	configDir string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:          "skirmish",
	Short:        "Turn-based tile map skirmish",
	Long:         `Skirmish is a turn-based 2D combat game: pick a class, clear each level's enemies, and beat the clock.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Load configs from this directory instead of the built-in set")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Verbose development logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// loadConfig reads the config directory, or the embedded configs when none is given
func loadConfig() (*config.GameConfig, error) {
	var loader *config.Loader
	if configDir != "" {
		loader = config.NewLoader(configDir)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded configs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", loader.BasePath(), err)
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
