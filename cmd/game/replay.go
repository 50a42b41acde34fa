package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/application/match"
	"github.com/younwookim/skirmish/internal/application/replay"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

var showLog bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play a recording back headless",
	Long:  `Play a recorded session back without a window and print how it ended. Files ending in .mpk are read as msgpack, anything else as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayCmd,
}

func init() {
	replayCmd.Flags().BoolVar(&showLog, "log", false, "Print the full match log")
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}

	res, err := runReplay(cmd.Context(), cfg, data, logger)
	if err != nil {
		return err
	}
	printOutcome(cmd.OutOrStdout(), res)
	return nil
}

// replayResult is a finished headless playback
type replayResult struct {
	campaign *match.Campaign
	played   int
	total    int
}

// runReplay feeds every recorded frame to a fresh campaign built from the
// recording's seed and class. It stops early once the run is over.
func runReplay(ctx context.Context, cfg *config.GameConfig, data *replay.ReplayData, logger *zap.Logger) (*replayResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r := replay.NewReplayer(*data)
	c, err := match.NewCampaign(cfg, match.Options{
		Class:   r.Class(),
		Seed:    r.Seed(),
		MatchID: r.MatchID(),
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild campaign: %w", err)
	}

	for {
		f, ok := r.Next()
		if !ok {
			break
		}
		phase, err := c.Tick(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("replay failed at frame %d: %w", r.CurrentFrame(), err)
		}
		if phase == match.PhaseGameOver || phase == match.PhaseVictory {
			break
		}
	}
	return &replayResult{campaign: c, played: r.CurrentFrame(), total: r.TotalFrames()}, nil
}

func printOutcome(w io.Writer, res *replayResult) {
	c := res.campaign
	fmt.Fprintf(w, "Replay %s (%s, seed %d)\n", c.ID(), c.Class(), c.Seed())
	fmt.Fprintf(w, "Result: %s on level %d/%d (%s)\n", c.Phase(), c.Level()+1, c.LevelCount(), c.Match().Level().Name)
	fmt.Fprintf(w, "Time: %ds, %d of %d frames played\n", c.Seconds(), res.played, res.total)
	if showLog {
		fmt.Fprintln(w, c.Log().String())
	}
}
