package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/application/game"
	"github.com/younwookim/skirmish/internal/application/match"
	"github.com/younwookim/skirmish/internal/application/scene"
	"github.com/younwookim/skirmish/internal/application/scene/menu"
	"github.com/younwookim/skirmish/internal/application/scene/playing"
	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/infrastructure/score"
)

var (
	playClass   string
	recordPath  string
	username    string
	redisAddr   string
	postgresDSN string
	seed        int64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long:  `Open the game window. Without --class the class selection menu is shown first.`,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playClass, "class", "", "Start directly with this class")
	playCmd.Flags().StringVar(&recordPath, "record", "", "Record input to file (.json or .mpk)")
	playCmd.Flags().StringVar(&username, "name", "", "Username for the leaderboard")
	playCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, 0 picks one from the clock")
	addStoreFlags(playCmd)
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the leaderboard")
	cmd.Flags().StringVar(&postgresDSN, "postgres", "", "Postgres DSN for the leaderboard")
}

// openStore connects the configured leaderboard store, nil when none is set
func openStore(ctx context.Context) (score.Store, error) {
	switch {
	case redisAddr != "":
		store, err := score.DialRedis(ctx, redisAddr)
		if err != nil {
			return nil, err
		}
		return store, nil
	case postgresDSN != "":
		store, err := score.NewPostgresStore(ctx, postgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, nil
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	store, err := openStore(ctx)
	cancel()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	keys := system.EbitenKeys()
	var title *menu.Menu
	start := func(class string) (scene.Scene, error) {
		runSeed := seed
		if runSeed == 0 {
			runSeed = time.Now().UnixNano()
		}
		p, err := playing.New(playing.Options{
			Config: cfg,
			Campaign: match.Options{
				Class:    class,
				Seed:     runSeed,
				Username: username,
				Store:    store,
				Logger:   logger,
			},
			RecordPath: recordPath,
			Keys:       keys,
			Back:       func() scene.Scene { return title },
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	title = menu.New(cfg, keys, start, logger)

	var initial scene.Scene = title
	if playClass != "" {
		if initial, err = start(playClass); err != nil {
			return err
		}
	}

	display := cfg.Physics.Display
	ebiten.SetWindowSize(display.ScreenWidth, display.ScreenHeight)
	ebiten.SetWindowTitle(display.Title)
	ebiten.SetTPS(display.Framerate)

	logger.Info("starting", zap.String("title", display.Title), zap.Int("levels", len(cfg.Levels.Levels)))
	if err := ebiten.RunGame(game.New(initial, display.ScreenWidth, display.ScreenHeight, display.Framerate, logger)); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}
