package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/application/replay"
	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
	"github.com/younwookim/skirmish/internal/infrastructure/score"
)

// ErrNoLevels is returned when a campaign has nothing to play
var ErrNoLevels = errors.New("no levels configured")

// Phase is where a campaign is between and during levels
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseTransition
	PhaseGameOver
	PhaseVictory
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseTransition:
		return "Transition"
	case PhaseGameOver:
		return "GameOver"
	case PhaseVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Options configures a campaign
type Options struct {
	Class    string
	Seed     int64
	MatchID  string // generated when empty
	Username string // scores are only submitted with a username
	Store    score.Store
	Logger   *zap.Logger
	Now      func() time.Time
}

// Campaign plays the configured levels in order with one character.
// The score is the time spent playing, in whole seconds.
type Campaign struct {
	cfg  *config.GameConfig
	opts Options
	id   string
	rng  *rand.Rand
	log  *Log

	level      int
	match      *Match
	phase      Phase
	transition int
	ticks      int

	entry     *score.Entry
	submitErr error
}

// NewCampaign creates a campaign and loads the first level
func NewCampaign(cfg *config.GameConfig, opts Options) (*Campaign, error) {
	if len(cfg.Levels.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MatchID == "" {
		opts.MatchID = uuid.NewString()
	}

	c := &Campaign{
		cfg:  cfg,
		opts: opts,
		id:   opts.MatchID,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		log:  NewLog(DefaultLogSize),
	}
	if err := c.load(0); err != nil {
		return nil, err
	}

	c.opts.Logger.Info("campaign started",
		zap.String("id", c.id),
		zap.String("class", opts.Class),
		zap.Int64("seed", opts.Seed),
	)
	return c, nil
}

func (c *Campaign) load(index int) error {
	level := &c.cfg.Levels.Levels[index]
	m, err := NewMatch(c.cfg, level, c.opts.Class, c.rng, c.opts.Logger, c.log)
	if err != nil {
		return fmt.Errorf("failed to load level %d: %w", index+1, err)
	}
	c.level = index
	c.match = m
	c.phase = PhasePlaying
	return nil
}

// Tick advances the campaign by one frame
func (c *Campaign) Tick(ctx context.Context, f replay.Frame) (Phase, error) {
	switch c.phase {
	case PhasePlaying:
		if f.SkipLevel && c.level < c.LevelCount()-1 {
			c.log.Addf("skipping to the last level")
			if err := c.load(c.LevelCount() - 1); err != nil {
				return c.phase, err
			}
		}

		c.ticks++
		switch c.match.Tick(f.Input) {
		case system.WinStatePlayerDefeated:
			c.phase = PhaseGameOver
			c.log.Addf("defeated on %s", c.match.Level().Name)
			c.opts.Logger.Info("campaign lost", zap.String("level", c.match.Level().Name), zap.Int("seconds", c.Seconds()))
		case system.WinStateVictory:
			if c.level == c.LevelCount()-1 {
				c.phase = PhaseVictory
				c.log.Addf("campaign cleared in %ds", c.Seconds())
				c.opts.Logger.Info("campaign won", zap.Int("seconds", c.Seconds()))
				c.submit(ctx)
			} else {
				c.phase = PhaseTransition
				c.transition = c.cfg.Physics.Display.TransitionTicks
				c.log.Addf("%s cleared", c.match.Level().Name)
			}
		}

	case PhaseTransition:
		c.transition--
		if c.transition <= 0 {
			if err := c.load(c.level + 1); err != nil {
				return c.phase, err
			}
			c.opts.Logger.Info("level started", zap.Int("level", c.level+1), zap.String("name", c.match.Level().Name))
		}
	}
	return c.phase, nil
}

func (c *Campaign) submit(ctx context.Context) {
	if c.opts.Store == nil || c.opts.Username == "" {
		return
	}

	entry := score.NewEntry(c.opts.Username, c.opts.Class, c.Seconds(), c.opts.Now())
	entry.ID = c.id
	if err := entry.Validate(); err != nil {
		c.submitErr = err
		c.opts.Logger.Warn("score not submitted", zap.Error(err))
		return
	}
	if err := c.opts.Store.Submit(ctx, entry); err != nil {
		c.submitErr = err
		c.opts.Logger.Error("failed to submit score", zap.Error(err))
		return
	}
	c.entry = &entry
	c.log.Addf("score saved for %s", entry.Username)
}

// ID returns the campaign id shared by its replay and score entry
func (c *Campaign) ID() string {
	return c.id
}

// Seed returns the random seed
func (c *Campaign) Seed() int64 {
	return c.opts.Seed
}

// Class returns the player's class
func (c *Campaign) Class() string {
	return c.opts.Class
}

// Phase returns the current phase
func (c *Campaign) Phase() Phase {
	return c.phase
}

// Match returns the level being played
func (c *Campaign) Match() *Match {
	return c.match
}

// Level returns the zero-based index of the current level
func (c *Campaign) Level() int {
	return c.level
}

// LevelCount returns how many levels the campaign has
func (c *Campaign) LevelCount() int {
	return len(c.cfg.Levels.Levels)
}

// TransitionRemaining returns the ticks left before the next level loads
func (c *Campaign) TransitionRemaining() int {
	return c.transition
}

// Ticks returns the frames spent playing levels
func (c *Campaign) Ticks() int {
	return c.ticks
}

// Seconds returns the play time in whole seconds
func (c *Campaign) Seconds() int {
	fps := c.cfg.Physics.Display.Framerate
	if fps <= 0 {
		fps = 60
	}
	return c.ticks / fps
}

// Log returns the event log
func (c *Campaign) Log() *Log {
	return c.log
}

// Entry returns the submitted score entry, nil if nothing was submitted
func (c *Campaign) Entry() *score.Entry {
	return c.entry
}

// SubmitErr returns the error from the last score submission
func (c *Campaign) SubmitErr() error {
	return c.submitErr
}
