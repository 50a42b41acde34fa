package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/younwookim/skirmish/internal/application/replay"
	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
	"github.com/younwookim/skirmish/internal/infrastructure/score"
	"github.com/younwookim/skirmish/internal/infrastructure/score/mocks"
)

var testNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func createTestCampaign(t *testing.T, cfg *config.GameConfig, store score.Store, username string) *Campaign {
	t.Helper()
	c, err := NewCampaign(cfg, Options{
		Class:    "archer",
		Seed:     7,
		Username: username,
		Store:    store,
		Logger:   zaptest.NewLogger(t),
		Now:      func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return c
}

// run ticks the campaign with idle input until it leaves playing and
// transition phases or the tick limit is hit.
func run(t *testing.T, c *Campaign, limit int) Phase {
	t.Helper()
	phase := c.Phase()
	for i := 0; i < limit; i++ {
		var err error
		phase, err = c.Tick(context.Background(), replay.Frame{})
		require.NoError(t, err)
		if phase == PhaseGameOver || phase == PhaseVictory {
			break
		}
	}
	return phase
}

func TestNewCampaign_Errors(t *testing.T) {
	_, err := NewCampaign(createTestConfig(), Options{Class: "archer"})
	assert.True(t, errors.Is(err, ErrNoLevels))

	_, err = NewCampaign(createTestConfig(wetLevel("wet")), Options{Class: "wizard"})
	assert.True(t, errors.Is(err, config.ErrUnknownClass))
}

func TestNewCampaign_GeneratesID(t *testing.T) {
	a := createTestCampaign(t, createTestConfig(wetLevel("wet")), nil, "")
	b := createTestCampaign(t, createTestConfig(wetLevel("wet")), nil, "")

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, int64(7), a.Seed())
	assert.Equal(t, "archer", a.Class())
	assert.Equal(t, PhasePlaying, a.Phase())
}

func TestCampaign_LevelTransition(t *testing.T) {
	cfg := createTestConfig(wetLevel("first"), wetLevel("second"))
	cfg.Physics.Display.TransitionTicks = 3
	c := createTestCampaign(t, cfg, nil, "")

	phase, err := c.Tick(context.Background(), replay.Frame{})
	require.NoError(t, err)
	assert.Equal(t, PhaseTransition, phase)
	assert.Equal(t, 3, c.TransitionRemaining())

	c.Tick(context.Background(), replay.Frame{})
	c.Tick(context.Background(), replay.Frame{})
	assert.Equal(t, 0, c.Level())

	phase, _ = c.Tick(context.Background(), replay.Frame{})
	assert.Equal(t, PhasePlaying, phase)
	assert.Equal(t, 1, c.Level())
	assert.Equal(t, "second", c.Match().Level().Name)

	phase, _ = c.Tick(context.Background(), replay.Frame{})
	assert.Equal(t, PhaseVictory, phase)
	assert.Equal(t, 2, c.Ticks(), "transition time is not scored")
	assert.Nil(t, c.Entry(), "no store configured")
}

func TestCampaign_SubmitsScoreOnVictory(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	c := createTestCampaign(t, createTestConfig(wetLevel("only")), store, "  robin ")

	var submitted score.Entry
	store.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e score.Entry) error {
			submitted = e
			return nil
		})

	assert.Equal(t, PhaseVictory, run(t, c, 10))

	assert.Equal(t, c.ID(), submitted.ID)
	assert.Equal(t, "robin", submitted.Username)
	assert.Equal(t, "archer", submitted.Class)
	assert.Equal(t, 0, submitted.Seconds)
	assert.Equal(t, testNow, submitted.Timestamp)
	require.NotNil(t, c.Entry())
	assert.NoError(t, c.SubmitErr())
}

func TestCampaign_SubmitFailureIsKept(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	c := createTestCampaign(t, createTestConfig(wetLevel("only")), store, "robin")

	store.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	assert.Equal(t, PhaseVictory, run(t, c, 10))
	assert.Error(t, c.SubmitErr())
	assert.Nil(t, c.Entry())
}

func TestCampaign_ShortUsernameSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	c := createTestCampaign(t, createTestConfig(wetLevel("only")), store, "ab")

	assert.Equal(t, PhaseVictory, run(t, c, 10))
	assert.True(t, errors.Is(c.SubmitErr(), score.ErrInvalidEntry))
}

func TestCampaign_Defeat(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	c := createTestCampaign(t, createTestConfig(drownLevel("drown"), wetLevel("never")), store, "robin")

	assert.Equal(t, PhaseGameOver, run(t, c, 10))
	assert.Equal(t, 0, c.Level())

	phase, err := c.Tick(context.Background(), replay.Frame{})
	require.NoError(t, err)
	assert.Equal(t, PhaseGameOver, phase, "game over is final")
}

func TestCampaign_SkipLevel(t *testing.T) {
	cfg := createTestConfig(duelLevel("one", 300), duelLevel("two", 300), wetLevel("boss"))
	c := createTestCampaign(t, cfg, nil, "")

	phase, err := c.Tick(context.Background(), replay.Frame{SkipLevel: true})

	require.NoError(t, err)
	assert.Equal(t, 2, c.Level())
	assert.Equal(t, PhaseVictory, phase)
	assert.Contains(t, c.Log().String(), "skipping to the last level")
}

func TestCampaign_Seconds(t *testing.T) {
	c := createTestCampaign(t, createTestConfig(duelLevel("long", 600)), nil, "")

	for i := 0; i < 150; i++ {
		_, err := c.Tick(context.Background(), replay.Frame{})
		require.NoError(t, err)
	}

	assert.Equal(t, 150, c.Ticks())
	assert.Equal(t, 2, c.Seconds())
}

func TestCampaign_SameSeedSameOutcome(t *testing.T) {
	cfg := createTestConfig(duelLevel("duel", 500))
	a := createTestCampaign(t, cfg, nil, "")
	b := createTestCampaign(t, cfg, nil, "")

	frames := map[int]replay.Frame{
		0: {Input: system.InputSnapshot{ToggleAim: true}},
		1: {Input: system.InputSnapshot{Fire: true}},
	}
	for i := 0; i < 300; i++ {
		a.Tick(context.Background(), frames[i])
		b.Tick(context.Background(), frames[i])
	}
	require.Contains(t, a.Log().String(), "bot#1's turn")

	ea, eb := a.Match().Entities(), b.Match().Entities()
	for i := range ea {
		assert.Equal(t, ea[i].X, eb[i].X)
		assert.Equal(t, ea[i].Y, eb[i].Y)
		assert.Equal(t, ea[i].Health, eb[i].Health)
	}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "Playing", PhasePlaying.String())
	assert.Equal(t, "Transition", PhaseTransition.String())
	assert.Equal(t, "GameOver", PhaseGameOver.String())
	assert.Equal(t, "Victory", PhaseVictory.String())
	assert.Equal(t, "Unknown", Phase(9).String())
}
