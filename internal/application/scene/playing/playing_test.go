package playing

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/younwookim/skirmish/internal/application/match"
	"github.com/younwookim/skirmish/internal/application/replay"
	"github.com/younwookim/skirmish/internal/application/scene"
	"github.com/younwookim/skirmish/internal/application/state"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// fakeKeys reports a fixed set of just-pressed keys
type fakeKeys struct {
	pressed map[ebiten.Key]bool
}

func (f *fakeKeys) Pressed(ebiten.Key) bool                  { return false }
func (f *fakeKeys) JustPressed(k ebiten.Key) bool            { return f.pressed[k] }
func (f *fakeKeys) MouseJustPressed(ebiten.MouseButton) bool { return false }
func (f *fakeKeys) Cursor() (int, int)                       { return 0, 0 }

func (f *fakeKeys) press(keys ...ebiten.Key) {
	f.pressed = map[ebiten.Key]bool{}
	for _, k := range keys {
		f.pressed[k] = true
	}
}

// menuStub stands in for the scene Back returns
type menuStub struct{}

func (menuStub) Update(float64) (scene.Scene, error) { return nil, nil }
func (menuStub) Draw(*ebiten.Image)                  {}
func (menuStub) OnEnter()                            {}
func (menuStub) OnExit()                             {}

func floorMap(floor string) []string {
	rows := make([]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, "0000000000000000")
	}
	return append(rows, floor)
}

// wetLevel is won on the first tick when its enemy drops into water
func wetLevel(name string) config.LevelConfig {
	return config.LevelConfig{
		Name:        name,
		Map:         floorMap("1111111111112211"),
		PlayerSpawn: config.PositionConfig{X: 60, Y: 450},
		Enemies:     []config.EnemySpawnConfig{{Type: "bot", X: 600, Y: 450}},
	}
}

// drownLevel is lost within a few ticks when the player drops into water
func drownLevel(name string) config.LevelConfig {
	return config.LevelConfig{
		Name:        name,
		Map:         floorMap("1221111111111111"),
		PlayerSpawn: config.PositionConfig{X: 60, Y: 450},
		Enemies:     []config.EnemySpawnConfig{{Type: "bot", X: 600, Y: 450}},
	}
}

func duelLevel(name string) config.LevelConfig {
	return config.LevelConfig{
		Name:        name,
		Map:         floorMap("1111111111111111"),
		PlayerSpawn: config.PositionConfig{X: 60, Y: 450},
		Enemies:     []config.EnemySpawnConfig{{Type: "bot", X: 600, Y: 450}},
	}
}

type testRun struct {
	playing *Playing
	keys    *fakeKeys
	copied  []string
}

func createTestPlaying(t *testing.T, recordPath string, levels ...config.LevelConfig) *testRun {
	t.Helper()
	cfg := config.Default()
	cfg.Levels = &config.LevelsConfig{Levels: levels}

	run := &testRun{keys: &fakeKeys{}}
	p, err := New(Options{
		Config: cfg,
		Campaign: match.Options{
			Class:  "archer",
			Seed:   3,
			Logger: zaptest.NewLogger(t),
		},
		RecordPath: recordPath,
		Keys:       run.keys,
		Back:       func() scene.Scene { return menuStub{} },
		CopyText: func(s string) error {
			run.copied = append(run.copied, s)
			return nil
		},
	})
	require.NoError(t, err)
	run.playing = p
	return run
}

// step runs one update with the given keys held down for that frame
func (r *testRun) step(t *testing.T, keys ...ebiten.Key) scene.Scene {
	t.Helper()
	r.keys.press(keys...)
	next, err := r.playing.Update(1.0 / 60)
	require.NoError(t, err)
	return next
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{
		Config:   config.Default(),
		Campaign: match.Options{Class: "wizard"},
		Keys:     &fakeKeys{},
	})
	assert.ErrorIs(t, err, config.ErrUnknownClass)

	cfg := config.Default()
	cfg.Levels = &config.LevelsConfig{}
	_, err = New(Options{Config: cfg, Campaign: match.Options{Class: "archer"}, Keys: &fakeKeys{}})
	assert.ErrorIs(t, err, match.ErrNoLevels)
}

func TestPlaying_VictorySavesRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	run := createTestPlaying(t, path, wetLevel("only"))

	assert.Nil(t, run.step(t))
	assert.Equal(t, state.StateVictory, run.playing.State())

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, data.Frames, 1)
	assert.Equal(t, run.playing.Campaign().ID(), data.MatchID)
	assert.Equal(t, int64(3), data.Seed)
	assert.Equal(t, "archer", data.Class)

	// Terminal screens ignore gameplay input
	assert.Nil(t, run.step(t, ebiten.KeyK))
	assert.Equal(t, state.StateVictory, run.playing.State())
}

func TestPlaying_GameOverReturnsToMenu(t *testing.T) {
	run := createTestPlaying(t, "", drownLevel("drown"))

	for i := 0; i < 10 && !run.playing.State().Terminal(); i++ {
		run.step(t)
	}
	require.Equal(t, state.StateGameOver, run.playing.State())

	assert.Nil(t, run.step(t))
	assert.Equal(t, menuStub{}, run.step(t, ebiten.KeyEnter))
}

func TestPlaying_SkipLevel(t *testing.T) {
	run := createTestPlaying(t, "", duelLevel("one"), duelLevel("two"))

	run.step(t, ebiten.KeyK)
	assert.Equal(t, 1, run.playing.Campaign().Level())
	assert.Equal(t, state.StatePlaying, run.playing.State())
}

func TestPlaying_CopyLog(t *testing.T) {
	run := createTestPlaying(t, "", duelLevel("one"))

	run.step(t, ebiten.KeyF2)
	require.Len(t, run.copied, 1)
	assert.Contains(t, run.copied[0], "you's turn")
	assert.Equal(t, "log copied", run.playing.Notice())

	run.playing.copyText = func(string) error { return errors.New("no display") }
	run.step(t, ebiten.KeyF2)
	assert.Equal(t, "clipboard unavailable", run.playing.Notice())
}

func TestPlaying_ManualSaveKeepsRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.mpk")
	run := createTestPlaying(t, path, duelLevel("one"))

	run.step(t)
	run.step(t, ebiten.KeyF5)
	assert.Equal(t, "recording saved", run.playing.Notice())

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, data.Frames, 1, "F5 saves before the frame is recorded")

	next := run.step(t, ebiten.KeyEscape)
	assert.Equal(t, menuStub{}, next)

	data, err = replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, data.Frames, 2)
}

func TestPlaying_EscapeWithoutFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	run := createTestPlaying(t, path, duelLevel("one"))

	next := run.step(t, ebiten.KeyEscape)
	assert.Equal(t, menuStub{}, next)
	assert.Equal(t, "recording not saved", run.playing.Notice())
}
