package match

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

func floorMap(floor string) []string {
	rows := make([]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, "0000000000000000")
	}
	return append(rows, floor)
}

// duelLevel puts the player and one enemy per x on a solid floor
func duelLevel(name string, enemyXs ...float64) config.LevelConfig {
	level := config.LevelConfig{
		Name:        name,
		Map:         floorMap("1111111111111111"),
		PlayerSpawn: config.PositionConfig{X: 60, Y: 450},
	}
	for _, x := range enemyXs {
		level.Enemies = append(level.Enemies, config.EnemySpawnConfig{Type: "bot", X: x, Y: 450})
	}
	return level
}

// wetLevel drops its only enemy into water on the first tick
func wetLevel(name string) config.LevelConfig {
	return config.LevelConfig{
		Name:        name,
		Map:         floorMap("1111111111112211"),
		PlayerSpawn: config.PositionConfig{X: 60, Y: 450},
		Enemies:     []config.EnemySpawnConfig{{Type: "bot", X: 600, Y: 450}},
	}
}

// drownLevel drops the player into water on the first tick
func drownLevel(name string) config.LevelConfig {
	return config.LevelConfig{
		Name:        name,
		Map:         floorMap("1221111111111111"),
		PlayerSpawn: config.PositionConfig{X: 60, Y: 450},
		Enemies:     []config.EnemySpawnConfig{{Type: "bot", X: 600, Y: 450}},
	}
}

func createTestConfig(levels ...config.LevelConfig) *config.GameConfig {
	cfg := config.Default()
	cfg.Levels = &config.LevelsConfig{Levels: levels}
	return cfg
}

func createTestMatch(t *testing.T, level config.LevelConfig, class string) *Match {
	t.Helper()
	cfg := createTestConfig(level)
	m, err := NewMatch(cfg, &cfg.Levels.Levels[0], class, rand.New(rand.NewSource(1)), zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	return m
}

func logContains(m *Match, text string) bool {
	return strings.Contains(m.log.String(), text)
}

func TestNewMatch(t *testing.T) {
	m := createTestMatch(t, duelLevel("duel", 300, 500), "archer")

	require.Len(t, m.Entities(), 3)
	assert.False(t, m.Player().IsAI())
	assert.True(t, m.Entities()[1].IsAI())
	assert.Same(t, m.Player(), m.Current())
	assert.True(t, m.Player().TurnActive())
	assert.Equal(t, "bot#2", m.Name(m.Entities()[2]))
	assert.Equal(t, system.WinStatePlaying, m.State())
	assert.True(t, logContains(m, "you's turn"))
}

func TestNewMatch_Errors(t *testing.T) {
	cfg := createTestConfig(duelLevel("duel", 300))

	_, err := NewMatch(cfg, &cfg.Levels.Levels[0], "wizard", rand.New(rand.NewSource(1)), nil, nil)
	assert.ErrorIs(t, err, config.ErrUnknownClass)

	bad := duelLevel("bad", 300)
	bad.Map[3] = "00x0"
	_, err = NewMatch(cfg, &bad, "archer", rand.New(rand.NewSource(1)), nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalidMap)

	cfg.Classes.Classes["bot"] = config.ClassConfig{MaxHealth: 10, Abilities: []string{"bolt"}, Strategy: "berserk"}
	_, err = NewMatch(cfg, &cfg.Levels.Levels[0], "archer", rand.New(rand.NewSource(1)), nil, nil)
	assert.ErrorIs(t, err, config.ErrUnknownStrategy)
}

func TestMatch_PlayerShotPassesTurn(t *testing.T) {
	m := createTestMatch(t, duelLevel("duel", 300), "mage")
	player, bot := m.Player(), m.Entities()[1]

	m.Tick(system.InputSnapshot{Fire: true})
	assert.False(t, player.HasFired(), "fire needs aim mode")

	m.Tick(system.InputSnapshot{ToggleAim: true})
	require.True(t, player.IsAiming())

	m.Tick(system.InputSnapshot{Fire: true})
	require.True(t, player.HasFired())
	assert.Same(t, player, m.Current(), "turn ends on the following tick")

	m.Tick(system.InputSnapshot{})
	assert.Same(t, bot, m.Current())
	assert.True(t, bot.TurnActive())
	assert.False(t, player.TurnActive())

	for i := 0; i < 40; i++ {
		m.Tick(system.InputSnapshot{})
	}

	assert.Equal(t, 30, bot.Health)
	assert.True(t, logContains(m, "you hit bot#1 with bolt for 30"))
}

func TestMatch_AbilitySelection(t *testing.T) {
	m := createTestMatch(t, duelLevel("duel", 300), "mage")
	player := m.Player()

	m.Tick(system.InputSnapshot{NextAbility: true})
	assert.Equal(t, 1, player.Selected)

	m.Tick(system.InputSnapshot{PrevAbility: true})
	m.Tick(system.InputSnapshot{PrevAbility: true})
	assert.Equal(t, 3, player.Selected)

	m.Tick(system.InputSnapshot{SelectSlot: 3})
	assert.Equal(t, 2, player.Selected)
}

func TestMatch_AITurnHandsBack(t *testing.T) {
	m := createTestMatch(t, duelLevel("duel", 400), "archer")
	player, bot := m.Player(), m.Entities()[1]

	m.Tick(system.InputSnapshot{ToggleAim: true})
	m.Tick(system.InputSnapshot{Down: true})
	m.Tick(system.InputSnapshot{Down: true, Fire: true})
	m.Tick(system.InputSnapshot{})
	require.Same(t, bot, m.Current())

	for i := 0; i < 250 && m.Current() == bot; i++ {
		m.Tick(system.InputSnapshot{})
	}

	assert.Same(t, player, m.Current())
	assert.False(t, bot.TurnActive())
	assert.True(t, logContains(m, "bot#1 used arrow"))
}

func TestMatch_DeadCurrentIsSkipped(t *testing.T) {
	m := createTestMatch(t, duelLevel("duel", 300, 500), "mage")
	bot1, bot2 := m.Entities()[1], m.Entities()[2]

	m.Tick(system.InputSnapshot{ToggleAim: true})
	m.Tick(system.InputSnapshot{Down: true, Fire: true})
	m.Tick(system.InputSnapshot{})
	require.Same(t, bot1, m.Current())

	bot1.Kill()
	state := m.Tick(system.InputSnapshot{})

	assert.Equal(t, system.WinStatePlaying, state)
	assert.Same(t, bot2, m.Current())
	assert.True(t, logContains(m, "bot#1 was defeated"))
}

func TestMatch_Victory(t *testing.T) {
	m := createTestMatch(t, wetLevel("wet"), "archer")

	state := m.Tick(system.InputSnapshot{})

	assert.Equal(t, system.WinStateVictory, state)
	assert.True(t, logContains(m, "bot#1 was defeated"))

	ticks := m.Ticks()
	assert.Equal(t, system.WinStateVictory, m.Tick(system.InputSnapshot{}))
	assert.Equal(t, ticks, m.Ticks(), "finished matches do not advance")
}

func TestMatch_Defeat(t *testing.T) {
	m := createTestMatch(t, drownLevel("drown"), "archer")

	assert.Equal(t, system.WinStatePlayerDefeated, m.Tick(system.InputSnapshot{}))
	assert.False(t, m.Player().Alive())
}

func TestLog(t *testing.T) {
	l := NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Addf("line %d", i)
	}

	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, l.Lines())
	assert.Equal(t, []string{"line 4", "line 5"}, l.Tail(2))
	assert.Equal(t, l.Lines(), l.Tail(10))
	assert.Equal(t, "line 3\nline 4\nline 5", l.String())
	assert.Equal(t, DefaultLogSize, NewLog(0).max)
}
