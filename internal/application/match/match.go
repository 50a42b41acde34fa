// Package match runs turn-based battles on a single level and chains
// them into a campaign.
package match

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/application/ai"
	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Match is one level being played out. The player is always entity 0.
type Match struct {
	level    *config.LevelConfig
	stage    *entity.Stage
	entities []*entity.Entity
	names    map[*entity.Entity]string
	alive    map[*entity.Entity]bool

	sim    *system.Simulator
	turns  *system.TurnManager
	rng    *rand.Rand
	logger *zap.Logger
	log    *Log

	state system.WinState
	ticks int
}

// NewMatch builds the level, spawns the player and enemies, and starts
// the first turn.
func NewMatch(cfg *config.GameConfig, level *config.LevelConfig, class string, rng *rand.Rand, logger *zap.Logger, log *Log) (*Match, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if log == nil {
		log = NewLog(DefaultLogSize)
	}

	stage, err := system.LoadStage(level, cfg.Physics.World.TileSize)
	if err != nil {
		return nil, err
	}

	combat := system.NewCombatSystem(stage, rng, logger)
	sim := system.NewSimulator(cfg.Physics, system.NewPhysicsSystem(cfg.Physics, stage), combat)

	m := &Match{
		level:  level,
		stage:  stage,
		names:  make(map[*entity.Entity]string),
		alive:  make(map[*entity.Entity]bool),
		sim:    sim,
		turns:  system.NewTurnManager(logger),
		rng:    rng,
		logger: logger,
		log:    log,
	}
	combat.OnHit = m.onHit

	player, err := system.SpawnEntity(cfg, class, level.PlayerSpawn.X, level.PlayerSpawn.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn player: %w", err)
	}
	m.add(player, "you")

	for i, spawn := range level.Enemies {
		enemy, err := system.SpawnEntity(cfg, spawn.Type, spawn.X, spawn.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to spawn enemy %d: %w", i, err)
		}
		strategy, err := ai.New(cfg.Classes.Classes[spawn.Type].Strategy, sim, cfg.AI, rng)
		if err != nil {
			return nil, fmt.Errorf("enemy %d (%s): %w", i, spawn.Type, err)
		}
		enemy.Strategy = strategy
		m.add(enemy, fmt.Sprintf("%s#%d", spawn.Type, i+1))
	}

	log.Addf("== %s ==", level.Name)
	if first := m.turns.Begin(m.entities); first != nil {
		m.log.Addf("%s's turn", m.names[first])
	}
	return m, nil
}

func (m *Match) add(e *entity.Entity, name string) {
	m.entities = append(m.entities, e)
	m.names[e] = name
	m.alive[e] = true
}

// Tick advances the match by one frame. The active entity acts on in (or
// its strategy), everyone else settles, then the outcome is checked and
// the turn passes if it is over.
func (m *Match) Tick(in system.InputSnapshot) system.WinState {
	if m.state != system.WinStatePlaying {
		return m.state
	}
	m.ticks++

	current := m.turns.Current(m.entities)
	if current != nil && !current.Alive() {
		current = m.nextTurn()
	}

	turnOver := false
	if current != nil {
		if current.IsAI() {
			turnOver = current.Strategy.Update(current, m.stage, m.entities)
			if turnOver {
				m.logAction(current)
			}
		} else {
			turnOver = m.playerTick(current, in)
		}
	}

	for _, e := range m.entities {
		if e != current {
			m.sim.Settle(e, m.entities)
		}
	}
	m.recordDeaths()

	m.state = m.turns.CheckGameState(m.entities)
	if m.state != system.WinStatePlaying {
		m.logger.Info("match over",
			zap.String("level", m.level.Name),
			zap.Stringer("state", m.state),
			zap.Int("ticks", m.ticks),
		)
		return m.state
	}

	if turnOver {
		m.nextTurn()
	}
	return m.state
}

// playerTick applies commands then movement. The turn is over on the
// tick after the shot, so the player sees it leave.
func (m *Match) playerTick(p *entity.Entity, in system.InputSnapshot) bool {
	if p.HasFired() {
		m.sim.Move(p, system.InputSnapshot{}, m.entities)
		return true
	}

	switch {
	case in.NextAbility:
		p.CycleAbility(1)
	case in.PrevAbility:
		p.CycleAbility(-1)
	case in.SelectSlot > 0:
		p.SelectAbility(in.SelectSlot - 1)
	}
	if in.ToggleAim {
		p.ToggleAim()
	}

	m.sim.Move(p, in, m.entities)

	if in.Fire && p.IsAiming() {
		if p.Shoot(entity.ShotContext{PointerX: float64(in.PointerX), PointerY: float64(in.PointerY), Rand: m.rng}) {
			m.logAction(p)
		}
	}
	return false
}

func (m *Match) logAction(e *entity.Entity) {
	slot := e.SelectedSlot()
	if !e.HasFired() || slot == nil {
		m.log.Addf("%s passed", m.names[e])
		return
	}
	m.log.Addf("%s used %s", m.names[e], slot.Spec.Kind)
}

func (m *Match) nextTurn() *entity.Entity {
	next := m.turns.NextTurn(m.entities)
	if next != nil {
		m.log.Addf("%s's turn", m.names[next])
	}
	return next
}

func (m *Match) onHit(impact system.Impact) {
	m.log.Addf("%s hit %s with %s for %d", m.names[impact.Source], m.names[impact.Target], impact.Kind, impact.Damage)
	if impact.Status.Type != entity.StatusNone {
		m.log.Addf("%s is %s", m.names[impact.Target], impact.Status.Type)
	}
}

func (m *Match) recordDeaths() {
	for _, e := range m.entities {
		if m.alive[e] && !e.Alive() {
			m.alive[e] = false
			m.log.Addf("%s was defeated", m.names[e])
			m.logger.Debug("entity defeated", zap.String("name", m.names[e]))
		}
	}
}

// State returns the last outcome check
func (m *Match) State() system.WinState {
	return m.state
}

// Level returns the level being played
func (m *Match) Level() *config.LevelConfig {
	return m.level
}

// Stage returns the tile map
func (m *Match) Stage() *entity.Stage {
	return m.stage
}

// Entities returns every entity, the player first
func (m *Match) Entities() []*entity.Entity {
	return m.entities
}

// Player returns the human-controlled entity
func (m *Match) Player() *entity.Entity {
	return m.entities[0]
}

// Current returns the entity whose turn it is
func (m *Match) Current() *entity.Entity {
	return m.turns.Current(m.entities)
}

// Name returns the display name of an entity
func (m *Match) Name(e *entity.Entity) string {
	return m.names[e]
}

// Ticks returns how many frames the match has run
func (m *Match) Ticks() int {
	return m.ticks
}
