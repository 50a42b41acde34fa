package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/domain/entity"
)

// WinState is the outcome check run once per tick
type WinState int

const (
	WinStatePlaying WinState = iota
	WinStatePlayerDefeated
	WinStateVictory
)

// String returns the state name
func (w WinState) String() string {
	switch w {
	case WinStatePlaying:
		return "Playing"
	case WinStatePlayerDefeated:
		return "PlayerDefeated"
	case WinStateVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// TurnManager cycles turns over an ordered entity list. The human player
// is always at index 0.
type TurnManager struct {
	index  int
	logger *zap.Logger
}

// NewTurnManager creates a turn manager
func NewTurnManager(logger *zap.Logger) *TurnManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TurnManager{logger: logger}
}

// Reset points the manager back at the first entity
func (m *TurnManager) Reset() {
	m.index = 0
}

// Index returns the index of the active entity
func (m *TurnManager) Index() int {
	return m.index
}

// Current returns the active entity, nil if the list is empty
func (m *TurnManager) Current(entities []*entity.Entity) *entity.Entity {
	if len(entities) == 0 {
		return nil
	}
	return entities[m.index%len(entities)]
}

// Begin resets the rotation and starts the first living entity's turn
func (m *TurnManager) Begin(entities []*entity.Entity) *entity.Entity {
	m.Reset()
	if len(entities) == 0 {
		return nil
	}
	if !entities[0].Alive() {
		return m.NextTurn(entities)
	}
	entities[0].StartTurn()
	m.logTurn(entities[0])
	return entities[0]
}

// NextTurn ends the current entity's turn and starts the next living one.
// The search is bounded by the list length, so when nobody is alive it
// stops without starting a turn.
func (m *TurnManager) NextTurn(entities []*entity.Entity) *entity.Entity {
	if len(entities) == 0 {
		return nil
	}

	if current := m.Current(entities); current != nil {
		current.EndTurn()
	}

	for attempts := 0; attempts < len(entities); attempts++ {
		m.index = (m.index + 1) % len(entities)
		if entities[m.index].Alive() {
			break
		}
	}

	next := entities[m.index]
	if !next.Alive() {
		return nil
	}
	next.StartTurn()
	m.logTurn(next)
	return next
}

func (m *TurnManager) logTurn(e *entity.Entity) {
	m.logger.Debug("turn started",
		zap.Int("index", m.index),
		zap.String("class", e.Class),
		zap.Int("health", e.Health),
	)
}

// CheckGameState reports defeat when the human at index 0 is missing or
// dead, victory when no AI entity is alive, and playing otherwise.
// Defeat takes precedence.
func (m *TurnManager) CheckGameState(entities []*entity.Entity) WinState {
	if len(entities) == 0 || !entities[0].Alive() {
		return WinStatePlayerDefeated
	}
	for _, e := range entities {
		if e.IsAI() && e.Alive() {
			return WinStatePlaying
		}
	}
	return WinStateVictory
}
