// Package state names the screens the game can be on.
package state

import "github.com/younwookim/skirmish/internal/application/match"

// GameState represents the current state of the game
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StateLevelTransition
	StateGameOver
	StateVictory
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateLevelTransition:
		return "LevelTransition"
	case StateGameOver:
		return "GameOver"
	case StateVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// FromPhase maps a campaign phase to the screen state shown for it
func FromPhase(p match.Phase) GameState {
	switch p {
	case match.PhaseTransition:
		return StateLevelTransition
	case match.PhaseGameOver:
		return StateGameOver
	case match.PhaseVictory:
		return StateVictory
	default:
		return StatePlaying
	}
}

// Terminal reports whether the state ends the run
func (s GameState) Terminal() bool {
	return s == StateGameOver || s == StateVictory
}
