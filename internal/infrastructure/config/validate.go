package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownClass    = errors.New("unknown class")
	ErrUnknownAbility  = errors.New("unknown ability")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidMap      = errors.New("invalid map")
)

// Strategy ids understood by the AI package. An empty id means human control.
const (
	StrategyAggressive = "aggressive"
	StrategyTactical   = "tactical"
	StrategyStationary = "stationary"
)

// Validate checks references between the config files.
func (c *GameConfig) Validate() error {
	if c.Physics == nil || c.Abilities == nil || c.Classes == nil || c.AI == nil || c.Levels == nil {
		return errors.New("incomplete config")
	}
	if c.Physics.World.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.Physics.World.TileSize)
	}

	for name, class := range c.Classes.Classes {
		for _, ability := range class.Abilities {
			if _, ok := c.Abilities.Abilities[ability]; !ok {
				return fmt.Errorf("class %s: %w: %s", name, ErrUnknownAbility, ability)
			}
		}
		switch class.Strategy {
		case "", StrategyAggressive, StrategyTactical, StrategyStationary:
		default:
			return fmt.Errorf("class %s: %w: %s", name, ErrUnknownStrategy, class.Strategy)
		}
	}

	for _, name := range c.Classes.Playable {
		if _, ok := c.Classes.Classes[name]; !ok {
			return fmt.Errorf("playable: %w: %s", ErrUnknownClass, name)
		}
	}

	for i, level := range c.Levels.Levels {
		if err := validateMap(level.Map); err != nil {
			return fmt.Errorf("level %d: %w", i+1, err)
		}
		for _, enemy := range level.Enemies {
			if _, ok := c.Classes.Classes[enemy.Type]; !ok {
				return fmt.Errorf("level %d: %w: %s", i+1, ErrUnknownClass, enemy.Type)
			}
		}
	}

	return nil
}

func validateMap(rows []string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidMap)
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMap, y, len(row), width)
		}
		for x, ch := range row {
			if ch < '0' || ch > '3' {
				return fmt.Errorf("%w: unknown tile %q at (%d,%d)", ErrInvalidMap, ch, x, y)
			}
		}
	}
	return nil
}
