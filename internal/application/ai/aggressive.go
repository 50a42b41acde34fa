package ai

import (
	"math"

	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Aggressive closes in on the target, hopping at random, then fires a
// direct shot.
type Aggressive struct {
	pilot
	cfg config.AggressiveConfig
}

// NewAggressive creates an aggressive strategy
func NewAggressive(cfg config.AggressiveConfig, sensors *Sensors, mover Mover, rng entity.Rand) *Aggressive {
	return &Aggressive{
		pilot: pilot{sensors: sensors, mover: mover, rng: rng},
		cfg:   cfg,
	}
}

// Update runs one tick of the turn
func (a *Aggressive) Update(self *entity.Entity, stage *entity.Stage, entities []*entity.Entity) bool {
	self.Timer++
	if self.Timer < a.cfg.WaitTicks {
		a.move(self, system.InputSnapshot{}, entities)
		return false
	}

	target := a.sensors.FindTarget(self, entities)
	if target == nil {
		return true
	}

	if self.Timer > a.cfg.MoveTicks {
		self.CanMove = false
	}

	in := system.InputSnapshot{}
	if self.CanMove && !self.IsAiming() {
		dir := 0
		if dx := target.X - self.X; math.Abs(dx) > a.cfg.ApproachDistance {
			dir = sign(dx)
		}
		if dir != 0 && !a.sensors.IsSafe(self, stage, dir) {
			self.CanMove = false
			dir = 0
		}
		if dir != 0 {
			hop := a.rng != nil && a.rng.Float64() < a.cfg.HopChance
			in = a.walkInput(self, dir, 0.01, hop)
		}
	}
	a.move(self, in, entities)

	if self.CanMove && !self.IsAiming() {
		return false
	}

	face(self, target)
	a.aim(self, stage, entities, directAngle(self, target))

	if self.Timer > a.cfg.FireTicks {
		a.fire(self, target)
		return true
	}
	return false
}
