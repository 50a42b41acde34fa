package ai

import (
	"math"

	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Tactical keeps the target at a preferred range and lobs shots with a
// compensation for projectile drop.
type Tactical struct {
	pilot
	cfg config.TacticalConfig
}

// NewTactical creates a tactical strategy
func NewTactical(cfg config.TacticalConfig, sensors *Sensors, mover Mover) *Tactical {
	return &Tactical{
		pilot: pilot{sensors: sensors, mover: mover},
		cfg:   cfg,
	}
}

// Update runs one tick of the turn
func (t *Tactical) Update(self *entity.Entity, stage *entity.Stage, entities []*entity.Entity) bool {
	self.Timer++
	if self.Timer < t.cfg.WaitTicks {
		t.move(self, system.InputSnapshot{}, entities)
		return false
	}

	target := t.sensors.FindTarget(self, entities)
	if target == nil {
		return true
	}

	if self.Timer > t.cfg.MoveTicks {
		self.CanMove = false
	}

	in := system.InputSnapshot{}
	if self.CanMove && !self.IsAiming() {
		dx := target.X - self.X
		dist := math.Abs(dx)

		dir := 0
		switch {
		case dist < t.cfg.PreferredRange-t.cfg.RangeTolerance:
			dir = -sign(dx)
		case dist > t.cfg.PreferredRange+t.cfg.RangeTolerance:
			dir = sign(dx)
		}

		if dir != 0 && !t.sensors.IsSafe(self, stage, dir) {
			dir = 0
		}
		if dir == 0 {
			self.CanMove = false
		} else {
			in = t.walkInput(self, dir, t.cfg.StallSpeed, false)
		}
	}
	t.move(self, in, entities)

	if self.CanMove && !self.IsAiming() {
		return false
	}

	face(self, target)
	t.aim(self, stage, entities, t.dropAngle(self, target))

	if self.Timer > t.cfg.FireTicks {
		t.fire(self, target)
		return true
	}
	return false
}

// dropAngle aims above the target in proportion to horizontal distance
func (t *Tactical) dropAngle(self, target *entity.Entity) float64 {
	sx, sy := self.Center()
	tx, ty := target.Center()
	dx, dy := tx-sx, ty-sy
	return math.Atan2(dy-t.cfg.DropFactor*math.Abs(dx), dx)
}
