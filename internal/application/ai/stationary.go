package ai

import (
	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Stationary never walks. It tracks the target every tick and fires once
// the timer runs out.
type Stationary struct {
	pilot
	cfg config.StationaryConfig
}

// NewStationary creates a stationary strategy
func NewStationary(cfg config.StationaryConfig, sensors *Sensors, mover Mover, rng entity.Rand) *Stationary {
	return &Stationary{
		pilot: pilot{sensors: sensors, mover: mover, rng: rng},
		cfg:   cfg,
	}
}

// Update runs one tick of the turn
func (s *Stationary) Update(self *entity.Entity, stage *entity.Stage, entities []*entity.Entity) bool {
	self.Timer++
	self.CanMove = false

	target := s.sensors.FindTarget(self, entities)
	if target == nil {
		return true
	}

	face(self, target)
	s.aim(self, stage, entities, directAngle(self, target))
	s.move(self, system.InputSnapshot{}, entities)

	if self.Timer > s.cfg.FireTicks {
		s.fire(self, target)
		return true
	}
	return false
}
