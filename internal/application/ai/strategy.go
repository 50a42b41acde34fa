package ai

import (
	"fmt"
	"math"

	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Mover advances an entity by one tick of input
type Mover interface {
	Move(e *entity.Entity, in system.InputSnapshot, entities []*entity.Entity)
}

// New builds the strategy registered under id
func New(id string, mover Mover, cfg *config.AIConfig, rng entity.Rand) (entity.Strategy, error) {
	sensors := NewSensors(cfg.Sensors)
	switch id {
	case config.StrategyAggressive:
		return NewAggressive(cfg.Aggressive, sensors, mover, rng), nil
	case config.StrategyTactical:
		return NewTactical(cfg.Tactical, sensors, mover), nil
	case config.StrategyStationary:
		return NewStationary(cfg.Stationary, sensors, mover, rng), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownStrategy, id)
	}
}

// pilot holds what every strategy does the same way: walking, aiming
// and pulling the trigger.
type pilot struct {
	sensors *Sensors
	mover   Mover
	rng     entity.Rand
	lastX   float64
	walked  bool
}

// walkInput builds the input for one step in dir. It jumps when the
// previous step made no progress or when hop says so.
func (p *pilot) walkInput(self *entity.Entity, dir int, stall float64, hop bool) system.InputSnapshot {
	in := system.InputSnapshot{Left: dir < 0, Right: dir > 0}
	stuck := p.walked && math.Abs(self.X-p.lastX) < stall
	if hop || stuck {
		in.Jump = true
	}
	return in
}

// move forwards the chosen input and remembers where the body was
func (p *pilot) move(self *entity.Entity, in system.InputSnapshot, entities []*entity.Entity) {
	p.lastX = self.X
	p.walked = in.Left || in.Right
	p.mover.Move(self, in, entities)
}

// aim enters aim mode, faces the target and sets the angle. A shot that
// would cross an ally is pointed at the ground instead.
func (p *pilot) aim(self *entity.Entity, stage *entity.Stage, entities []*entity.Entity, angle float64) {
	if !self.IsAiming() {
		self.ToggleAim()
	}
	if p.sensors.FriendInLineOfFire(self, stage, entities, angle) {
		angle = math.Pi / 2
	}
	self.AimAngle = normalizeAim(angle, self.FacingRight())
}

// fire shoots the first ready ability. It reports false when everything
// is cooling down.
func (p *pilot) fire(self, target *entity.Entity) bool {
	slot := self.FirstReadyAbility()
	if slot < 0 {
		return false
	}
	self.SelectAbility(slot)
	tx, ty := target.Center()
	return self.Shoot(entity.ShotContext{PointerX: tx, PointerY: ty, Rand: p.rng})
}

// face turns the body toward the target
func face(self, target *entity.Entity) {
	dx := target.X - self.X
	if dx > 0 {
		self.Facing = 1
	} else if dx < 0 {
		self.Facing = -1
	}
}

// directAngle points from the shooter's center at the target's center
func directAngle(self, target *entity.Entity) float64 {
	sx, sy := self.Center()
	tx, ty := target.Center()
	return math.Atan2(ty-sy, tx-sx)
}

// normalizeAim maps an angle into the half-plane the body faces, the
// range the aim clamp works in.
func normalizeAim(angle float64, facingRight bool) float64 {
	if !facingRight && angle < 0 {
		return angle + 2*math.Pi
	}
	if facingRight && angle > math.Pi {
		return angle - 2*math.Pi
	}
	return angle
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
