package system

import (
	"math"

	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Simulator runs one tick of an entity's turn logic on top of the physics
// and combat systems.
type Simulator struct {
	physics  *PhysicsSystem
	combat   *CombatSystem
	aimSpeed float64
}

// NewSimulator creates a simulator
func NewSimulator(cfg *config.PhysicsConfig, physics *PhysicsSystem, combat *CombatSystem) *Simulator {
	return &Simulator{
		physics:  physics,
		combat:   combat,
		aimSpeed: cfg.Aim.RotationSpeed,
	}
}

// Physics returns the underlying physics system
func (s *Simulator) Physics() *PhysicsSystem {
	return s.physics
}

// Combat returns the underlying combat system
func (s *Simulator) Combat() *CombatSystem {
	return s.combat
}

// Move advances an entity one tick: inertia, then aiming or bounded
// walking or plain gravity depending on its turn state, then its
// projectiles. Using up the movement budget forces aim mode.
func (s *Simulator) Move(e *entity.Entity, in InputSnapshot, entities []*entity.Entity) {
	s.step(e, in)
	s.combat.UpdateProjectiles(e, entities)
}

// Settle is the update for entities whose turn it is not. Bodies at rest
// are left alone; projectiles always advance.
func (s *Simulator) Settle(e *entity.Entity, entities []*entity.Entity) {
	if e.Alive() && !s.physics.Settled(e) {
		s.step(e, InputSnapshot{})
	}
	s.combat.UpdateProjectiles(e, entities)
}

func (s *Simulator) step(e *entity.Entity, in InputSnapshot) {
	s.physics.ApplyInertia(e)

	switch {
	case e.IsAiming():
		s.Aim(e, in)
		s.physics.Fall(e)
	case e.State() == entity.StateMoving && e.CanMove:
		e.DistTraveled += s.physics.Walk(e, in, e.RemainingMovement())
		if e.DistTraveled >= e.MaxMovement {
			e.CanMove = false
			e.ToggleAim()
		}
	default:
		s.physics.Fall(e)
	}
}

// Aim rotates the aim angle. Left and right set facing and snap the angle
// level to that side; up and down rotate within the facing half-plane.
func (s *Simulator) Aim(e *entity.Entity, in InputSnapshot) {
	if in.Left {
		e.Facing = -1
		e.AimAngle = math.Pi
	}
	if in.Right {
		e.Facing = 1
		e.AimAngle = 0
	}

	dir := float64(e.Facing)
	if in.Up {
		e.AimAngle -= s.aimSpeed * dir
	}
	if in.Down {
		e.AimAngle += s.aimSpeed * dir
	}

	if e.FacingRight() {
		e.AimAngle = clamp(e.AimAngle, -math.Pi/2, math.Pi/2)
	} else {
		e.AimAngle = clamp(e.AimAngle, math.Pi/2, 3*math.Pi/2)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
