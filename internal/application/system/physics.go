package system

import (
	"math"

	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Axis selects which axis a collision pass resolves
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// PhysicsSystem moves bodies through the tile map and resolves overlaps
type PhysicsSystem struct {
	config *config.PhysicsConfig
	stage  *entity.Stage
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		stage:  stage,
	}
}

// Stage returns the map the system collides against
func (s *PhysicsSystem) Stage() *entity.Stage {
	return s.stage
}

// ResolveCollision pushes the entity out of every solid tile it overlaps on
// one axis. Touching a hazard tile kills the entity and stops the pass.
func (s *PhysicsSystem) ResolveCollision(e *entity.Entity, axis Axis) {
	ts := float64(s.stage.TileSize)
	inset := s.config.World.CollisionInset

	startCol := int(math.Floor(e.X / ts))
	endCol := int(math.Floor((e.X + e.Width - inset) / ts))
	startRow := int(math.Floor(e.Y / ts))
	endRow := int(math.Floor((e.Y + e.Height - inset) / ts))

	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			tile := s.stage.GetTile(col, row)
			if tile.Hazard() {
				e.Kill()
				return
			}
			if !tile.Solid() {
				continue
			}

			if axis == AxisX {
				if e.X < float64(col)*ts {
					e.X = float64(col)*ts - e.Width
				} else {
					e.X = float64(col+1) * ts
				}
				continue
			}

			if e.DY > 0 {
				e.Y = float64(row)*ts - e.Height
				e.DY = 0
				e.Grounded = true
			} else if e.DY < 0 {
				e.Y = float64(row+1) * ts
				e.DY = 0
			}
		}
	}
}

// ApplyInertia carries knockback velocity and decays it with friction
func (s *PhysicsSystem) ApplyInertia(e *entity.Entity) {
	if math.Abs(e.VX) <= s.config.Movement.InertiaEpsilon {
		e.VX = 0
		return
	}
	e.X += e.VX
	e.VX *= s.config.Movement.Friction
	s.ResolveCollision(e, AxisX)
}

// Fall applies one tick of gravity with vertical collision and the floor clamp
func (s *PhysicsSystem) Fall(e *entity.Entity) {
	e.DY += s.config.World.Gravity
	e.Y += e.DY

	e.Grounded = false
	s.ResolveCollision(e, AxisY)

	floor := s.stage.PixelHeight()
	if e.Y+e.Height > floor {
		e.Y = floor - e.Height
		e.DY = 0
		e.Grounded = true
	}
}

// Walk applies directional input, jumping and gravity. Horizontal travel is
// clipped to limit. It returns the horizontal distance requested this tick.
func (s *PhysicsSystem) Walk(e *entity.Entity, in InputSnapshot, limit float64) float64 {
	dx := 0.0
	if in.Left {
		dx = -e.Speed
		e.Facing = -1
	}
	if in.Right {
		dx = e.Speed
		e.Facing = 1
	}
	if math.Abs(dx) > limit {
		dx = math.Copysign(math.Max(limit, 0), dx)
	}

	e.X += dx
	s.ResolveCollision(e, AxisX)

	if (in.Up || in.Jump) && e.Grounded {
		e.DY = -e.JumpStrength
		e.Grounded = false
	}

	s.Fall(e)
	return math.Abs(dx)
}

// Settled reports whether the body needs no physics update this tick
func (s *PhysicsSystem) Settled(e *entity.Entity) bool {
	return e.Grounded && math.Abs(e.VX) <= s.config.Movement.InertiaEpsilon
}
