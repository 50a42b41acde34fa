package entity

import "math"

// Rand is the source of randomness used for spread and jitter
type Rand interface {
	Float64() float64
}

// Projectile is a live attack in flight. X and Y are its center.
type Projectile struct {
	Spec  AbilitySpec
	Owner *Entity

	X, Y   float64
	VX, VY float64
	Angle  float64

	StartX, StartY float64
	Traveled       float64

	Damage int
	Active bool
}

// NewProjectile launches a projectile from (x, y) along angle.
// Inaccuracy is applied once here.
func NewProjectile(owner *Entity, spec AbilitySpec, x, y, angle float64, rng Rand) *Projectile {
	if spec.Inaccuracy > 0 && rng != nil {
		angle += (rng.Float64() - 0.5) * spec.Inaccuracy
	}

	damage := spec.Damage
	if damage == 0 && owner != nil {
		damage = owner.Damage
	}

	return &Projectile{
		Spec:   spec,
		Owner:  owner,
		X:      x,
		Y:      y,
		VX:     math.Cos(angle) * spec.Speed,
		VY:     math.Sin(angle) * spec.Speed,
		Angle:  angle,
		StartX: x,
		StartY: y,
		Damage: damage,
		Active: true,
	}
}

// Kind returns the projectile's ability kind
func (p *Projectile) Kind() AbilityKind {
	return p.Spec.Kind
}

// Bounds returns the hitbox centered on the projectile
func (p *Projectile) Bounds() Rect {
	return Rect{
		X: p.X - p.Spec.Width/2,
		Y: p.Y - p.Spec.Height/2,
		W: p.Spec.Width,
		H: p.Spec.Height,
	}
}

// DistanceFromStart returns the straight-line distance from the spawn point
func (p *Projectile) DistanceFromStart() float64 {
	return math.Hypot(p.X-p.StartX, p.Y-p.StartY)
}

// UpdatePhysics advances the projectile one tick
func (p *Projectile) UpdatePhysics(rng Rand) {
	if !p.Active {
		return
	}

	if p.Spec.Gravity != 0 {
		p.VY += p.Spec.Gravity
	}
	p.X += p.VX
	p.Y += p.VY
	if p.Spec.Gravity != 0 {
		p.Angle = math.Atan2(p.VY, p.VX)
	}

	if p.Spec.Jitter > 0 && rng != nil {
		p.X += p.Spec.Jitter * (rng.Float64() - 0.5)
		p.Y += p.Spec.Jitter * (rng.Float64() - 0.5)
	}

	if p.Spec.MaxTravel > 0 {
		p.Traveled += math.Hypot(p.VX, p.VY)
		if p.Traveled >= p.Spec.MaxTravel {
			p.Active = false
		}
	}
}
