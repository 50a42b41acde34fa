package entity

// Body is the physical part of an entity.
// Position is the top-left corner in pixels.
type Body struct {
	X, Y          float64
	Width, Height float64

	VX float64 // horizontal inertia from knockback, decays with friction
	DY float64 // vertical velocity, positive is down

	Grounded bool
	Facing   int // +1 right, -1 left
}

// Bounds returns the body rectangle
func (b *Body) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Center returns the body center point
func (b *Body) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// FacingRight reports whether the body faces +x
func (b *Body) FacingRight() bool {
	return b.Facing >= 0
}

// SetPos moves the body so its top-left corner is at (x, y)
func (b *Body) SetPos(x, y float64) {
	b.X = x
	b.Y = y
}

// ApplyKnockback adds an impulse and lifts the body off the ground
func (b *Body) ApplyKnockback(fx, fy float64) {
	b.VX += fx
	b.DY += fy
	b.Grounded = false
}
