package entity

import (
	"context"
	"errors"
	"math"

	"github.com/looplab/fsm"
)

// Turn states
const (
	StateIdle   = "idle"
	StateMoving = "moving"
	StateAiming = "aiming"
	StateFired  = "fired"
)

// Turn events
const (
	EventStartTurn = "start_turn"
	EventAim       = "aim"
	EventLower     = "lower"
	EventFire      = "fire"
	EventEndTurn   = "end_turn"
)

const (
	DefaultMuzzleDivisor = 1.5
	DefaultBurnPercent   = 0.1
)

// Strategy decides what an AI-controlled entity does on its turn.
// Update runs once per tick while the entity is active and returns true
// when the turn is over.
type Strategy interface {
	Update(self *Entity, stage *Stage, entities []*Entity) bool
}

// ClassDef is the data an entity is built from
type ClassDef struct {
	Name         string
	MaxHealth    int
	Damage       int
	Speed        float64
	JumpStrength float64
	MaxMovement  float64
	Width        float64
	Height       float64
	Boss         bool
	Abilities    []AbilitySpec
}

// Entity is any living actor, human or AI controlled
type Entity struct {
	Body

	Class string
	Boss  bool

	Health    int
	MaxHealth int
	Damage    int

	Speed        float64
	JumpStrength float64

	MaxMovement  float64
	DistTraveled float64
	CanMove      bool

	AimAngle float64

	Abilities []AbilitySlot
	Selected  int

	Projectiles []*Projectile
	Statuses    []StatusEffect

	// Strategy is nil for the human player
	Strategy Strategy
	// Timer counts AI ticks within the current turn
	Timer int

	MuzzleDivisor float64
	BurnPercent   float64

	turn *fsm.FSM
}

// NewEntity creates an entity at (x, y) from a class definition.
// A class without abilities gets a plain bolt.
func NewEntity(def ClassDef, x, y float64) *Entity {
	slots := make([]AbilitySlot, 0, len(def.Abilities))
	for _, spec := range def.Abilities {
		slots = append(slots, AbilitySlot{Spec: spec})
	}
	if len(slots) == 0 {
		slots = append(slots, AbilitySlot{Spec: AbilitySpec{Kind: KindBolt, Speed: 10, Width: 10, Height: 10}})
	}

	return &Entity{
		Body: Body{
			X:      x,
			Y:      y,
			Width:  def.Width,
			Height: def.Height,
			Facing: 1,
		},
		Class:         def.Name,
		Boss:          def.Boss,
		Health:        def.MaxHealth,
		MaxHealth:     def.MaxHealth,
		Damage:        def.Damage,
		Speed:         def.Speed,
		JumpStrength:  def.JumpStrength,
		MaxMovement:   def.MaxMovement,
		Abilities:     slots,
		MuzzleDivisor: DefaultMuzzleDivisor,
		BurnPercent:   DefaultBurnPercent,
		turn:          newTurnFSM(),
	}
}

func newTurnFSM() *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventStartTurn, Src: []string{StateIdle, StateMoving, StateAiming, StateFired}, Dst: StateMoving},
			{Name: EventAim, Src: []string{StateMoving}, Dst: StateAiming},
			{Name: EventLower, Src: []string{StateAiming}, Dst: StateMoving},
			{Name: EventFire, Src: []string{StateMoving, StateAiming}, Dst: StateFired},
			{Name: EventEndTurn, Src: []string{StateMoving, StateAiming, StateFired}, Dst: StateIdle},
		},
		fsm.Callbacks{},
	)
}

// trigger fires a turn event. Events that are not valid from the current
// state are ignored.
func (e *Entity) trigger(event string) bool {
	if !e.turn.Can(event) {
		return false
	}
	err := e.turn.Event(context.Background(), event)
	if err == nil {
		return true
	}
	var noTransition fsm.NoTransitionError
	return errors.As(err, &noTransition)
}

// State returns the current turn state
func (e *Entity) State() string {
	return e.turn.Current()
}

// TurnActive reports whether it is this entity's turn
func (e *Entity) TurnActive() bool {
	return !e.turn.Is(StateIdle)
}

// IsAiming reports whether the entity is in aim mode
func (e *Entity) IsAiming() bool {
	return e.turn.Is(StateAiming)
}

// HasFired reports whether the entity already used its action this turn
func (e *Entity) HasFired() bool {
	return e.turn.Is(StateFired)
}

// Alive reports whether the entity has health left
func (e *Entity) Alive() bool {
	return e.Health > 0
}

// IsAI reports whether a strategy controls the entity
func (e *Entity) IsAI() bool {
	return e.Strategy != nil
}

// RemainingMovement returns how much of the movement budget is left this turn
func (e *Entity) RemainingMovement() float64 {
	return math.Max(0, e.MaxMovement-e.DistTraveled)
}

// StartTurn opens the entity's turn. Cooldowns tick down and statuses
// apply before control is handed over, so burning can kill here.
func (e *Entity) StartTurn() {
	e.trigger(EventStartTurn)
	e.DistTraveled = 0
	e.CanMove = true
	e.Timer = 0

	for i := range e.Abilities {
		e.Abilities[i].tick()
	}
	e.processStatuses()
}

// EndTurn closes the entity's turn
func (e *Entity) EndTurn() {
	e.trigger(EventEndTurn)
	e.CanMove = false
}

func (e *Entity) processStatuses() {
	kept := e.Statuses[:0]
	for _, s := range e.Statuses {
		if s.Type == StatusBurning {
			e.TakeDamage(int(math.Floor(float64(e.MaxHealth) * e.BurnPercent)))
		}
		s.Duration--
		if s.Duration > 0 {
			kept = append(kept, s)
		}
	}
	e.Statuses = kept
}

// ApplyStatus adds a status or refreshes the duration of an existing one
func (e *Entity) ApplyStatus(s StatusEffect) {
	if s.Type == StatusNone || s.Duration <= 0 {
		return
	}
	for i := range e.Statuses {
		if e.Statuses[i].Type == s.Type {
			e.Statuses[i].Duration = s.Duration
			return
		}
	}
	e.Statuses = append(e.Statuses, s)
}

// HasStatus reports whether the status is currently applied
func (e *Entity) HasStatus(t StatusType) bool {
	for _, s := range e.Statuses {
		if s.Type == t {
			return true
		}
	}
	return false
}

// ToggleAim switches between moving and aiming. Entering aim snaps the
// angle to straight ahead.
func (e *Entity) ToggleAim() {
	switch e.State() {
	case StateMoving:
		if e.trigger(EventAim) {
			if e.FacingRight() {
				e.AimAngle = 0
			} else {
				e.AimAngle = math.Pi
			}
		}
	case StateAiming:
		e.trigger(EventLower)
	}
}

// TakeDamage lowers health, never below zero
func (e *Entity) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
}

// Heal raises health, never above MaxHealth
func (e *Entity) Heal(amount int) {
	if amount <= 0 || !e.Alive() {
		return
	}
	e.Health += amount
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
}

// Kill drops health to zero
func (e *Entity) Kill() {
	e.Health = 0
}

// SelectedSlot returns the selected ability slot, nil if the loadout is empty
func (e *Entity) SelectedSlot() *AbilitySlot {
	if e.Selected < 0 || e.Selected >= len(e.Abilities) {
		return nil
	}
	return &e.Abilities[e.Selected]
}

// SelectAbility selects a slot by index. Out of range indexes are ignored.
func (e *Entity) SelectAbility(i int) {
	if i >= 0 && i < len(e.Abilities) {
		e.Selected = i
	}
}

// CycleAbility moves the selection by delta, wrapping around
func (e *Entity) CycleAbility(delta int) {
	n := len(e.Abilities)
	if n == 0 {
		return
	}
	e.Selected = ((e.Selected+delta)%n + n) % n
}

// FirstReadyAbility returns the index of the first usable slot, or -1
func (e *Entity) FirstReadyAbility() int {
	for i := range e.Abilities {
		if e.Abilities[i].Ready() {
			return i
		}
	}
	return -1
}

// ShotContext carries what Shoot needs from outside the entity
type ShotContext struct {
	PointerX, PointerY float64
	Rand               Rand
}

// Shoot uses the selected ability. It does nothing and returns false when
// it is not this entity's turn, the action was already used, or the
// selected ability is cooling down.
func (e *Entity) Shoot(ctx ShotContext) bool {
	if !e.turn.Can(EventFire) {
		return false
	}
	slot := e.SelectedSlot()
	if slot == nil || !slot.Ready() {
		return false
	}

	spec := slot.Spec
	switch spec.Kind {
	case KindHeal:
		e.Heal(int(math.Floor(float64(e.MaxHealth) * spec.HealPercent)))
		e.Statuses = nil
	case KindTeleport:
		e.SetPos(ctx.PointerX-e.Width/2, ctx.PointerY-e.Height/2)
		e.VX = 0
		e.DY = 0
		e.Grounded = false
	default:
		angle := e.AimAngle
		if !e.IsAiming() {
			angle = 0
			if !e.FacingRight() {
				angle = math.Pi
			}
		}
		cx, cy := e.Center()
		offset := e.Width / e.MuzzleDivisor
		p := NewProjectile(e, spec, cx+math.Cos(angle)*offset, cy+math.Sin(angle)*offset, angle, ctx.Rand)
		e.Projectiles = append(e.Projectiles, p)
	}

	slot.Remaining = spec.Cooldown
	e.trigger(EventFire)
	return true
}

// CleanupProjectiles drops inactive projectiles
func (e *Entity) CleanupProjectiles() {
	kept := e.Projectiles[:0]
	for _, p := range e.Projectiles {
		if p.Active {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(e.Projectiles); i++ {
		e.Projectiles[i] = nil
	}
	e.Projectiles = kept
}

// ActiveProjectiles counts projectiles still in flight
func (e *Entity) ActiveProjectiles() int {
	n := 0
	for _, p := range e.Projectiles {
		if p.Active {
			n++
		}
	}
	return n
}
