package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/domain/entity"
)

// Impact is the resolved outcome of a projectile hitting an entity
type Impact struct {
	Source     *entity.Entity
	Target     *entity.Entity
	Kind       entity.AbilityKind
	Damage     int
	KnockbackX float64
	KnockbackY float64
	Status     entity.StatusEffect
}

// CombatSystem advances projectiles and applies their hits
type CombatSystem struct {
	stage  *entity.Stage
	rng    entity.Rand
	logger *zap.Logger

	// OnHit is called after an impact has been applied
	OnHit func(Impact)
}

// NewCombatSystem creates a new combat system. rng drives fireball
// jitter and may be nil for fully deterministic flight.
func NewCombatSystem(stage *entity.Stage, rng entity.Rand, logger *zap.Logger) *CombatSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatSystem{
		stage:  stage,
		rng:    rng,
		logger: logger,
	}
}

// UpdateProjectiles advances every live projectile owned by owner and
// drops the ones that ended this tick.
func (s *CombatSystem) UpdateProjectiles(owner *entity.Entity, entities []*entity.Entity) {
	for _, p := range owner.Projectiles {
		if p.Active {
			s.UpdateProjectile(p, entities)
		}
	}
	owner.CleanupProjectiles()
}

// UpdateProjectile moves a projectile one tick, then checks in order: map
// bounds, solid tiles, and the first living entity other than the owner.
func (s *CombatSystem) UpdateProjectile(p *entity.Projectile, entities []*entity.Entity) {
	p.UpdatePhysics(s.rng)
	if !p.Active {
		return
	}

	if !s.stage.Contains(p.X, p.Y) {
		p.Active = false
		return
	}

	if s.stage.TileAt(p.X, p.Y).Solid() {
		p.Active = false
		return
	}

	box := p.Bounds()
	for _, target := range entities {
		if target == p.Owner || !target.Alive() {
			continue
		}
		if box.Overlaps(target.Bounds()) {
			s.Apply(ResolveImpact(p, target))
			p.Active = false
			return
		}
	}
}

// ResolveImpact computes what a projectile does to a target without
// applying it.
func ResolveImpact(p *entity.Projectile, target *entity.Entity) Impact {
	spec := p.Spec
	impact := Impact{
		Source: p.Owner,
		Target: target,
		Kind:   spec.Kind,
		Damage: p.Damage,
	}

	if spec.FalloffRange > 0 {
		factor := math.Max(spec.FalloffFloor, 1-p.DistanceFromStart()/spec.FalloffRange)
		impact.Damage = int(math.Floor(float64(p.Damage) * factor))
	}

	if spec.BossMultiplier > 0 {
		mult := spec.OtherMultiplier
		if target.Boss {
			mult = spec.BossMultiplier
		}
		impact.Damage = int(math.Floor(float64(impact.Damage) * mult))
	}

	if spec.Knockback > 0 {
		impact.KnockbackX = p.VX * spec.KnockbackScale * spec.Knockback
		impact.KnockbackY = -spec.KnockbackLift
	}

	if spec.Status != entity.StatusNone {
		impact.Status = entity.StatusEffect{Type: spec.Status, Duration: spec.StatusTurns}
	}

	return impact
}

// Apply applies an impact to its target
func (s *CombatSystem) Apply(impact Impact) {
	target := impact.Target
	target.TakeDamage(impact.Damage)
	if impact.KnockbackX != 0 || impact.KnockbackY != 0 {
		target.ApplyKnockback(impact.KnockbackX, impact.KnockbackY)
	}
	target.ApplyStatus(impact.Status)

	s.logger.Debug("projectile hit",
		zap.String("kind", impact.Kind.String()),
		zap.String("target", target.Class),
		zap.Int("damage", impact.Damage),
		zap.Int("health", target.Health),
	)

	if s.OnHit != nil {
		s.OnHit(impact)
	}
}
