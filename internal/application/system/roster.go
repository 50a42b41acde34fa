package system

import (
	"fmt"

	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// BuildAbilitySpec converts a named ability config into its behavior record
func BuildAbilitySpec(name string, cfg config.AbilityConfig) (entity.AbilitySpec, error) {
	kind, ok := entity.ParseAbilityKind(name)
	if !ok {
		return entity.AbilitySpec{}, fmt.Errorf("%w: %s", config.ErrUnknownAbility, name)
	}
	status, ok := entity.ParseStatus(cfg.Status)
	if !ok {
		return entity.AbilitySpec{}, fmt.Errorf("ability %s: unknown status %q", name, cfg.Status)
	}

	return entity.AbilitySpec{
		Kind:            kind,
		Speed:           cfg.Speed,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Damage:          cfg.Damage,
		Gravity:         cfg.Gravity,
		Inaccuracy:      cfg.Inaccuracy,
		Jitter:          cfg.Jitter,
		MaxTravel:       cfg.MaxTravel,
		Knockback:       cfg.Knockback,
		KnockbackScale:  cfg.KnockbackScale,
		KnockbackLift:   cfg.KnockbackLift,
		FalloffRange:    cfg.FalloffRange,
		FalloffFloor:    cfg.FalloffFloor,
		Status:          status,
		StatusTurns:     cfg.StatusTurns,
		BossMultiplier:  cfg.BossMultiplier,
		OtherMultiplier: cfg.OtherMultiplier,
		HealPercent:     cfg.HealPercent,
		Cooldown:        cfg.Cooldown,
	}, nil
}

// BuildClassDef resolves a class name into an entity class definition.
// Unset speed and jump strength fall back to the physics defaults.
func BuildClassDef(cfg *config.GameConfig, name string) (entity.ClassDef, error) {
	class, ok := cfg.Classes.Classes[name]
	if !ok {
		return entity.ClassDef{}, fmt.Errorf("%w: %s", config.ErrUnknownClass, name)
	}

	specs := make([]entity.AbilitySpec, 0, len(class.Abilities))
	for _, abilityName := range class.Abilities {
		abilityCfg, ok := cfg.Abilities.Abilities[abilityName]
		if !ok {
			return entity.ClassDef{}, fmt.Errorf("class %s: %w: %s", name, config.ErrUnknownAbility, abilityName)
		}
		spec, err := BuildAbilitySpec(abilityName, abilityCfg)
		if err != nil {
			return entity.ClassDef{}, fmt.Errorf("class %s: %w", name, err)
		}
		specs = append(specs, spec)
	}

	speed := class.Speed
	if speed == 0 {
		speed = cfg.Physics.Movement.Speed
	}
	jump := class.JumpStrength
	if jump == 0 {
		jump = cfg.Physics.Movement.JumpStrength
	}
	width, height := class.Width, class.Height
	if width == 0 {
		width = float64(cfg.Physics.World.TileSize)
	}
	if height == 0 {
		height = float64(2 * cfg.Physics.World.TileSize)
	}

	return entity.ClassDef{
		Name:         name,
		MaxHealth:    class.MaxHealth,
		Damage:       class.Damage,
		Speed:        speed,
		JumpStrength: jump,
		MaxMovement:  class.MaxMovement,
		Width:        width,
		Height:       height,
		Boss:         class.Boss,
		Abilities:    specs,
	}, nil
}

// SpawnEntity builds an entity of the named class at (x, y)
func SpawnEntity(cfg *config.GameConfig, class string, x, y float64) (*entity.Entity, error) {
	def, err := BuildClassDef(cfg, class)
	if err != nil {
		return nil, err
	}
	e := entity.NewEntity(def, x, y)
	if d := cfg.Physics.Aim.MuzzleDivisor; d > 0 {
		e.MuzzleDivisor = d
	}
	if p := cfg.Physics.Status.BurnPercent; p > 0 {
		e.BurnPercent = p
	}
	return e, nil
}
