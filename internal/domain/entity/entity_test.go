package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestClass(abilities ...AbilitySpec) ClassDef {
	return ClassDef{
		Name:         "archer",
		MaxHealth:    100,
		Damage:       30,
		Speed:        5,
		JumpStrength: 17,
		MaxMovement:  400,
		Width:        50,
		Height:       100,
		Abilities:    abilities,
	}
}

func createTestEntity(abilities ...AbilitySpec) *Entity {
	return NewEntity(createTestClass(abilities...), 100, 100)
}

func TestNewEntity(t *testing.T) {
	e := createTestEntity(arrowSpec())

	assert.Equal(t, "archer", e.Class)
	assert.Equal(t, 100, e.Health)
	assert.Equal(t, 100, e.MaxHealth)
	assert.Equal(t, 1, e.Facing)
	assert.Equal(t, StateIdle, e.State())
	assert.False(t, e.TurnActive())
	assert.False(t, e.IsAI())
	require.Len(t, e.Abilities, 1)
	assert.Equal(t, KindArrow, e.Abilities[0].Spec.Kind)
}

func TestNewEntity_DefaultBolt(t *testing.T) {
	e := createTestEntity()

	require.Len(t, e.Abilities, 1)
	assert.Equal(t, KindBolt, e.Abilities[0].Spec.Kind)
}

func TestEntity_TakeDamage(t *testing.T) {
	tests := []struct {
		name   string
		health int
		damage int
		want   int
	}{
		{"normal hit", 100, 30, 70},
		{"exact kill", 30, 30, 0},
		{"overkill clamps to zero", 10, 55, 0},
		{"negative ignored", 50, -10, 50},
		{"zero ignored", 50, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := createTestEntity()
			e.Health = tt.health

			e.TakeDamage(tt.damage)

			assert.Equal(t, tt.want, e.Health)
		})
	}
}

func TestEntity_Heal(t *testing.T) {
	e := createTestEntity()

	e.Health = 90
	e.Heal(20)
	assert.Equal(t, 100, e.Health, "heal clamps to max")

	e.Health = 0
	e.Heal(20)
	assert.Equal(t, 0, e.Health, "dead entities cannot be healed")
}

func TestEntity_StartTurn(t *testing.T) {
	e := createTestEntity()
	e.DistTraveled = 120
	e.CanMove = false
	e.Timer = 99

	e.StartTurn()

	assert.True(t, e.TurnActive())
	assert.Equal(t, StateMoving, e.State())
	assert.False(t, e.HasFired())
	assert.False(t, e.IsAiming())
	assert.Equal(t, 0.0, e.DistTraveled)
	assert.True(t, e.CanMove)
	assert.Equal(t, 0, e.Timer)
}

func TestEntity_StartTurn_Burning(t *testing.T) {
	e := createTestEntity()
	e.ApplyStatus(StatusEffect{Type: StatusBurning, Duration: 2})

	e.StartTurn()
	assert.Equal(t, 90, e.Health)
	assert.True(t, e.HasStatus(StatusBurning))

	e.EndTurn()
	e.StartTurn()
	assert.Equal(t, 80, e.Health)
	assert.False(t, e.HasStatus(StatusBurning), "expired after its last tick")

	e.EndTurn()
	e.StartTurn()
	assert.Equal(t, 80, e.Health)
}

func TestEntity_StartTurn_BurnCanKill(t *testing.T) {
	e := createTestEntity()
	e.Health = 5
	e.ApplyStatus(StatusEffect{Type: StatusBurning, Duration: 3})

	e.StartTurn()

	assert.Equal(t, 0, e.Health)
	assert.False(t, e.Alive())
}

func TestEntity_ApplyStatus_Refreshes(t *testing.T) {
	e := createTestEntity()

	e.ApplyStatus(StatusEffect{Type: StatusBurning, Duration: 1})
	e.ApplyStatus(StatusEffect{Type: StatusBurning, Duration: 3})
	e.ApplyStatus(StatusEffect{Type: StatusNone, Duration: 3})

	require.Len(t, e.Statuses, 1)
	assert.Equal(t, 3, e.Statuses[0].Duration)
}

func TestEntity_ToggleAim(t *testing.T) {
	t.Run("ignored outside own turn", func(t *testing.T) {
		e := createTestEntity()

		e.ToggleAim()

		assert.False(t, e.IsAiming())
		assert.Equal(t, StateIdle, e.State())
	})

	t.Run("snaps to facing direction", func(t *testing.T) {
		e := createTestEntity()
		e.AimAngle = 1.2
		e.StartTurn()

		e.ToggleAim()
		assert.True(t, e.IsAiming())
		assert.Equal(t, 0.0, e.AimAngle)

		e.ToggleAim()
		assert.False(t, e.IsAiming())
		assert.Equal(t, StateMoving, e.State())

		e.Facing = -1
		e.ToggleAim()
		assert.Equal(t, math.Pi, e.AimAngle)
	})

	t.Run("ignored after firing", func(t *testing.T) {
		e := createTestEntity(arrowSpec())
		e.StartTurn()
		require.True(t, e.Shoot(ShotContext{}))

		e.ToggleAim()

		assert.False(t, e.IsAiming())
		assert.True(t, e.HasFired())
	})
}

func TestEntity_Shoot(t *testing.T) {
	t.Run("not active", func(t *testing.T) {
		e := createTestEntity(arrowSpec())

		assert.False(t, e.Shoot(ShotContext{}))
		assert.Empty(t, e.Projectiles)
	})

	t.Run("straight ahead when not aiming", func(t *testing.T) {
		e := createTestEntity(arrowSpec())
		e.StartTurn()

		require.True(t, e.Shoot(ShotContext{}))

		require.Len(t, e.Projectiles, 1)
		p := e.Projectiles[0]
		cx, cy := e.Center()
		assert.InDelta(t, cx+50/1.5, p.X, 1e-9)
		assert.InDelta(t, cy, p.Y, 1e-9)
		assert.Greater(t, p.VX, 0.0)
		assert.Same(t, e, p.Owner)
		assert.True(t, e.HasFired())
		assert.False(t, e.IsAiming())
	})

	t.Run("facing left", func(t *testing.T) {
		e := createTestEntity(arrowSpec())
		e.Facing = -1
		e.StartTurn()

		require.True(t, e.Shoot(ShotContext{}))

		cx, _ := e.Center()
		assert.InDelta(t, cx-50/1.5, e.Projectiles[0].X, 1e-9)
		assert.Less(t, e.Projectiles[0].VX, 0.0)
	})

	t.Run("uses aim angle while aiming", func(t *testing.T) {
		e := createTestEntity(arrowSpec())
		e.StartTurn()
		e.ToggleAim()
		e.AimAngle = -math.Pi / 4

		require.True(t, e.Shoot(ShotContext{}))

		p := e.Projectiles[0]
		assert.Less(t, p.VY, 0.0, "negative angle shoots upward")
		assert.False(t, e.IsAiming())
	})

	t.Run("only once per turn", func(t *testing.T) {
		e := createTestEntity(arrowSpec())
		e.StartTurn()

		require.True(t, e.Shoot(ShotContext{}))
		assert.False(t, e.Shoot(ShotContext{}))
		assert.Len(t, e.Projectiles, 1)
	})
}

func TestEntity_Shoot_Cooldown(t *testing.T) {
	fireball := AbilitySpec{Kind: KindFireball, Speed: 8, Damage: 40, Cooldown: 2}
	e := createTestEntity(fireball)

	e.StartTurn()
	require.True(t, e.Shoot(ShotContext{Rand: fixedRand(0.5)}))
	e.EndTurn()

	e.StartTurn()
	assert.False(t, e.Abilities[0].Ready())
	assert.False(t, e.Shoot(ShotContext{Rand: fixedRand(0.5)}))
	e.EndTurn()

	e.StartTurn()
	assert.True(t, e.Abilities[0].Ready())
	assert.True(t, e.Shoot(ShotContext{Rand: fixedRand(0.5)}))
}

func TestEntity_Shoot_Heal(t *testing.T) {
	heal := AbilitySpec{Kind: KindHeal, HealPercent: 0.2, Cooldown: 3}
	e := createTestEntity(heal)
	e.Health = 50
	e.ApplyStatus(StatusEffect{Type: StatusBurning, Duration: 5})
	e.StartTurn()
	require.Equal(t, 40, e.Health)

	require.True(t, e.Shoot(ShotContext{}))

	assert.Equal(t, 60, e.Health)
	assert.Empty(t, e.Statuses)
	assert.Empty(t, e.Projectiles, "instant abilities spawn nothing")
	assert.True(t, e.HasFired())
	assert.Equal(t, 3, e.Abilities[0].Remaining)
}

func TestEntity_Shoot_Teleport(t *testing.T) {
	e := createTestEntity(AbilitySpec{Kind: KindTeleport, Cooldown: 5})
	e.VX = 3
	e.DY = 2
	e.Grounded = true
	e.StartTurn()

	require.True(t, e.Shoot(ShotContext{PointerX: 400, PointerY: 300}))

	assert.Equal(t, 375.0, e.X)
	assert.Equal(t, 250.0, e.Y)
	assert.Equal(t, 0.0, e.VX)
	assert.Equal(t, 0.0, e.DY)
	assert.False(t, e.Grounded)
	assert.Empty(t, e.Projectiles)
}

func TestEntity_CycleAbility(t *testing.T) {
	e := createTestEntity(
		arrowSpec(),
		AbilitySpec{Kind: KindSilverArrow},
		AbilitySpec{Kind: KindHeal},
	)

	e.CycleAbility(1)
	assert.Equal(t, 1, e.Selected)
	e.CycleAbility(2)
	assert.Equal(t, 0, e.Selected)
	e.CycleAbility(-1)
	assert.Equal(t, 2, e.Selected)

	e.SelectAbility(7)
	assert.Equal(t, 2, e.Selected)
	e.SelectAbility(0)
	assert.Equal(t, 0, e.Selected)
}

func TestEntity_FirstReadyAbility(t *testing.T) {
	e := createTestEntity(AbilitySpec{Kind: KindDragonBreath}, AbilitySpec{Kind: KindBolt})

	assert.Equal(t, 0, e.FirstReadyAbility())

	e.Abilities[0].Remaining = 2
	assert.Equal(t, 1, e.FirstReadyAbility())

	e.Abilities[1].Remaining = 1
	assert.Equal(t, -1, e.FirstReadyAbility())
}

func TestEntity_CleanupProjectiles(t *testing.T) {
	e := createTestEntity()
	a := NewProjectile(e, arrowSpec(), 0, 0, 0, nil)
	b := NewProjectile(e, arrowSpec(), 0, 0, 0, nil)
	b.Active = false
	e.Projectiles = []*Projectile{a, b}

	assert.Equal(t, 1, e.ActiveProjectiles())
	e.CleanupProjectiles()

	require.Len(t, e.Projectiles, 1)
	assert.Same(t, a, e.Projectiles[0])
}
