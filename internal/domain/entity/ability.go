package entity

// AbilityKind is the closed set of attacks and instant effects
type AbilityKind int

const (
	KindBolt AbilityKind = iota
	KindArrow
	KindSpear
	KindSilverArrow
	KindFireball
	KindDragonBreath
	KindHeal
	KindTeleport
)

var kindNames = [...]string{
	KindBolt:         "bolt",
	KindArrow:        "arrow",
	KindSpear:        "spear",
	KindSilverArrow:  "silver_arrow",
	KindFireball:     "fireball",
	KindDragonBreath: "dragon_breath",
	KindHeal:         "heal",
	KindTeleport:     "teleport",
}

// String returns the config name of the kind
func (k AbilityKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseAbilityKind converts a config name to an AbilityKind
func ParseAbilityKind(name string) (AbilityKind, bool) {
	for i, n := range kindNames {
		if n == name {
			return AbilityKind(i), true
		}
	}
	return KindBolt, false
}

// Instant reports whether the kind applies its effect without spawning a projectile
func (k AbilityKind) Instant() bool {
	return k == KindHeal || k == KindTeleport
}

// AbilitySpec is the behavior record for one ability kind.
// Zero values disable the corresponding behavior.
type AbilitySpec struct {
	Kind AbilityKind

	Speed  float64
	Width  float64
	Height float64
	Damage int // 0 uses the owner's damage

	Gravity    float64 // added to VY every tick before moving
	Inaccuracy float64 // total spread in radians applied once at spawn
	Jitter     float64 // total per-axis wobble applied every tick
	MaxTravel  float64 // path length after which the projectile fizzles

	Knockback      float64
	KnockbackScale float64
	KnockbackLift  float64

	FalloffRange float64
	FalloffFloor float64

	Status      StatusType
	StatusTurns int

	BossMultiplier  float64
	OtherMultiplier float64

	HealPercent float64
	Cooldown    int // turns
}

// AbilitySlot is an ability in an entity's loadout with its cooldown state
type AbilitySlot struct {
	Spec      AbilitySpec
	Remaining int
}

// Ready reports whether the slot can be used this turn
func (s *AbilitySlot) Ready() bool {
	return s.Remaining <= 0
}

func (s *AbilitySlot) tick() {
	if s.Remaining > 0 {
		s.Remaining--
	}
}
