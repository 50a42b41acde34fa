package config

// PhysicsConfig is the root config for physics.yaml
type PhysicsConfig struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Movement MovementConfig `yaml:"movement"`
	Aim      AimConfig      `yaml:"aim"`
	Status   StatusConfig   `yaml:"status"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screenWidth"`
	ScreenHeight int    `yaml:"screenHeight"`
	Framerate    int    `yaml:"framerate"`
	Title        string `yaml:"title"`
	// TransitionTicks is how long the level banner stays up before entities spawn.
	TransitionTicks int `yaml:"transitionTicks"`
}

type WorldConfig struct {
	TileSize int     `yaml:"tileSize"`
	Gravity  float64 `yaml:"gravity"`
	// CollisionInset shrinks the far edge of a body when picking overlapped cells.
	CollisionInset float64 `yaml:"collisionInset"`
}

type MovementConfig struct {
	Speed          float64 `yaml:"speed"`
	JumpStrength   float64 `yaml:"jumpStrength"`
	Friction       float64 `yaml:"friction"`
	InertiaEpsilon float64 `yaml:"inertiaEpsilon"`
}

type AimConfig struct {
	RotationSpeed float64 `yaml:"rotationSpeed"` // radians per tick
	MuzzleDivisor float64 `yaml:"muzzleDivisor"` // spawn offset = width / divisor
}

type StatusConfig struct {
	BurnPercent float64 `yaml:"burnPercent"`
}

// AbilityConfig describes one ability kind in abilities.yaml
type AbilityConfig struct {
	Speed           float64 `yaml:"speed"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Damage          int     `yaml:"damage"` // 0 uses the owner's damage
	Gravity         float64 `yaml:"gravity"`
	Knockback       float64 `yaml:"knockback"`
	KnockbackScale  float64 `yaml:"knockbackScale"`
	KnockbackLift   float64 `yaml:"knockbackLift"`
	Inaccuracy      float64 `yaml:"inaccuracy"`
	Jitter          float64 `yaml:"jitter"`
	MaxTravel       float64 `yaml:"maxTravel"`
	FalloffRange    float64 `yaml:"falloffRange"`
	FalloffFloor    float64 `yaml:"falloffFloor"`
	Status          string  `yaml:"status"`
	StatusTurns     int     `yaml:"statusTurns"`
	BossMultiplier  float64 `yaml:"bossMultiplier"`
	OtherMultiplier float64 `yaml:"otherMultiplier"`
	HealPercent     float64 `yaml:"healPercent"`
	Cooldown        int     `yaml:"cooldown"`
	Color           []uint8 `yaml:"color"`
}

// AbilitiesConfig is the root config for abilities.yaml
type AbilitiesConfig struct {
	Abilities map[string]AbilityConfig `yaml:"abilities"`
}

// ClassConfig is a character archetype: stats, loadout and default strategy
type ClassConfig struct {
	DisplayName  string   `yaml:"displayName"`
	MaxHealth    int      `yaml:"maxHealth"`
	Damage       int      `yaml:"damage"`
	Speed        float64  `yaml:"speed"`        // 0 uses movement.speed
	JumpStrength float64  `yaml:"jumpStrength"` // 0 uses movement.jumpStrength
	MaxMovement  float64  `yaml:"maxMovement"`
	Width        float64  `yaml:"width"`
	Height       float64  `yaml:"height"`
	Boss         bool     `yaml:"boss"`
	Abilities    []string `yaml:"abilities"`
	Strategy     string   `yaml:"strategy"`
	Color        []uint8  `yaml:"color"`
}

// ClassesConfig is the root config for classes.yaml
type ClassesConfig struct {
	Playable []string               `yaml:"playable"`
	Classes  map[string]ClassConfig `yaml:"classes"`
}

// SensorConfig tunes the AI lookahead and friendly-fire raycast
type SensorConfig struct {
	Lookahead    float64 `yaml:"lookahead"`
	PitDepth     int     `yaml:"pitDepth"`
	RayStart     float64 `yaml:"rayStart"`
	RayStep      float64 `yaml:"rayStep"`
	RayRange     float64 `yaml:"rayRange"`
	SafetyMargin float64 `yaml:"safetyMargin"`
}

type AggressiveConfig struct {
	WaitTicks        int     `yaml:"waitTicks"`
	MoveTicks        int     `yaml:"moveTicks"`
	FireTicks        int     `yaml:"fireTicks"`
	ApproachDistance float64 `yaml:"approachDistance"`
	HopChance        float64 `yaml:"hopChance"`
}

type TacticalConfig struct {
	WaitTicks      int     `yaml:"waitTicks"`
	MoveTicks      int     `yaml:"moveTicks"`
	FireTicks      int     `yaml:"fireTicks"`
	PreferredRange float64 `yaml:"preferredRange"`
	RangeTolerance float64 `yaml:"rangeTolerance"`
	DropFactor     float64 `yaml:"dropFactor"`
	StallSpeed     float64 `yaml:"stallSpeed"`
}

type StationaryConfig struct {
	FireTicks int `yaml:"fireTicks"`
}

// AIConfig is the root config for ai.yaml
type AIConfig struct {
	Sensors    SensorConfig     `yaml:"sensors"`
	Aggressive AggressiveConfig `yaml:"aggressive"`
	Tactical   TacticalConfig   `yaml:"tactical"`
	Stationary StationaryConfig `yaml:"stationary"`
}

type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type EnemySpawnConfig struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// LevelConfig is one campaign level. Map rows are strings of tile digits.
type LevelConfig struct {
	Name        string             `yaml:"name"`
	Map         []string           `yaml:"map"`
	PlayerSpawn PositionConfig     `yaml:"playerSpawn"`
	Enemies     []EnemySpawnConfig `yaml:"enemies"`
}

// LevelsConfig is the root config for levels.yaml
type LevelsConfig struct {
	Levels []LevelConfig `yaml:"levels"`
}
