package config

// DefaultPhysics returns the built-in physics tuning.
func DefaultPhysics() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:     800,
			ScreenHeight:    600,
			Framerate:       60,
			Title:           "Skirmish",
			TransitionTicks: 120,
		},
		World: WorldConfig{
			TileSize:       50,
			Gravity:        0.8,
			CollisionInset: 0.1,
		},
		Movement: MovementConfig{
			Speed:          5,
			JumpStrength:   17,
			Friction:       0.9,
			InertiaEpsilon: 0.1,
		},
		Aim: AimConfig{
			RotationSpeed: 0.05,
			MuzzleDivisor: 1.5,
		},
		Status: StatusConfig{
			BurnPercent: 0.1,
		},
	}
}

// DefaultAbilities returns the built-in ability table.
func DefaultAbilities() *AbilitiesConfig {
	return &AbilitiesConfig{
		Abilities: map[string]AbilityConfig{
			"bolt": {Speed: 10, Width: 10, Height: 10},
			"arrow": {
				Speed: 15, Width: 40, Height: 4, Damage: 25, Gravity: 0.25,
			},
			"spear": {
				Speed: 15, Width: 50, Height: 5, Damage: 35, Gravity: 0.25,
			},
			"silver_arrow": {
				Speed: 15, Width: 40, Height: 4, Damage: 35, Gravity: 0.25,
				Knockback: 1, KnockbackScale: 0.2, KnockbackLift: 3,
				BossMultiplier: 2, OtherMultiplier: 0.5, Cooldown: 1,
			},
			"fireball": {
				Speed: 8, Width: 16, Height: 16, Damage: 40,
				Knockback: 4, KnockbackScale: 0.5, KnockbackLift: 5,
				Inaccuracy: 0.3, Jitter: 4, MaxTravel: 200, Cooldown: 2,
			},
			"dragon_breath": {
				Speed: 9, Width: 20, Height: 20, Damage: 55,
				FalloffRange: 250, FalloffFloor: 0.2,
				Status: "burning", StatusTurns: 3, Cooldown: 4,
			},
			"heal":     {HealPercent: 0.2, Cooldown: 3},
			"teleport": {Cooldown: 5},
		},
	}
}

// DefaultClasses returns the built-in character archetypes.
func DefaultClasses() *ClassesConfig {
	return &ClassesConfig{
		Playable: []string{"archer", "mage"},
		Classes: map[string]ClassConfig{
			"archer": {
				DisplayName: "Archer", MaxHealth: 100, Damage: 30, MaxMovement: 400,
				Width: 50, Height: 100, Abilities: []string{"arrow", "silver_arrow", "heal"},
			},
			"mage": {
				DisplayName: "Mage", MaxHealth: 80, Damage: 30, MaxMovement: 200,
				Width: 50, Height: 100, Abilities: []string{"bolt", "fireball", "teleport", "heal"},
			},
			"bot": {
				DisplayName: "Bot", MaxHealth: 60, Damage: 15, MaxMovement: 200,
				Width: 50, Height: 100, Abilities: []string{"arrow"}, Strategy: StrategyAggressive,
			},
			"goblin": {
				DisplayName: "Goblin", MaxHealth: 60, Damage: 15, MaxMovement: 200,
				Width: 50, Height: 100, Abilities: []string{"spear"}, Strategy: StrategyTactical,
			},
			"dragon": {
				DisplayName: "Dragon", MaxHealth: 150, Damage: 30,
				Width: 50, Height: 100, Boss: true,
				Abilities: []string{"dragon_breath", "bolt"}, Strategy: StrategyStationary,
			},
		},
	}
}

// DefaultAI returns the built-in strategy tuning.
func DefaultAI() *AIConfig {
	return &AIConfig{
		Sensors: SensorConfig{
			Lookahead:    20,
			PitDepth:     8,
			RayStart:     10,
			RayStep:      20,
			RayRange:     800,
			SafetyMargin: 60,
		},
		Aggressive: AggressiveConfig{
			WaitTicks:        60,
			MoveTicks:        120,
			FireTicks:        160,
			ApproachDistance: 20,
			HopChance:        0.02,
		},
		Tactical: TacticalConfig{
			WaitTicks:      60,
			MoveTicks:      120,
			FireTicks:      180,
			PreferredRange: 350,
			RangeTolerance: 50,
			DropFactor:     0.4,
			StallSpeed:     0.5,
		},
		Stationary: StationaryConfig{
			FireTicks: 80,
		},
	}
}

// DefaultLevels returns a single open arena with one bot.
func DefaultLevels() *LevelsConfig {
	return &LevelsConfig{
		Levels: []LevelConfig{
			{
				Name:        "Arena",
				PlayerSpawn: PositionConfig{X: 60, Y: 100},
				Enemies:     []EnemySpawnConfig{{Type: "bot", X: 600, Y: 100}},
				Map: []string{
					"1111111111111111",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1000000000000001",
					"1111111111111111",
				},
			},
		},
	}
}

// Default bundles the built-in configs.
func Default() *GameConfig {
	return &GameConfig{
		Physics:   DefaultPhysics(),
		Abilities: DefaultAbilities(),
		Classes:   DefaultClasses(),
		AI:        DefaultAI(),
		Levels:    DefaultLevels(),
	}
}
