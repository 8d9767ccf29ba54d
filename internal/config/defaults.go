package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/segments.yaml
var defaultSegmentsYAML []byte

// DefaultRunnerConfig returns the built-in tunables.
// It mirrors defaults/runner.yaml and is used if the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:        960,
			Height:       540,
			GroundOffset: 70,
			SpawnMargin:  60,
			CullMargin:   40,
		},
		Player: PlayerConfig{
			X:                  170,
			Width:              170,
			Height:             240,
			JumpPower:          820,
			Gravity:            1800,
			JumpBuffer:         0.12,
			CoyoteTime:         0.12,
			AttackDuration:     0.35,
			AttackCooldown:     0.7,
			HurtDuration:       0.4,
			InvincibleDuration: 1.2,
			HitboxWidth:        0.6,
			HitboxHeight:       0.72,
		},
		Session: SessionConfig{
			MaxHealth:     3,
			MaxDelta:      0.05,
			RestartGuard:  0.5,
			ShakeDuration: 0.5,
			ToastDuration: 1.2,
		},
		Scoring: ScoringConfig{
			PaceBaseline:   220,
			PerSecond:      14,
			SmashBonus:     120,
			OrbBase:        80,
			OrbComboStep:   10,
			ComboMilestone: 6,
			FunMax:         100,
			FunSmash:       12,
			FunOrb:         6,
			FunHurt:        20,
			FunPerSecond:   4,
			FunComboRate:   0.35,
		},
		Speed: SpeedConfig{
			Base:        260,
			StartStep:   14,
			LevelStep:   16,
			ScoreFactor: 0.12,
			ScoreCap:    160,
			ComboFactor: 2,
			Scale:       1.0,
		},
		Levels: LevelsConfig{
			BaseLength: 2500,
			LengthStep: 400,
			DifficultyCaps: []DifficultyCap{
				{FromLevel: 1, MaxDifficulty: 1},
				{FromLevel: 2, MaxDifficulty: 2},
				{FromLevel: 4, MaxDifficulty: 3},
			},
			Names: []string{
				"Sunrise Sprint",
				"Neon Harbor",
				"Skyline Bounce",
				"Turbo Plaza",
				"Starlight Circuit",
			},
		},
		Entities: EntitiesConfig{
			Obstacles: ObstacleDefaults{
				GroundChance:      0.7,
				GroundMinHeight:   70,
				GroundHeightRange: 40,
				GroundMinWidth:    50,
				GroundWidthRange:  30,
				AirHeight:         80,
				AirWidth:          60,
				AirMinLift:        180,
				AirLiftRange:      80,
				HitboxInset:       0.12,
			},
			Orbs: OrbDefaults{
				Radius:      14,
				MinHeight:   120,
				HeightRange: 140,
				HitboxScale: 1.6,
			},
			Particles: ParticleConfig{
				Burst:     10,
				SpreadX:   220,
				MinRise:   80,
				RiseRange: 220,
				MinLife:   0.6,
				LifeRange: 0.5,
				Gravity:   520,
				MaxCount:  240,
			},
		},
	}
}

// DefaultSegments returns a minimal built-in catalog.
// The full catalog lives in defaults/segments.yaml.
func DefaultSegments() SegmentCatalog {
	return SegmentCatalog{
		Segments: []SegmentTemplate{
			{
				Name:       "warmup-trail",
				Difficulty: 1,
				Length:     550,
				Obstacles:  []ObstaclePlacement{{At: 250, Type: ObstacleGround}},
				Orbs:       []OrbPlacement{{At: 350, Height: 140}, {At: 420, Height: 140}, {At: 490, Height: 140}},
			},
			{
				Name:       "duck-and-jump",
				Difficulty: 2,
				Length:     750,
				Obstacles:  []ObstaclePlacement{{At: 280, Type: ObstacleAir, Lift: 180}, {At: 550, Type: ObstacleGround}},
				Orbs:       []OrbPlacement{{At: 400, Height: 100}, {At: 650, Height: 180}},
			},
			{
				Name:       "gauntlet",
				Difficulty: 3,
				Length:     900,
				Obstacles: []ObstaclePlacement{
					{At: 250, Type: ObstacleGround},
					{At: 480, Type: ObstacleAir, Lift: 190},
					{At: 720, Type: ObstacleGround},
				},
				Orbs: []OrbPlacement{{At: 360, Height: 200}, {At: 600, Height: 100}, {At: 820, Height: 180}},
			},
		},
	}
}

// GetDefaultYAML returns an embedded default file by name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "runner":
		return defaultRunnerYAML
	case "segments":
		return defaultSegmentsYAML
	default:
		return nil
	}
}
