// Package config provides YAML-based configuration for the runner: physics
// and scoring tunables, the segment catalog used to assemble levels, and
// difficulty presets.
package config

// RunnerConfig contains all tunables of the runner game.
type RunnerConfig struct {
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Session  SessionConfig  `yaml:"session"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Speed    SpeedConfig    `yaml:"speed"`
	Levels   LevelsConfig   `yaml:"levels"`
	Entities EntitiesConfig `yaml:"entities"`
}

// WorldConfig defines the playfield in world units.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // distance from the bottom edge to the ground line
	SpawnMargin  float64 `yaml:"spawn_margin"`  // entities appear this far past the right edge
	CullMargin   float64 `yaml:"cull_margin"`   // entities vanish this far past the left edge
}

// GroundY returns the y coordinate of the ground line.
func (w WorldConfig) GroundY() float64 {
	return w.Height - w.GroundOffset
}

// SpawnX returns the x coordinate where new entities appear.
func (w WorldConfig) SpawnX() float64 {
	return w.Width + w.SpawnMargin
}

// PlayerConfig defines player geometry, physics and action timings (seconds).
type PlayerConfig struct {
	X                  float64 `yaml:"x"`
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	JumpPower          float64 `yaml:"jump_power"`
	Gravity            float64 `yaml:"gravity"`
	JumpBuffer         float64 `yaml:"jump_buffer"`
	CoyoteTime         float64 `yaml:"coyote_time"`
	AttackDuration     float64 `yaml:"attack_duration"`
	AttackCooldown     float64 `yaml:"attack_cooldown"`
	HurtDuration       float64 `yaml:"hurt_duration"`
	InvincibleDuration float64 `yaml:"invincible_duration"`
	HitboxWidth        float64 `yaml:"hitbox_width"`  // fraction of Width
	HitboxHeight       float64 `yaml:"hitbox_height"` // fraction of Height
}

// SessionConfig defines session-wide limits and timers.
type SessionConfig struct {
	MaxHealth     int     `yaml:"max_health"`
	MaxDelta      float64 `yaml:"max_delta"`     // frame delta clamp, seconds
	RestartGuard  float64 `yaml:"restart_guard"` // ignore start requests this long after game over
	ShakeDuration float64 `yaml:"shake_duration"`
	ToastDuration float64 `yaml:"toast_duration"`
}

// ScoringConfig defines score, combo and fun meter rules.
type ScoringConfig struct {
	PaceBaseline   float64 `yaml:"pace_baseline"` // speed at which passive gain is 1x
	PerSecond      float64 `yaml:"per_second"`
	SmashBonus     float64 `yaml:"smash_bonus"`
	OrbBase        float64 `yaml:"orb_base"`
	OrbComboStep   float64 `yaml:"orb_combo_step"`
	ComboMilestone int     `yaml:"combo_milestone"`
	FunMax         float64 `yaml:"fun_max"`
	FunSmash       float64 `yaml:"fun_smash"`
	FunOrb         float64 `yaml:"fun_orb"`
	FunHurt        float64 `yaml:"fun_hurt"`
	FunPerSecond   float64 `yaml:"fun_per_second"`
	FunComboRate   float64 `yaml:"fun_combo_rate"`
}

// SpeedConfig defines the scroll speed curve.
type SpeedConfig struct {
	Base        float64 `yaml:"base"`
	StartStep   float64 `yaml:"start_step"` // per-level increment applied when a level starts
	LevelStep   float64 `yaml:"level_step"` // per-level increment of the running curve
	ScoreFactor float64 `yaml:"score_factor"`
	ScoreCap    float64 `yaml:"score_cap"`
	ComboFactor float64 `yaml:"combo_factor"`
	Scale       float64 `yaml:"scale"` // preset multiplier, 0 means 1
}

// LevelsConfig defines level length and content difficulty progression.
type LevelsConfig struct {
	BaseLength     float64         `yaml:"base_length"`
	LengthStep     float64         `yaml:"length_step"`
	DifficultyCaps []DifficultyCap `yaml:"difficulty_caps"`
	Names          []string        `yaml:"names"`
}

// DifficultyCap raises the maximum segment difficulty from a level onwards.
type DifficultyCap struct {
	FromLevel     int `yaml:"from_level"`
	MaxDifficulty int `yaml:"max_difficulty"`
}

// Target returns the distance needed to complete the given level.
func (l LevelsConfig) Target(level int) float64 {
	if level < 1 {
		level = 1
	}
	return l.BaseLength + float64(level-1)*l.LengthStep
}

// MaxDifficulty returns the highest segment difficulty allowed on a level.
// Caps are applied in order; the last one whose FromLevel is reached wins.
func (l LevelsConfig) MaxDifficulty(level int) int {
	maxDiff := 1
	for _, c := range l.DifficultyCaps {
		if level >= c.FromLevel && c.MaxDifficulty > maxDiff {
			maxDiff = c.MaxDifficulty
		}
	}
	return maxDiff
}

// Name returns the display name of a level, cycling through the list.
func (l LevelsConfig) Name(level int) string {
	if len(l.Names) == 0 || level < 1 {
		return ""
	}
	return l.Names[(level-1)%len(l.Names)]
}

// EntitiesConfig defines spawn defaults for obstacles, orbs and particles.
type EntitiesConfig struct {
	Obstacles ObstacleDefaults `yaml:"obstacles"`
	Orbs      OrbDefaults      `yaml:"orbs"`
	Particles ParticleConfig   `yaml:"particles"`
}

// ObstacleDefaults are used when a placement leaves a field unset.
type ObstacleDefaults struct {
	GroundChance      float64 `yaml:"ground_chance"` // probability of a ground obstacle when the type is unset
	GroundMinHeight   float64 `yaml:"ground_min_height"`
	GroundHeightRange float64 `yaml:"ground_height_range"`
	GroundMinWidth    float64 `yaml:"ground_min_width"`
	GroundWidthRange  float64 `yaml:"ground_width_range"`
	AirHeight         float64 `yaml:"air_height"`
	AirWidth          float64 `yaml:"air_width"`
	AirMinLift        float64 `yaml:"air_min_lift"`
	AirLiftRange      float64 `yaml:"air_lift_range"`
	HitboxInset       float64 `yaml:"hitbox_inset"` // fraction trimmed from each side
}

// OrbDefaults define orb geometry.
type OrbDefaults struct {
	Radius      float64 `yaml:"radius"`
	MinHeight   float64 `yaml:"min_height"`
	HeightRange float64 `yaml:"height_range"`
	HitboxScale float64 `yaml:"hitbox_scale"`
}

// ParticleConfig defines particle bursts.
type ParticleConfig struct {
	Burst     int     `yaml:"burst"`
	SpreadX   float64 `yaml:"spread_x"`
	MinRise   float64 `yaml:"min_rise"`
	RiseRange float64 `yaml:"rise_range"`
	MinLife   float64 `yaml:"min_life"`
	LifeRange float64 `yaml:"life_range"`
	Gravity   float64 `yaml:"gravity"`
	MaxCount  int     `yaml:"max_count"`
}

// ObstacleType names the two obstacle kinds.
type ObstacleType string

const (
	ObstacleAny    ObstacleType = ""       // pick at random
	ObstacleGround ObstacleType = "ground" // sits on the ground, jump over or punch
	ObstacleAir    ObstacleType = "air"    // floats, run under or punch
)

// SegmentCatalog is the static content library levels are assembled from.
type SegmentCatalog struct {
	Segments []SegmentTemplate `yaml:"segments"`
}

// SegmentTemplate is a reusable chunk of level content.
// Placement offsets are relative to the start of the segment.
type SegmentTemplate struct {
	Name       string              `yaml:"name"`
	Difficulty int                 `yaml:"difficulty"`
	Length     float64             `yaml:"length"`
	Obstacles  []ObstaclePlacement `yaml:"obstacles"`
	Orbs       []OrbPlacement      `yaml:"orbs"`
}

// ObstaclePlacement positions an obstacle inside a segment.
// Zero geometry fields fall back to ObstacleDefaults.
type ObstaclePlacement struct {
	At     float64      `yaml:"at"`
	Type   ObstacleType `yaml:"type,omitempty"`
	Width  float64      `yaml:"width,omitempty"`
	Height float64      `yaml:"height,omitempty"`
	Lift   float64      `yaml:"lift,omitempty"` // air obstacles: bottom edge distance above ground
}

// OrbPlacement positions an orb inside a segment.
// Height is measured from the ground; zero picks a random height.
type OrbPlacement struct {
	At     float64 `yaml:"at"`
	Height float64 `yaml:"height,omitempty"`
}

// MaxLength returns the longest segment length in the catalog.
func (c SegmentCatalog) MaxLength() float64 {
	var longest float64
	for _, s := range c.Segments {
		longest = max(longest, s.Length)
	}
	return longest
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown values map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// SpeedScaleForPreset returns the speed multiplier for a difficulty preset.
func SpeedScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.85
	case DifficultyHard:
		return 1.2
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
