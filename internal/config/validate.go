package config

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the tunables and the segment catalog together.
func Validate(cfg RunnerConfig, catalog SegmentCatalog) error {
	if err := ValidateRunner(cfg); err != nil {
		return err
	}
	return ValidateCatalog(catalog, cfg.Levels)
}

// ValidateRunner checks the tunables for values the simulation cannot run with.
// Checks:
//   - World has positive size and the ground lies inside it
//   - Player geometry, gravity and jump power are positive
//   - Health and frame delta clamp are positive
//   - Level length grows from a positive base
func ValidateRunner(cfg RunnerConfig) error {
	if cfg.World.Width <= 0 || cfg.World.Height <= 0 {
		return ValidationError{
			Code:    "INVALID_WORLD",
			Message: fmt.Sprintf("world size %.0fx%.0f must be positive", cfg.World.Width, cfg.World.Height),
		}
	}
	if gy := cfg.World.GroundY(); gy <= 0 || gy > cfg.World.Height {
		return ValidationError{
			Code:    "INVALID_GROUND",
			Message: fmt.Sprintf("ground line %.0f is outside the world", gy),
		}
	}

	p := cfg.Player
	if p.Width <= 0 || p.Height <= 0 {
		return ValidationError{
			Code:    "INVALID_PLAYER",
			Message: fmt.Sprintf("player size %.0fx%.0f must be positive", p.Width, p.Height),
		}
	}
	if p.Gravity <= 0 || p.JumpPower <= 0 {
		return ValidationError{
			Code:    "INVALID_PHYSICS",
			Message: fmt.Sprintf("gravity %.0f and jump power %.0f must be positive", p.Gravity, p.JumpPower),
		}
	}
	if p.HitboxWidth <= 0 || p.HitboxWidth > 1 || p.HitboxHeight <= 0 || p.HitboxHeight > 1 {
		return ValidationError{
			Code:    "INVALID_HITBOX",
			Message: "player hitbox fractions must be in (0, 1]",
		}
	}

	if cfg.Session.MaxHealth <= 0 {
		return ValidationError{
			Code:    "INVALID_HEALTH",
			Message: fmt.Sprintf("max health %d must be positive", cfg.Session.MaxHealth),
		}
	}
	if cfg.Session.MaxDelta <= 0 {
		return ValidationError{
			Code:    "INVALID_DELTA",
			Message: fmt.Sprintf("max delta %.3f must be positive", cfg.Session.MaxDelta),
		}
	}
	if cfg.Scoring.PaceBaseline <= 0 {
		return ValidationError{
			Code:    "INVALID_PACE",
			Message: "pace baseline must be positive",
		}
	}

	// each level must be longer than the one before
	if cfg.Levels.BaseLength <= 0 || cfg.Levels.LengthStep <= 0 {
		return ValidationError{
			Code:    "INVALID_LEVEL_LENGTH",
			Message: fmt.Sprintf("level length base %.0f step %.0f", cfg.Levels.BaseLength, cfg.Levels.LengthStep),
		}
	}
	for _, c := range cfg.Levels.DifficultyCaps {
		if c.FromLevel < 1 || c.MaxDifficulty < 1 {
			return ValidationError{
				Code:    "INVALID_DIFFICULTY_CAP",
				Message: fmt.Sprintf("difficulty cap from level %d to %d", c.FromLevel, c.MaxDifficulty),
			}
		}
	}

	return nil
}

// ValidateCatalog checks that every template can be placed and that level 1
// has at least one template to draw from.
func ValidateCatalog(catalog SegmentCatalog, levels LevelsConfig) error {
	if len(catalog.Segments) == 0 {
		return ValidationError{
			Code:    "EMPTY_CATALOG",
			Message: "segment catalog has no templates",
		}
	}

	for i, seg := range catalog.Segments {
		if err := validateSegment(i, seg); err != nil {
			return err
		}
	}

	firstCap := levels.MaxDifficulty(1)
	for _, seg := range catalog.Segments {
		if seg.Difficulty <= firstCap {
			return nil
		}
	}
	return ValidationError{
		Code:    "NO_STARTER_SEGMENT",
		Message: fmt.Sprintf("no segment with difficulty <= %d for level 1", firstCap),
	}
}

// validateSegment checks a single template.
func validateSegment(i int, seg SegmentTemplate) error {
	name := seg.Name
	if name == "" {
		name = fmt.Sprintf("#%d", i)
	}

	if seg.Length <= 0 {
		return ValidationError{
			Code:    "INVALID_LENGTH",
			Message: fmt.Sprintf("segment %s has non-positive length %.0f", name, seg.Length),
		}
	}
	if seg.Difficulty < 1 {
		return ValidationError{
			Code:    "INVALID_DIFFICULTY",
			Message: fmt.Sprintf("segment %s has difficulty %d, want >= 1", name, seg.Difficulty),
		}
	}

	for _, o := range seg.Obstacles {
		if o.At < 0 || o.At >= seg.Length {
			return ValidationError{
				Code:    "OFFSET_OUT_OF_RANGE",
				Message: fmt.Sprintf("segment %s obstacle at %.0f outside [0, %.0f)", name, o.At, seg.Length),
			}
		}
		switch o.Type {
		case ObstacleAny, ObstacleGround, ObstacleAir:
		default:
			return ValidationError{
				Code:    "INVALID_OBSTACLE_TYPE",
				Message: fmt.Sprintf("segment %s has unknown obstacle type %q", name, o.Type),
			}
		}
		if o.Width < 0 || o.Height < 0 || o.Lift < 0 {
			return ValidationError{
				Code:    "INVALID_OBSTACLE_SIZE",
				Message: fmt.Sprintf("segment %s obstacle at %.0f has negative geometry", name, o.At),
			}
		}
	}

	for _, orb := range seg.Orbs {
		if orb.At < 0 || orb.At >= seg.Length {
			return ValidationError{
				Code:    "OFFSET_OUT_OF_RANGE",
				Message: fmt.Sprintf("segment %s orb at %.0f outside [0, %.0f)", name, orb.At, seg.Length),
			}
		}
		if orb.Height < 0 {
			return ValidationError{
				Code:    "INVALID_ORB_HEIGHT",
				Message: fmt.Sprintf("segment %s orb at %.0f has negative height", name, orb.At),
			}
		}
	}

	return nil
}
