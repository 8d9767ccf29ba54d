package config

import "math"

// DifficultyManager computes the scroll speed from level, score and combo.
type DifficultyManager struct {
	cfg SpeedConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg SpeedConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsRamping reports whether score and combo raise the speed.
func (d *DifficultyManager) IsRamping() bool {
	return d.cfg.ScoreCap > 0 || d.cfg.ComboFactor > 0
}

// StartSpeed returns the speed a level begins with.
func (d *DifficultyManager) StartSpeed(level int) float64 {
	level = max(level, 1)
	return (d.cfg.Base + float64(level-1)*d.cfg.StartStep) * d.scale()
}

// Speed returns the running speed for the current level, score and combo.
// The score contribution saturates at ScoreCap.
func (d *DifficultyManager) Speed(level int, score float64, combo int) float64 {
	level = max(level, 1)
	fromScore := clampF(score*d.cfg.ScoreFactor, 0, d.cfg.ScoreCap)
	fromCombo := float64(max(combo, 1)) * d.cfg.ComboFactor
	return (d.cfg.Base + float64(level-1)*d.cfg.LevelStep + fromScore + fromCombo) * d.scale()
}

func (d *DifficultyManager) scale() float64 {
	if d.cfg.Scale <= 0 {
		return 1
	}
	return d.cfg.Scale
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
