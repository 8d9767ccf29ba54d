package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("runner"), &cfg); err != nil {
		t.Fatalf("embedded runner.yaml does not parse: %v", err)
	}
	want := DefaultRunnerConfig()

	if cfg.Player != want.Player {
		t.Errorf("player config = %+v, want %+v", cfg.Player, want.Player)
	}
	if cfg.Scoring != want.Scoring {
		t.Errorf("scoring config = %+v, want %+v", cfg.Scoring, want.Scoring)
	}
	if cfg.Speed != want.Speed {
		t.Errorf("speed config = %+v, want %+v", cfg.Speed, want.Speed)
	}
	if cfg.Entities != want.Entities {
		t.Errorf("entities config = %+v, want %+v", cfg.Entities, want.Entities)
	}
	if len(cfg.Levels.Names) != len(want.Levels.Names) {
		t.Errorf("got %d level names, want %d", len(cfg.Levels.Names), len(want.Levels.Names))
	}
}

func TestEmbeddedCatalogIsValid(t *testing.T) {
	var catalog SegmentCatalog
	if err := yaml.Unmarshal(GetDefaultYAML("segments"), &catalog); err != nil {
		t.Fatalf("embedded segments.yaml does not parse: %v", err)
	}
	if err := ValidateCatalog(catalog, DefaultRunnerConfig().Levels); err != nil {
		t.Errorf("embedded catalog invalid: %v", err)
	}
	if err := ValidateCatalog(DefaultSegments(), DefaultRunnerConfig().Levels); err != nil {
		t.Errorf("fallback catalog invalid: %v", err)
	}
}

func TestLevelsTarget(t *testing.T) {
	levels := DefaultRunnerConfig().Levels
	tests := []struct {
		level int
		want  float64
	}{
		{0, 2500},
		{1, 2500},
		{2, 2900},
		{5, 4100},
	}
	for _, tt := range tests {
		if got := levels.Target(tt.level); got != tt.want {
			t.Errorf("Target(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLevelsMaxDifficulty(t *testing.T) {
	levels := DefaultRunnerConfig().Levels
	prev := 0
	for level := 1; level <= 10; level++ {
		got := levels.MaxDifficulty(level)
		if got < prev {
			t.Errorf("MaxDifficulty(%d) = %d decreased from %d", level, got, prev)
		}
		prev = got
	}

	tests := []struct {
		level int
		want  int
	}{
		{1, 1}, {2, 2}, {3, 2}, {4, 3}, {9, 3},
	}
	for _, tt := range tests {
		if got := levels.MaxDifficulty(tt.level); got != tt.want {
			t.Errorf("MaxDifficulty(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelsName(t *testing.T) {
	levels := DefaultRunnerConfig().Levels
	if got := levels.Name(1); got != "Sunrise Sprint" {
		t.Errorf("Name(1) = %q", got)
	}
	if got := levels.Name(6); got != "Sunrise Sprint" {
		t.Errorf("Name(6) = %q, want the list to cycle", got)
	}
	if got := (LevelsConfig{}).Name(1); got != "" {
		t.Errorf("empty names gave %q", got)
	}
}

func TestDifficultyManagerSpeed(t *testing.T) {
	d := NewDifficultyManager(DefaultRunnerConfig().Speed)

	if got := d.StartSpeed(1); got != 260 {
		t.Errorf("StartSpeed(1) = %v, want 260", got)
	}
	if got := d.StartSpeed(3); got != 288 {
		t.Errorf("StartSpeed(3) = %v, want 288", got)
	}

	tests := []struct {
		name  string
		level int
		score float64
		combo int
		want  float64
	}{
		{"fresh", 1, 0, 1, 262},
		{"score ramp", 1, 500, 1, 262 + 60},
		{"score cap", 1, 100000, 1, 262 + 160},
		{"combo", 2, 0, 4, 260 + 16 + 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Speed(tt.level, tt.score, tt.combo); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Speed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	cfg := DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyHard)
	if cfg.Speed.Scale != 1.2 {
		t.Errorf("hard scale = %v", cfg.Speed.Scale)
	}

	cfg = DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyFixed)
	d := NewDifficultyManager(cfg.Speed)
	if d.IsRamping() {
		t.Error("fixed preset should disable the ramp")
	}
	if d.Speed(1, 5000, 9) != d.Speed(1, 0, 1) {
		t.Error("fixed preset speed should not depend on score or combo")
	}

	if ParsePreset("bogus") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestValidateCatalog(t *testing.T) {
	levels := DefaultRunnerConfig().Levels
	tests := []struct {
		name     string
		catalog  SegmentCatalog
		wantCode string
	}{
		{"empty", SegmentCatalog{}, "EMPTY_CATALOG"},
		{
			"zero length",
			SegmentCatalog{Segments: []SegmentTemplate{{Name: "a", Difficulty: 1, Length: 0}}},
			"INVALID_LENGTH",
		},
		{
			"zero difficulty",
			SegmentCatalog{Segments: []SegmentTemplate{{Name: "a", Difficulty: 0, Length: 100}}},
			"INVALID_DIFFICULTY",
		},
		{
			"offset past end",
			SegmentCatalog{Segments: []SegmentTemplate{{
				Name: "a", Difficulty: 1, Length: 100,
				Obstacles: []ObstaclePlacement{{At: 100}},
			}}},
			"OFFSET_OUT_OF_RANGE",
		},
		{
			"bad type",
			SegmentCatalog{Segments: []SegmentTemplate{{
				Name: "a", Difficulty: 1, Length: 100,
				Obstacles: []ObstaclePlacement{{At: 10, Type: "lava"}},
			}}},
			"INVALID_OBSTACLE_TYPE",
		},
		{
			"no starter",
			SegmentCatalog{Segments: []SegmentTemplate{{Name: "a", Difficulty: 2, Length: 100}}},
			"NO_STARTER_SEGMENT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.catalog, levels)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", verr.Code, tt.wantCode)
			}
		})
	}
}

func TestValidateRunner(t *testing.T) {
	if err := ValidateRunner(DefaultRunnerConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
		code   string
	}{
		{"zero health", func(c *RunnerConfig) { c.Session.MaxHealth = 0 }, ""},
		{"zero level length", func(c *RunnerConfig) { c.Levels.BaseLength = 0 }, "INVALID_LEVEL_LENGTH"},
		{"zero length step", func(c *RunnerConfig) { c.Levels.LengthStep = 0 }, "INVALID_LEVEL_LENGTH"},
		{"negative length step", func(c *RunnerConfig) { c.Levels.LengthStep = -100 }, "INVALID_LEVEL_LENGTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tt.mutate(&cfg)
			err := ValidateRunner(cfg)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if tt.code == "" {
				return
			}
			var verr ValidationError
			if !errors.As(err, &verr) || verr.Code != tt.code {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLevelTargetsIncrease(t *testing.T) {
	levels := DefaultRunnerConfig().Levels
	for level := 1; level < 10; level++ {
		if levels.Target(level+1) <= levels.Target(level) {
			t.Errorf("target(%d)=%v not above target(%d)=%v",
				level+1, levels.Target(level+1), level, levels.Target(level))
		}
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	data := []byte("player:\n  jump_power: 900\nsession:\n  max_health: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if cfg.Player.JumpPower != 900 {
		t.Errorf("jump power = %v, want 900", cfg.Player.JumpPower)
	}
	if cfg.Session.MaxHealth != 5 {
		t.Errorf("max health = %d, want 5", cfg.Session.MaxHealth)
	}
	if cfg.Player.Gravity != 1800 {
		t.Errorf("unset fields should keep defaults, gravity = %v", cfg.Player.Gravity)
	}
}

func TestLoadRunnerMissingCustomPath(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadSegmentsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.yaml")
	data := []byte("segments:\n  - name: broken\n    difficulty: 1\n    length: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSegments(path, DefaultRunnerConfig().Levels)
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Code != "INVALID_LENGTH" {
		t.Errorf("expected INVALID_LENGTH, got %v", err)
	}
}
