package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	runnerFile   = "runner.yaml"
	segmentsFile = "segments.yaml"
)

// LoadRunner loads the runner tunables.
// Search order: customPath -> ~/.orbdash/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// The loaded config is validated before it is returned.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	found, err := loadYAML(customPath, runnerFile, &cfg)
	if err != nil {
		return cfg, err
	}
	if !found {
		cfg = DefaultRunnerConfig()
		if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
			cfg = DefaultRunnerConfig() // Fallback to hardcoded if embed fails
		}
	}

	if err := ValidateRunner(cfg); err != nil {
		return cfg, fmt.Errorf("invalid runner config: %w", err)
	}
	return cfg, nil
}

// LoadSegments loads the segment catalog.
// Search order: customPath -> ~/.orbdash/configs/segments.yaml -> ./configs/segments.yaml -> embedded default.
// The catalog is validated against the level rules in levels.
func LoadSegments(customPath string, levels LevelsConfig) (SegmentCatalog, error) {
	var catalog SegmentCatalog

	found, err := loadYAML(customPath, segmentsFile, &catalog)
	if err != nil {
		return catalog, err
	}
	if !found {
		catalog = SegmentCatalog{}
		if err := yaml.Unmarshal(defaultSegmentsYAML, &catalog); err != nil {
			catalog = DefaultSegments()
		}
	}

	if err := ValidateCatalog(catalog, levels); err != nil {
		return catalog, fmt.Errorf("invalid segment catalog: %w", err)
	}
	return catalog, nil
}

// loadYAML decodes the first readable file into out.
// A custom path must exist and parse; the user and local directories are
// skipped silently when missing or malformed. It reports whether any file was used.
func loadYAML(customPath, filename string, out any) (bool, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return false, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return false, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return true, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return true, nil
		}
	}
	return false, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".orbdash", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	cfg.Speed.Scale = SpeedScaleForPreset(preset)
	if IsFixedPreset(preset) {
		cfg.Speed.ScoreCap = 0
		cfg.Speed.ComboFactor = 0
	}

}
