package runner

import (
	"sort"

	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
)

// SpawnKind tells which store a spawn event feeds.
type SpawnKind int

const (
	SpawnObstacle SpawnKind = iota
	SpawnOrb
)

func (k SpawnKind) String() string {
	switch k {
	case SpawnObstacle:
		return "obstacle"
	case SpawnOrb:
		return "orb"
	default:
		return "unknown"
	}
}

// SpawnEvent releases one entity once the run distance reaches At.
type SpawnEvent struct {
	At       float64
	Kind     SpawnKind
	Obstacle config.ObstaclePlacement // valid for SpawnObstacle
	Orb      config.OrbPlacement      // valid for SpawnOrb
	Segment  string                   // template the event came from
}

// LevelPlan is the content of one level: spawns sorted by distance and the
// distance that completes the level.
type LevelPlan struct {
	Level    int
	Target   float64
	Spawns   []SpawnEvent
	Segments []string // template names in the order they were laid down
}

// BuildLevelPlan lays random segment templates end to end until their
// combined length reaches the level target.
//
// Templates are drawn from those whose difficulty is within the level cap.
// If none qualify the easiest templates are used instead, and templates with
// a non-positive length are never drawn, so the loop always terminates.
func BuildLevelPlan(level int, catalog config.SegmentCatalog, levels config.LevelsConfig, rng core.Random) LevelPlan {
	level = max(level, 1)
	plan := LevelPlan{
		Level:  level,
		Target: levels.Target(level),
	}

	pool := segmentPool(catalog, levels.MaxDifficulty(level))
	if len(pool) == 0 {
		return plan
	}

	cursor := 0.0
	for cursor < plan.Target {
		seg := pool[core.Pick(rng, len(pool))]
		plan.Segments = append(plan.Segments, seg.Name)

		for _, o := range seg.Obstacles {
			plan.Spawns = append(plan.Spawns, SpawnEvent{
				At:       cursor + core.ClampF(o.At, 0, seg.Length),
				Kind:     SpawnObstacle,
				Obstacle: o,
				Segment:  seg.Name,
			})
		}
		for _, o := range seg.Orbs {
			plan.Spawns = append(plan.Spawns, SpawnEvent{
				At:      cursor + core.ClampF(o.At, 0, seg.Length),
				Kind:    SpawnOrb,
				Orb:     o,
				Segment: seg.Name,
			})
		}

		cursor += seg.Length
	}

	sort.SliceStable(plan.Spawns, func(i, j int) bool {
		return plan.Spawns[i].At < plan.Spawns[j].At
	})

	return plan
}

// segmentPool returns the templates usable under maxDifficulty, falling
// back to the lowest difficulty present.
func segmentPool(catalog config.SegmentCatalog, maxDifficulty int) []config.SegmentTemplate {
	var pool []config.SegmentTemplate
	lowest, seen := 0, false
	for _, seg := range catalog.Segments {
		if seg.Length <= 0 {
			continue
		}
		if seg.Difficulty <= maxDifficulty {
			pool = append(pool, seg)
		}
		if !seen || seg.Difficulty < lowest {
			lowest, seen = seg.Difficulty, true
		}
	}
	if len(pool) > 0 {
		return pool
	}

	for _, seg := range catalog.Segments {
		if seg.Length > 0 && seg.Difficulty == lowest {
			pool = append(pool, seg)
		}
	}
	return pool
}
