package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orb-dash/internal/core"
	"github.com/vovakirdan/orb-dash/internal/games/runner"
	"github.com/vovakirdan/orb-dash/internal/platform/snapshot"
)

var (
	flagPlanLevel int
	flagPlanPNG   string
	flagPlanScale float64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the generated spawn plan of a level",
	Long: `Assemble a level from the segment catalog the same way a run does and
print its segments and spawn events. With --png the plan is also drawn
as a side view strip.

The same --seed always gives the same plan.

Examples:
  orbdash plan --level 1 --seed 42
  orbdash plan --level 4 --seed 7 --png level4.png
  orbdash plan --segments ./my-segments.yaml --level 2`,
	Args: cobra.NoArgs,
	Run:  runPlan,
}

func init() {
	planCmd.Flags().IntVar(&flagPlanLevel, "level", 1, "Level number (1-based)")
	planCmd.Flags().StringVar(&flagPlanPNG, "png", "", "Also draw the plan to this PNG file")
	planCmd.Flags().Float64Var(&flagPlanScale, "px-per-unit", 0.25, "PNG pixels per world unit")
}

func runPlan(_ *cobra.Command, _ []string) {
	cfg, catalog, err := runner.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	plan := runner.BuildLevelPlan(flagPlanLevel, catalog, cfg.Levels, core.NewRNG(seed))

	fmt.Printf("Level %d - %s\n", plan.Level, cfg.Levels.Name(plan.Level))
	fmt.Printf("Seed: %d  Target: %.0f  Max difficulty: %d\n", seed, plan.Target, cfg.Levels.MaxDifficulty(plan.Level))
	fmt.Println()

	fmt.Printf("Segments (%d):\n", len(plan.Segments))
	for i, name := range plan.Segments {
		fmt.Printf("  %2d. %s\n", i+1, name)
	}
	fmt.Println()

	fmt.Printf("Spawns (%d):\n", len(plan.Spawns))
	fmt.Printf("  %-8s  %-8s  %-8s  %s\n", "At", "Kind", "Type", "Segment")
	for _, ev := range plan.Spawns {
		detail := "-"
		if ev.Kind == runner.SpawnObstacle {
			detail = string(ev.Obstacle.Type)
			if detail == "" {
				detail = "random"
			}
		}
		fmt.Printf("  %-8.0f  %-8s  %-8s  %s\n", ev.At, ev.Kind, detail, ev.Segment)
	}

	if flagPlanPNG == "" {
		return
	}
	dc := snapshot.Plan(plan, cfg.World, cfg.Entities, flagPlanScale)
	if err := snapshot.SavePNG(dc, flagPlanPNG); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("Wrote %s\n", flagPlanPNG)
}
