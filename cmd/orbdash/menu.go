package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orb-dash/internal/games/runner"
	"github.com/vovakirdan/orb-dash/internal/platform/tui"
	"github.com/vovakirdan/orb-dash/internal/registry"
	"github.com/vovakirdan/orb-dash/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Orb Dash with a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to change difficulty and
Enter to select. After a run you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  orbdash menu
  orbdash menu --fps 30
  orbdash menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("orbdash")

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	current := preset()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep size changes and the picked difficulty
		cfg = menuResult.Config
		current = menuResult.Preset

		switch menuResult.Choice {
		case tui.ChoiceScores:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		case tui.ChoicePlay:
			game, err := registry.Create(runner.GameID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				return
			}

			// Fresh seed per run unless one was pinned
			runCfg := cfg
			if flagSeed == 0 {
				runCfg.Seed = time.Now().UnixNano()
			}

			backToMenu, err := tui.Run(game, runCfg, tui.Options{
				Store:  store,
				Logger: logger,
				Preset: current,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}
			if !backToMenu {
				return
			}

		default:
			return
		}
	}
}
