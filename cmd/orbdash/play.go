package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orb-dash/internal/core"
	"github.com/vovakirdan/orb-dash/internal/games/runner"
	"github.com/vovakirdan/orb-dash/internal/platform/tui"
	"github.com/vovakirdan/orb-dash/internal/registry"
	"github.com/vovakirdan/orb-dash/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Orb Dash",
	Long: `Start a run straight away.

Controls:
  Space/Up/W   - Jump (start from the title screen)
  X/F          - Attack
  P/Esc        - Pause
  B            - Back to title (while paused)
  Enter/R      - Start / next level / restart
  Ctrl+S       - Save a screenshot (text and PNG)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower speed scale
  normal - Default speed scale
  hard   - Faster speed scale
  fixed  - No score ramp, speed depends on the level only

Examples:
  orbdash play
  orbdash play --difficulty easy
  orbdash play --seed 42
  orbdash play --config ./my-runner.yaml --segments ./my-segments.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger("orbdash")

	game, err := registry.Create(runner.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	_, runErr := tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Logger: logger,
		Preset: preset(),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}
