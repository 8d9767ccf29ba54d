// orbdash is a side-scrolling runner for the terminal.
//
// Usage:
//
//	orbdash play             - Play Orb Dash
//	orbdash menu             - Start menu with difficulty picker and scoreboard
//	orbdash serve            - Start SSH server for remote play
//	orbdash scores           - Show high scores and run history
//	orbdash plan             - Print the generated spawn plan of a level
//	orbdash list             - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.orbdash/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--config <path>       - Custom tunables YAML
//	--segments <path>     - Custom segment catalog YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/games/runner"
	"github.com/vovakirdan/orb-dash/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagSegments   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orbdash",
	Short: "Orb Dash - a side-scrolling runner in your terminal",
	Long: `Orb Dash is a terminal side-scrolling runner. Jump over or punch
through obstacles, collect orbs to build a combo and reach the end of
each procedurally assembled level.

Available commands:
  play     - Play directly
  menu     - Menu with difficulty picker and scoreboard
  serve    - Start SSH server for remote play
  scores   - View high scores and run history
  plan     - Inspect the generated content of a level
  list     - Show registered games

Examples:
  orbdash play
  orbdash play --difficulty hard
  orbdash menu
  orbdash serve --ssh :2222 --metrics-addr 127.0.0.1:9100
  orbdash plan --level 3 --seed 42 --png level3.png`,
	SilenceUsage:      true,
	PersistentPreRunE: loadGameConfig,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.orbdash/scores.db", "Path to scores database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tunables YAML")
	pf.StringVar(&flagSegments, "segments", "", "Path to custom segment catalog YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(planCmd)
}

// loadGameConfig applies the config flags and validates the tunables and
// segment catalog so a broken file fails before any screen is drawn.
func loadGameConfig(_ *cobra.Command, _ []string) error {
	runner.SetConfigPath(flagConfig)
	runner.SetSegmentsPath(flagSegments)
	runner.SetDifficultyPreset(flagDifficulty)

	if _, _, err := runner.LoadConfig(); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	return nil
}

// newLogger builds the CLI logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return tui.NewLogger(prefix, level)
}

// preset returns the --difficulty flag as a preset.
func preset() config.DifficultyPreset {
	return config.ParsePreset(flagDifficulty)
}
