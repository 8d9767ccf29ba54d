// Package runner implements Orb Dash, a side-scrolling runner: jump over or
// punch through obstacles, collect orbs to build a combo, and reach the end
// of each procedurally assembled level.
package runner

import (
	"time"

	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
	"github.com/vovakirdan/orb-dash/internal/registry"
)

// GameID is the registry and score storage identifier.
const GameID = "orbdash"

var (
	configPath       string
	segmentsPath     string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom tunables file for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetSegmentsPath sets a custom segment catalog file for loading.
func SetSegmentsPath(path string) {
	segmentsPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// values from the config file.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig loads and validates the tunables and segment catalog from the
// configured paths, with the difficulty preset applied.
func LoadConfig() (config.RunnerConfig, config.SegmentCatalog, error) {
	return loadConfig(difficultyPreset)
}

func loadConfig(preset config.DifficultyPreset) (config.RunnerConfig, config.SegmentCatalog, error) {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		return cfg, config.SegmentCatalog{}, err
	}
	if preset != "" {
		config.ApplyRunnerPreset(&cfg, preset)
	}

	catalog, err := config.LoadSegments(segmentsPath, cfg.Levels)
	if err != nil {
		return cfg, catalog, err
	}
	return cfg, catalog, nil
}

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	session *Session
	cfg     config.RunnerConfig
	catalog config.SegmentCatalog
	runtime core.RuntimeConfig
	best    BestStore
	sink    EventSink
	preset  config.DifficultyPreset
}

// New creates a new Orb Dash game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Orb Dash"
}

// SetBestStore sets the persistence used by sessions created on Reset.
func (g *Game) SetBestStore(best BestStore) {
	g.best = best
}

// SetEventSink sets the event receiver used by sessions created on Reset.
func (g *Game) SetEventSink(sink EventSink) {
	g.sink = sink
}

// SetPreset overrides the process-wide difficulty preset for this game.
// An empty preset falls back to SetDifficultyPreset.
func (g *Game) SetPreset(preset config.DifficultyPreset) {
	g.preset = preset
}

// Reset builds a fresh session and starts a run.
// Configuration was validated at startup, so a load error here falls back
// to the built-in defaults.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	cfg, catalog, err := loadConfig(preset)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
		catalog = config.DefaultSegments()
	}
	g.cfg = cfg
	g.catalog = catalog

	g.session = NewSession(cfg, catalog, Options{
		Random: core.NewRNG(runtime.Seed),
		Best:   g.best,
		Sink:   g.sink,
	})
	g.session.Start()
}

// Step maps input intents to session requests and advances one frame.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}
	s := g.session

	if in.Has(core.ActionPause) {
		s.RequestPause()
	}
	if in.Has(core.ActionStart) || in.Has(core.ActionConfirm) {
		s.RequestStart()
	}
	if in.Has(core.ActionBack) {
		s.Quit()
	}
	if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
		// jump doubles as start on the title and game over screens
		switch s.Phase() {
		case PhaseTitle, PhaseGameOver:
			s.RequestStart()
		default:
			s.RequestJump()
		}
	}
	if in.Has(core.ActionAttack) {
		s.RequestAttack()
	}

	s.Frame(core.ClampDelta(dt, g.cfg.Session.MaxDelta))

	return core.StepResult{State: g.State()}
}

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.Clear()
		return
	}
	RenderSnapshot(dst, g.session.Snapshot())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Level: 1}
	}
	s := g.session
	phase := s.Phase()
	return core.GameState{
		Score:         int(s.Score()),
		Level:         s.Level(),
		Running:       phase == PhaseRunning,
		GameOver:      phase == PhaseGameOver,
		Paused:        phase == PhasePaused,
		LevelComplete: phase == PhaseLevelComplete,
		NewBest:       s.NewBest(),
	}
}

// Session returns the active session, or nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
