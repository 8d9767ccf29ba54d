package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
	"github.com/vovakirdan/orb-dash/internal/games/runner"
	"github.com/vovakirdan/orb-dash/internal/metrics"
	"github.com/vovakirdan/orb-dash/internal/platform/snapshot"
	"github.com/vovakirdan/orb-dash/internal/registry"
	"github.com/vovakirdan/orb-dash/internal/storage"
)

// Options are the collaborators shared by every game model.
// All fields are optional.
type Options struct {
	Store   *storage.Store
	Metrics *metrics.Metrics
	Logger  *log.Logger
	User    string // tags log lines, "local" when empty
	Preset  config.DifficultyPreset

	// ScreenshotDir receives ctrl+s captures; defaults to ~/.orbdash/screenshots.
	ScreenshotDir string
}

// runnerGame is implemented by games that accept persistence and event wiring.
type runnerGame interface {
	SetBestStore(best runner.BestStore)
	SetEventSink(sink runner.EventSink)
	SetPreset(preset config.DifficultyPreset)
	Session() *runner.Session
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	loopID     uint64
	lastTick   time.Time
	status     string
	embedded   bool // owned by a SessionModel; back on the title returns to the menu
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the run has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game and wires the
// score store, logger and metrics into it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	cfg = withDefaults(cfg)
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.User == "" {
		opts.User = "local"
	}

	if rg, ok := game.(runnerGame); ok {
		if opts.Store != nil {
			rg.SetBestStore(opts.Store.Best(game.ID()))
		}
		rg.SetEventSink(runner.MultiSink{NewLogSink(opts.Logger, opts.User), opts.Metrics})
		rg.SetPreset(opts.Preset)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loopID:     nextLoopID(),
	}
}

// withDefaults fills unset screen and tick fields from core.DefaultConfig.
func withDefaults(cfg core.RuntimeConfig) core.RuntimeConfig {
	def := core.DefaultConfig()
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loopID)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game renders from world units, so a resize only changes the buffer.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		// ticks from a previous model's loop are dropped
		if msg.ID != m.loopID {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.status = m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back on the title screen leaves the game
	if m.inputFrame.Has(core.ActionBack) && onTitle(m.gameState) {
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
	}

	return m, nil
}

func onTitle(s core.GameState) bool {
	return !s.Running && !s.Paused && !s.GameOver && !s.LevelComplete
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	dt := frameDelta(m.lastTick, now, m.config.FrameInterval())
	m.lastTick = now

	start := time.Now()
	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}
	if !m.gameState.GameOver {
		m.runSaved = false
	}

	particles := 0
	if rg, ok := m.game.(runnerGame); ok && rg.Session() != nil {
		particles = rg.Session().Particles()
	}
	m.opts.Metrics.ObserveFrame(time.Since(start), particles)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loopID)
}

// saveRun records the finished run in the score history.
func (m *Model) saveRun() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	runID, err := m.opts.Store.SaveRun(m.game.ID(), uuid.NewString(), m.gameState.Score, m.gameState.Level)
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("run not saved", "user", m.opts.User, "error", err)
		}
		return
	}
	m.opts.Metrics.RecordRun()
	if m.opts.Logger != nil {
		m.opts.Logger.Debug("run saved", "user", m.opts.User, "run", runID, "score", m.gameState.Score)
	}
}

// saveScreenshot writes the current frame as text and, for the runner, as
// a PNG. Returns a status line for the view.
func (m *Model) saveScreenshot() string {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed: " + err.Error()
		}
		dir = filepath.Join(home, ".orbdash", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), time.Now().Format("20060102_150405")))
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}

	if rg, ok := m.game.(runnerGame); ok && rg.Session() != nil {
		if err := snapshot.SavePNG(snapshot.Frame(rg.Session().Snapshot(), 1), base+".png"); err != nil {
			return "screenshot failed: " + err.Error()
		}
		return "saved " + base + ".png"
	}
	return "saved " + base + ".txt"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderWithStatus(m.screen, m.status)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
