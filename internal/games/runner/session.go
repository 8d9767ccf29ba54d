package runner

import (
	"math"

	"github.com/vovakirdan/orb-dash/internal/config"
	"github.com/vovakirdan/orb-dash/internal/core"
)

// Phase is the coarse state of a session.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Options carries the collaborators of a session. Zero values are replaced
// with defaults: a time-seeded RNG, no persistence, a Toast and no events.
type Options struct {
	Random   core.Random
	Best     BestStore
	Notifier Notifier
	Sink     EventSink
}

// Session is one player's run: it owns the player, the entity stores and
// the level plan, and only Frame mutates them.
type Session struct {
	cfg     config.RunnerConfig
	catalog config.SegmentCatalog
	pace    *config.DifficultyManager

	rng       core.Random
	bestStore BestStore
	notifier  Notifier
	toast     *Toast
	sink      EventSink

	player    *Player
	obstacles *ObstacleStore
	orbs      *OrbStore
	particles *ParticleStore

	running           bool
	paused            bool
	gameOver          bool
	awaitingNextLevel bool

	score    float64
	combo    int
	health   int
	fun      float64
	elapsed  float64
	animTime float64
	idle     float64 // seconds since the run stopped
	shake    float64

	level     int
	distance  float64
	speed     float64
	plan      LevelPlan
	nextSpawn int

	best       float64
	bestBefore float64
	newBest    bool
}

// NewSession creates a session on the title screen. The best score is read
// once here; a load failure is reported as an event and treated as zero.
func NewSession(cfg config.RunnerConfig, catalog config.SegmentCatalog, opts Options) *Session {
	s := &Session{
		cfg:       cfg,
		catalog:   catalog,
		pace:      config.NewDifficultyManager(cfg.Speed),
		rng:       opts.Random,
		bestStore: opts.Best,
		notifier:  opts.Notifier,
		sink:      opts.Sink,
		player:    NewPlayer(cfg.Player, cfg.World.GroundY()),
		obstacles: NewObstacleStore(cfg.World, cfg.Entities.Obstacles),
		orbs:      NewOrbStore(cfg.World, cfg.Entities.Orbs),
		particles: NewParticleStore(cfg.Entities.Particles),
	}

	if s.rng == nil {
		s.rng = core.NewRNG(0)
	}
	if s.sink == nil {
		s.sink = nopSink{}
	}
	if s.notifier == nil {
		s.notifier = NewToast(cfg.Session.ToastDuration)
	}
	if t, ok := s.notifier.(*Toast); ok {
		s.toast = t
	}

	if s.bestStore != nil {
		best, err := s.bestStore.LoadBest()
		if err != nil {
			s.emitError(EventLoadError, err)
		} else {
			s.best = math.Max(best, 0)
		}
	}

	s.level = 1
	s.combo = 1
	s.health = cfg.Session.MaxHealth
	s.plan = LevelPlan{Level: 1, Target: cfg.Levels.Target(1)}
	s.speed = s.pace.StartSpeed(1)
	return s
}

// Start begins a new run at level 1 with full health and zero score.
func (s *Session) Start() {
	s.running = true
	s.paused = false
	s.gameOver = false
	s.awaitingNextLevel = false
	s.newBest = false

	s.score = 0
	s.combo = 1
	s.fun = 0
	s.health = s.cfg.Session.MaxHealth
	s.elapsed = 0
	s.animTime = 0
	s.idle = 0
	s.shake = 0
	s.bestBefore = s.best

	s.player.Reset()
	if s.toast != nil {
		s.toast.Clear()
	}
	s.setupLevel(1)
}

// StartNextLevel continues after a completed level. Score, combo, health
// and fun carry over.
func (s *Session) StartNextLevel() bool {
	if !s.awaitingNextLevel {
		return false
	}
	s.setupLevel(s.level + 1)
	s.running = true
	s.paused = false
	return true
}

func (s *Session) setupLevel(level int) {
	s.level = level
	s.distance = 0
	s.nextSpawn = 0
	s.awaitingNextLevel = false
	s.plan = BuildLevelPlan(level, s.catalog, s.cfg.Levels, s.rng)
	s.speed = s.pace.StartSpeed(level)

	s.obstacles.Reset()
	s.orbs.Reset()
	s.particles.Reset()

	s.emit(EventLevelStart, 0)
}

// RequestStart handles the start/retry/next intent. It continues to the
// next level when one was just completed, starts a new run from the title
// or game over screen, and ignores requests made too soon after dying.
func (s *Session) RequestStart() bool {
	if s.awaitingNextLevel {
		return s.StartNextLevel()
	}
	if s.running {
		return false
	}
	if s.gameOver && s.idle < s.cfg.Session.RestartGuard {
		return false
	}
	s.Start()
	return true
}

// RequestJump buffers a jump while the run is active.
func (s *Session) RequestJump() {
	if !s.running || s.paused {
		return
	}
	s.player.RequestJump()
}

// RequestAttack starts an attack while the run is active and off cooldown.
func (s *Session) RequestAttack() bool {
	if !s.running || s.paused {
		return false
	}
	if !s.player.TryAttack() {
		return false
	}
	s.emit(EventAttack, 0)
	return true
}

// RequestPause toggles pause while a run is active.
func (s *Session) RequestPause() bool {
	if !s.running {
		return false
	}
	s.paused = !s.paused
	return true
}

// Quit abandons the current screen and returns to the title. It reports
// false when the session is already on the title or still running unpaused.
func (s *Session) Quit() bool {
	if s.Phase() == PhaseTitle || (s.running && !s.paused) {
		return false
	}
	s.running = false
	s.paused = false
	s.gameOver = false
	s.awaitingNextLevel = false
	s.obstacles.Reset()
	s.orbs.Reset()
	s.particles.Reset()
	return true
}

// Frame advances the session by dt seconds. The delta is clamped to the
// configured maximum; nothing is simulated while paused or stopped.
func (s *Session) Frame(dt float64) {
	dt = core.ClampF(dt, 0, s.cfg.Session.MaxDelta)
	s.animTime += dt
	if !s.running || s.paused {
		s.idle += dt
		return
	}
	s.update(dt)
}

// update runs one simulation step in a fixed order. Spawns released here
// can collide in the same frame; a completed level skips collisions.
func (s *Session) update(dt float64) {
	s.elapsed += dt
	if s.toast != nil {
		s.toast.Update(dt)
	}

	if s.player.Update(dt) {
		s.emit(EventJump, 0)
	}

	s.releaseSpawns()

	dx := s.speed * dt
	s.obstacles.Update(dx)
	s.orbs.Update(dx)
	s.particles.Update(dt)

	s.accrue(dt)

	if s.distance >= s.plan.Target {
		s.completeLevel()
		return
	}

	s.resolveCollisions()

	s.speed = s.pace.Speed(s.level, s.score, s.combo)
	s.shake = core.Countdown(s.shake, dt)
}

// releaseSpawns moves every due plan entry into its store.
func (s *Session) releaseSpawns() {
	for s.nextSpawn < len(s.plan.Spawns) && s.distance >= s.plan.Spawns[s.nextSpawn].At {
		ev := s.plan.Spawns[s.nextSpawn]
		switch ev.Kind {
		case SpawnObstacle:
			s.obstacles.Spawn(ev.Obstacle, s.rng)
		case SpawnOrb:
			s.orbs.Spawn(ev.Orb, s.rng)
		}
		s.nextSpawn++
	}
}

func (s *Session) completeLevel() {
	if s.awaitingNextLevel {
		return
	}
	s.running = false
	s.paused = false
	s.awaitingNextLevel = true
	s.emit(EventLevelComplete, 0)
}

// endGame stops the run and records a new best. It runs at most once per run.
func (s *Session) endGame() {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.running = false
	s.paused = false
	s.awaitingNextLevel = false
	s.idle = 0

	if s.score > s.best {
		s.best = math.Floor(s.score)
		s.newBest = true
		s.emit(EventNewBest, 0)
		if s.bestStore != nil {
			if err := s.bestStore.SaveBest(s.best); err != nil {
				s.emitError(EventPersistError, err)
			}
		}
	}

	s.emit(EventGameOver, 0)
}

func (s *Session) notify(msg string) {
	s.notifier.Notify(msg)
}

func (s *Session) emit(kind EventKind, gain float64) {
	s.sink.OnEvent(Event{
		Kind:   kind,
		Level:  s.level,
		Score:  s.score,
		Combo:  s.combo,
		Health: s.health,
		Gain:   gain,
	})
}

func (s *Session) emitError(kind EventKind, err error) {
	s.sink.OnEvent(Event{
		Kind:   kind,
		Level:  s.level,
		Score:  s.score,
		Combo:  s.combo,
		Health: s.health,
		Err:    err,
	})
}

// Phase returns the coarse session state.
func (s *Session) Phase() Phase {
	switch {
	case s.gameOver:
		return PhaseGameOver
	case s.awaitingNextLevel:
		return PhaseLevelComplete
	case s.running && s.paused:
		return PhasePaused
	case s.running:
		return PhaseRunning
	default:
		return PhaseTitle
	}
}

// Score returns the current score.
func (s *Session) Score() float64 { return s.score }

// Best returns the best score known to the session.
func (s *Session) Best() float64 { return s.best }

// NewBest reports whether the last finished run beat the previous best.
func (s *Session) NewBest() bool { return s.newBest }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// Combo returns the current combo multiplier.
func (s *Session) Combo() int { return s.combo }

// Health returns the remaining health.
func (s *Session) Health() int { return s.health }

// Distance returns the distance run in the current level.
func (s *Session) Distance() float64 { return s.distance }

// Plan returns the current level plan.
func (s *Session) Plan() LevelPlan { return s.plan }

// Particles returns the number of live particles.
func (s *Session) Particles() int { return s.particles.Len() }
