package runner

import (
	"slices"

	"github.com/vovakirdan/orb-dash/internal/config"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	World     config.WorldConfig
	Player    PlayerView
	Obstacles []Obstacle
	Orbs      []Orb
	Particles []Particle

	Phase     Phase
	Level     int
	LevelName string
	Score     float64
	Best      float64
	NewBest   bool
	Combo     int
	Health    int
	MaxHealth int
	Fun       float64
	FunMax    float64
	Distance  float64
	Target    float64
	Speed     float64
	Shake     float64
	AnimTime  float64
	Elapsed   float64
	Toast     string
}

// Snapshot copies the current state. The result shares no memory with the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		World:     s.cfg.World,
		Player:    s.player.view(s.pose()),
		Obstacles: slices.Clone(s.obstacles.Items()),
		Orbs:      slices.Clone(s.orbs.Items()),
		Particles: slices.Clone(s.particles.Items()),

		Phase:     s.Phase(),
		Level:     s.level,
		LevelName: s.cfg.Levels.Name(s.level),
		Score:     s.score,
		Best:      s.best,
		NewBest:   s.newBest,
		Combo:     s.combo,
		Health:    s.health,
		MaxHealth: s.cfg.Session.MaxHealth,
		Fun:       s.fun,
		FunMax:    s.cfg.Scoring.FunMax,
		Distance:  s.distance,
		Target:    s.plan.Target,
		Speed:     s.speed,
		Shake:     s.shake,
		AnimTime:  s.animTime,
		Elapsed:   s.elapsed,
	}
	if s.toast != nil {
		snap.Toast = s.toast.Message()
	}
	return snap
}

// Progress returns how far through the level the run is, in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Target <= 0 {
		return 0
	}
	return min(max(s.Distance/s.Target, 0), 1)
}

// pose picks the animation for the player. A completed level or a new best
// shows the victory pose.
func (s *Session) pose() Pose {
	switch {
	case (s.gameOver && s.newBest) || s.awaitingNextLevel:
		return PoseVictory
	case s.player.hurtTimer > 0:
		return PoseHurt
	case s.player.Attacking():
		return PoseAttack
	case !s.player.onGround:
		return PoseJump
	case s.running:
		return PoseRun
	default:
		return PoseIdle
	}
}
