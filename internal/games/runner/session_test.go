package runner

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/orb-dash/internal/config"
)

func TestSessionStartsOnTitle(t *testing.T) {
	s := NewSession(config.DefaultRunnerConfig(), emptyCatalog(), Options{Random: &seqRandom{}})
	if s.Phase() != PhaseTitle {
		t.Fatalf("phase = %v, want title", s.Phase())
	}

	s.Frame(frame)
	if s.Distance() != 0 || s.Score() != 0 {
		t.Error("title screen should not simulate")
	}

	if !s.RequestStart() {
		t.Fatal("start from title should succeed")
	}
	if s.Phase() != PhaseRunning || s.Health() != 3 || s.Combo() != 1 || s.Level() != 1 {
		t.Errorf("after start phase=%v health=%d combo=%d level=%d", s.Phase(), s.Health(), s.Combo(), s.Level())
	}
}

func TestLevelOneCompletesOnce(t *testing.T) {
	s, rec := newStartedSession(t)

	for i := 0; i < 10000 && s.Phase() == PhaseRunning; i++ {
		s.Frame(frame)
	}

	if s.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level complete", s.Phase())
	}
	if s.Distance() < 2500 {
		t.Errorf("distance = %v, want >= 2500", s.Distance())
	}
	if n := rec.count(EventLevelComplete); n != 1 {
		t.Fatalf("level complete reported %d times, want 1", n)
	}
	ev, _ := rec.last(EventLevelComplete)
	if ev.Score != s.Score() || ev.Score <= 0 {
		t.Errorf("reported score %v, session score %v", ev.Score, s.Score())
	}

	score, distance := s.Score(), s.Distance()
	for i := 0; i < 100; i++ {
		s.Frame(frame)
	}
	if s.Score() != score || s.Distance() != distance {
		t.Error("score or distance changed while waiting for the next level")
	}
	if n := rec.count(EventLevelComplete); n != 1 {
		t.Errorf("level complete reported %d times after idling, want 1", n)
	}
}

func TestStartNextLevel(t *testing.T) {
	s, _ := newStartedSession(t)
	s.health = 2
	s.combo = 3
	s.distance = s.plan.Target
	s.Frame(frame)

	if s.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level complete", s.Phase())
	}
	score := s.Score()

	if !s.RequestStart() {
		t.Fatal("start should continue to the next level")
	}
	if s.Level() != 2 || s.Distance() != 0 || s.Phase() != PhaseRunning {
		t.Errorf("level=%d distance=%v phase=%v", s.Level(), s.Distance(), s.Phase())
	}
	if s.Health() != 2 || s.Combo() != 3 || s.Score() != score {
		t.Error("health, combo and score should carry over between levels")
	}
	if s.plan.Target != 2900 {
		t.Errorf("level 2 target = %v, want 2900", s.plan.Target)
	}
	if s.speed != 274 {
		t.Errorf("level 2 start speed = %v, want 274", s.speed)
	}
}

func TestLevelCompletionSkipsCollisions(t *testing.T) {
	s, rec := newStartedSession(t)
	s.distance = s.plan.Target - 0.01
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))

	s.Frame(frame)

	if s.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %v, want level complete", s.Phase())
	}
	if s.Health() != 3 || rec.count(EventHurt) != 0 {
		t.Error("collisions should not run on the frame a level completes")
	}
}

func TestObstacleHurtsPlayer(t *testing.T) {
	s, rec := newStartedSession(t)
	s.combo = 4
	s.fun = 50
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))

	s.resolveCollisions()

	if s.Health() != 2 {
		t.Errorf("health = %d, want 2", s.Health())
	}
	if s.Combo() != 1 {
		t.Errorf("combo = %d, want 1", s.Combo())
	}
	if !s.player.Invincible() || s.player.hurtTimer <= 0 {
		t.Error("hurt and invincibility windows should start")
	}
	if s.fun != 30 {
		t.Errorf("fun = %v, want 30", s.fun)
	}
	if s.shake != s.cfg.Session.ShakeDuration {
		t.Errorf("shake = %v, want %v", s.shake, s.cfg.Session.ShakeDuration)
	}
	if rec.count(EventHurt) != 1 {
		t.Errorf("hurt events = %d, want 1", rec.count(EventHurt))
	}
	if s.Snapshot().Toast != "Ouch!" {
		t.Errorf("toast = %q, want Ouch!", s.Snapshot().Toast)
	}
}

func TestInvincibleIgnoresObstacles(t *testing.T) {
	s, _ := newStartedSession(t)
	s.player.Hurt()
	s.player.TryAttack()
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))
	score := s.Score()

	s.resolveCollisions()

	if s.Health() != 3 || s.Score() != score || s.obstacles.items[0].Hit {
		t.Error("an invincible player should neither take damage nor smash")
	}
}

func TestAttackSmashesObstacle(t *testing.T) {
	s, rec := newStartedSession(t)
	s.combo = 3
	s.player.TryAttack()
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))

	s.resolveCollisions()

	if s.Health() != 3 {
		t.Errorf("health = %d, attacking should never cost health", s.Health())
	}
	if s.Combo() != 3 {
		t.Errorf("combo = %d, smashing should not touch the combo", s.Combo())
	}
	if s.Score() != 120 {
		t.Errorf("score = %v, want 120", s.Score())
	}
	if s.fun != 12 {
		t.Errorf("fun = %v, want 12", s.fun)
	}
	if !s.obstacles.items[0].Hit {
		t.Error("obstacle should be flagged hit")
	}
	if s.particles.Len() != s.cfg.Entities.Particles.Burst {
		t.Errorf("particles = %d, want one burst", s.particles.Len())
	}
	if ev, ok := rec.last(EventSmash); !ok || ev.Gain != 120 {
		t.Errorf("smash event = %+v", ev)
	}

	// the hit latch holds until the next cull
	s.resolveCollisions()
	if s.Score() != 120 {
		t.Errorf("score = %v after second check, hit obstacle scored twice", s.Score())
	}
	s.obstacles.Update(0)
	if s.obstacles.Len() != 0 {
		t.Error("hit obstacle should be culled")
	}
}

func TestFunMeterIsCapped(t *testing.T) {
	s, _ := newStartedSession(t)
	s.fun = 95
	s.player.TryAttack()
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))

	s.resolveCollisions()
	if s.fun != 100 {
		t.Errorf("fun = %v, want capped at 100", s.fun)
	}
}

func TestThreeOrbsBuildCombo(t *testing.T) {
	s, rec := newStartedSession(t)

	for i := 0; i < 3; i++ {
		s.orbs.items = append(s.orbs.items[:0], overlappingOrb(s))
		before := s.Score()
		comboBefore := s.Combo()

		s.resolveCollisions()

		want := 80 + float64(comboBefore)*10
		if gain := s.Score() - before; gain != want {
			t.Errorf("orb %d scored %v, want %v", i+1, gain, want)
		}
		if s.Combo() != comboBefore+1 {
			t.Errorf("orb %d combo = %d, want %d", i+1, s.Combo(), comboBefore+1)
		}
	}

	if s.Combo() != 4 {
		t.Errorf("combo = %d, want 4", s.Combo())
	}
	if s.Score() != 90+100+110 {
		t.Errorf("score = %v, want 300", s.Score())
	}
	if rec.count(EventOrb) != 3 {
		t.Errorf("orb events = %d, want 3", rec.count(EventOrb))
	}
}

func TestCollectedOrbScoresOnce(t *testing.T) {
	s, _ := newStartedSession(t)
	s.orbs.items = append(s.orbs.items, overlappingOrb(s))

	s.resolveCollisions()
	s.resolveCollisions()

	if s.Combo() != 2 || s.Score() != 90 {
		t.Errorf("combo=%d score=%v, collected orb counted twice", s.Combo(), s.Score())
	}
}

func TestComboMilestoneNotifies(t *testing.T) {
	n := &notes{}
	s := NewSession(config.DefaultRunnerConfig(), emptyCatalog(), Options{Random: &seqRandom{}, Notifier: n})
	s.Start()
	s.combo = 5
	s.orbs.items = append(s.orbs.items, overlappingOrb(s))

	s.resolveCollisions()

	if s.Combo() != 6 {
		t.Fatalf("combo = %d, want 6", s.Combo())
	}
	if len(n.msgs) != 1 || n.msgs[0] != "Insane Combo!" {
		t.Errorf("notifications = %v", n.msgs)
	}
}

func TestGameOverOnce(t *testing.T) {
	best := &MemoryBest{Best: 10}
	rec := &recorder{}
	s := NewSession(config.DefaultRunnerConfig(), emptyCatalog(), Options{
		Random: &seqRandom{},
		Best:   best,
		Sink:   rec,
	})
	s.Start()
	s.score = 123.7
	s.health = 1
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))
	s.orbs.items = append(s.orbs.items, overlappingOrb(s))

	s.resolveCollisions()

	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", s.Phase())
	}
	if s.Health() != 0 {
		t.Errorf("health = %d, want 0", s.Health())
	}
	if s.orbs.items[0].Collected {
		t.Error("collisions should stop once the run is over")
	}
	if best.Best != 123 || s.Best() != 123 || !s.NewBest() {
		t.Errorf("best store=%v session=%v newBest=%v", best.Best, s.Best(), s.NewBest())
	}

	s.endGame()
	for i := 0; i < 30; i++ {
		s.Frame(frame)
		s.resolveCollisions()
	}
	if n := rec.count(EventGameOver); n != 1 {
		t.Errorf("game over reported %d times, want 1", n)
	}
	if n := rec.count(EventNewBest); n != 1 {
		t.Errorf("new best reported %d times, want 1", n)
	}
}

func TestGameOverWithoutNewBest(t *testing.T) {
	best := &MemoryBest{Best: 500}
	s := NewSession(config.DefaultRunnerConfig(), emptyCatalog(), Options{Random: &seqRandom{}, Best: best})
	s.Start()
	s.score = 100
	s.endGame()

	if s.NewBest() || best.Best != 500 || s.Best() != 500 {
		t.Errorf("newBest=%v stored=%v", s.NewBest(), best.Best)
	}
	if s.Snapshot().Player.Pose == PoseVictory {
		t.Error("victory pose without a new best")
	}
}

type failingBest struct{}

func (failingBest) LoadBest() (float64, error) { return 0, errors.New("disk gone") }
func (failingBest) SaveBest(float64) error     { return errors.New("disk gone") }

func TestPersistenceFailuresDoNotBlock(t *testing.T) {
	rec := &recorder{}
	s := NewSession(config.DefaultRunnerConfig(), emptyCatalog(), Options{
		Random: &seqRandom{},
		Best:   failingBest{},
		Sink:   rec,
	})
	if rec.count(EventLoadError) != 1 {
		t.Fatalf("load failure events = %d, want 1", rec.count(EventLoadError))
	}
	if rec.count(EventPersistError) != 0 {
		t.Fatalf("a load failure must not be reported as a save failure")
	}

	s.Start()
	s.score = 50
	s.endGame()

	if s.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want game over", s.Phase())
	}
	if rec.count(EventPersistError) != 1 {
		t.Errorf("persist error events = %d, want 1", rec.count(EventPersistError))
	}
	if ev, _ := rec.last(EventPersistError); ev.Err == nil {
		t.Error("persist error event should carry the error")
	}
}

func TestRestartGuard(t *testing.T) {
	s, _ := newStartedSession(t)
	s.score = 40
	s.endGame()

	if s.RequestStart() {
		t.Fatal("restart right after game over should be ignored")
	}

	for i := 0; i < 11; i++ {
		s.Frame(0.05)
	}
	if !s.RequestStart() {
		t.Fatal("restart should be accepted after the guard")
	}
	if s.Phase() != PhaseRunning || s.Score() != 0 || s.Health() != 3 {
		t.Errorf("restart did not reset: phase=%v score=%v health=%d", s.Phase(), s.Score(), s.Health())
	}
}

func TestPauseSuspendsUpdates(t *testing.T) {
	s, _ := newStartedSession(t)
	s.Frame(frame)

	if !s.RequestPause() {
		t.Fatal("pause should toggle while running")
	}
	distance, score := s.Distance(), s.Score()

	s.RequestJump()
	if s.player.jumpBuffer != 0 {
		t.Error("jump should be ignored while paused")
	}
	if s.RequestAttack() {
		t.Error("attack should be ignored while paused")
	}
	for i := 0; i < 10; i++ {
		s.Frame(frame)
	}
	if s.Distance() != distance || s.Score() != score {
		t.Error("paused session advanced")
	}

	s.RequestPause()
	s.Frame(frame)
	if s.Distance() <= distance {
		t.Error("resumed session did not advance")
	}
}

func TestPauseIgnoredWhenStopped(t *testing.T) {
	s := NewSession(config.DefaultRunnerConfig(), emptyCatalog(), Options{Random: &seqRandom{}})
	if s.RequestPause() {
		t.Error("pause on the title screen should be ignored")
	}
	s.RequestJump()
	if s.player.jumpBuffer != 0 {
		t.Error("jump on the title screen should be ignored")
	}
}

func TestQuitFromPause(t *testing.T) {
	s, _ := newStartedSession(t)
	if s.Quit() {
		t.Error("quit while running should be refused")
	}

	s.RequestPause()
	if !s.Quit() {
		t.Fatal("quit from pause should succeed")
	}
	if s.Phase() != PhaseTitle {
		t.Errorf("phase = %v, want title", s.Phase())
	}
	if s.Quit() {
		t.Error("quit from the title should report false")
	}
	if !s.RequestStart() || s.Phase() != PhaseRunning {
		t.Error("start from the title after quitting should work")
	}
}

func TestJumpEvent(t *testing.T) {
	s, rec := newStartedSession(t)
	s.RequestJump()
	s.Frame(frame)

	if rec.count(EventJump) != 1 {
		t.Errorf("jump events = %d, want 1", rec.count(EventJump))
	}
	if s.player.onGround {
		t.Error("player should be airborne")
	}
}

func TestFrameAccrualAndClamp(t *testing.T) {
	s, _ := newStartedSession(t)

	s.Frame(1.0)

	if math.Abs(s.Distance()-260*0.05) > 1e-9 {
		t.Errorf("distance = %v, want delta clamped to 0.05s", s.Distance())
	}
	wantScore := 0.05 * 14 * (260.0 / 220)
	if math.Abs(s.Score()-wantScore) > 1e-9 {
		t.Errorf("score = %v, want %v", s.Score(), wantScore)
	}
	if math.Abs(s.fun-0.2) > 1e-9 {
		t.Errorf("fun = %v, want 0.2", s.fun)
	}
	if want := s.pace.Speed(1, s.Score(), 1); s.speed != want {
		t.Errorf("speed = %v, want %v", s.speed, want)
	}

	s.Frame(-1)
	if math.Abs(s.Distance()-260*0.05) > 1e-9 {
		t.Error("negative delta should not move the session")
	}
}

func TestComboFeedsFun(t *testing.T) {
	s, _ := newStartedSession(t)
	s.combo = 5
	s.accrue(0.05)

	want := 0.05*4 + 0.05*5*0.35
	if math.Abs(s.fun-want) > 1e-9 {
		t.Errorf("fun = %v, want %v", s.fun, want)
	}
}

func TestSpawnCollidesOnReleaseFrame(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.World.Width = 100 // spawn point lands on the player
	catalog := config.SegmentCatalog{Segments: []config.SegmentTemplate{{
		Name:       "point-blank",
		Difficulty: 1,
		Length:     3000,
		Obstacles: []config.ObstaclePlacement{
			{At: 0, Type: config.ObstacleGround, Width: 40, Height: 90},
		},
	}}}

	s := NewSession(cfg, catalog, Options{Random: &seqRandom{}})
	s.Start()
	s.Frame(frame)

	if s.Health() != 2 {
		t.Errorf("health = %d, a spawn released this frame should collide this frame", s.Health())
	}
}

func TestSpawnsReleaseInOrder(t *testing.T) {
	catalog := config.SegmentCatalog{Segments: []config.SegmentTemplate{{
		Name:       "burst",
		Difficulty: 1,
		Length:     1000,
		Obstacles:  []config.ObstaclePlacement{{At: 10, Type: config.ObstacleAir, Lift: 400}},
		Orbs:       []config.OrbPlacement{{At: 5, Height: 300}, {At: 20, Height: 300}},
	}}}

	s := NewSession(config.DefaultRunnerConfig(), catalog, Options{Random: &seqRandom{}})
	s.Start()
	s.distance = 15
	s.releaseSpawns()

	if s.orbs.Len() != 1 || s.obstacles.Len() != 1 {
		t.Errorf("released %d orbs and %d obstacles, want 1 and 1", s.orbs.Len(), s.obstacles.Len())
	}
	if s.nextSpawn != 2 {
		t.Errorf("next spawn index = %d, want 2", s.nextSpawn)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newStartedSession(t)
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))
	s.orbs.items = append(s.orbs.items, Orb{X: 600, Y: 300, Radius: 14})

	snap := s.Snapshot()
	snap.Obstacles[0].X = -999
	snap.Orbs[0].Collected = true

	if s.obstacles.items[0].X == -999 || s.orbs.items[0].Collected {
		t.Error("snapshot shares memory with the session")
	}
	if snap.LevelName != "Sunrise Sprint" || snap.MaxHealth != 3 || snap.Target != 2500 {
		t.Errorf("snapshot HUD fields = %q %d %v", snap.LevelName, snap.MaxHealth, snap.Target)
	}
}

func TestSnapshotPose(t *testing.T) {
	s, _ := newStartedSession(t)
	if got := s.Snapshot().Player.Pose; got != PoseRun {
		t.Errorf("pose = %v, want run", got)
	}

	s.player.TryAttack()
	if got := s.Snapshot().Player.Pose; got != PoseAttack {
		t.Errorf("pose = %v, want attack", got)
	}

	s.player.Hurt()
	if got := s.Snapshot().Player.Pose; got != PoseHurt {
		t.Errorf("pose = %v, want hurt", got)
	}

	s.distance = s.plan.Target
	s.Frame(frame)
	if got := s.Snapshot().Player.Pose; got != PoseVictory {
		t.Errorf("pose = %v, want victory after a level", got)
	}
}

func TestToastExpires(t *testing.T) {
	s, _ := newStartedSession(t)
	s.player.TryAttack()
	s.obstacles.items = append(s.obstacles.items, overlappingObstacle(s))
	s.resolveCollisions()

	if s.Snapshot().Toast != "Pow!" {
		t.Fatalf("toast = %q, want Pow!", s.Snapshot().Toast)
	}
	for i := 0; i < 80; i++ {
		s.Frame(frame)
	}
	if s.Snapshot().Toast != "" {
		t.Errorf("toast = %q after it should have expired", s.Snapshot().Toast)
	}
}
