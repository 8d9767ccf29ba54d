package runner

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/orb-dash/internal/config"
)

// seqRandom replays a fixed sequence of values, cycling when exhausted.
type seqRandom struct {
	vals []float64
	i    int
}

func (r *seqRandom) Float64() float64 {
	if len(r.vals) == 0 {
		return 0.5
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// recorder collects session events.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind EventKind) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}

// notes collects notifier messages.
type notes struct {
	msgs []string
}

func (n *notes) Notify(msg string) {
	n.msgs = append(n.msgs, msg)
}

func defaultCatalog(t *testing.T) config.SegmentCatalog {
	t.Helper()
	var catalog config.SegmentCatalog
	if err := yaml.Unmarshal(config.GetDefaultYAML("segments"), &catalog); err != nil {
		t.Fatalf("failed to parse embedded segments: %v", err)
	}
	return catalog
}

// emptyCatalog has no entities, so nothing can collide.
func emptyCatalog() config.SegmentCatalog {
	return config.SegmentCatalog{Segments: []config.SegmentTemplate{
		{Name: "empty", Difficulty: 1, Length: 500},
	}}
}

// newStartedSession returns a running level 1 session without entities.
func newStartedSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewSession(config.DefaultRunnerConfig(), emptyCatalog(), Options{
		Random: &seqRandom{},
		Sink:   rec,
	})
	s.Start()
	return s, rec
}

// overlappingObstacle sits right on the default player.
func overlappingObstacle(s *Session) Obstacle {
	return Obstacle{
		X:      150,
		Y:      s.cfg.World.GroundY(),
		Width:  60,
		Height: 90,
		Kind:   config.ObstacleGround,
	}
}

// overlappingOrb floats inside the default player's hitbox.
func overlappingOrb(s *Session) Orb {
	return Orb{X: 170, Y: s.cfg.World.GroundY() - 100, Radius: 14}
}
