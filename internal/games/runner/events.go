package runner

// EventKind identifies something that happened during a session.
type EventKind string

const (
	EventLevelStart     EventKind = "level_start"
	EventJump           EventKind = "jump"
	EventAttack         EventKind = "attack"
	EventSmash          EventKind = "smash"
	EventOrb            EventKind = "orb"
	EventComboMilestone EventKind = "combo_milestone"
	EventHurt           EventKind = "hurt"
	EventLevelComplete  EventKind = "level_complete"
	EventGameOver       EventKind = "game_over"
	EventNewBest        EventKind = "new_best"
	EventPersistError   EventKind = "persist_error"   // best score could not be saved
	EventLoadError      EventKind = "best_load_error" // stored best could not be read
)

// EventKinds lists every kind a session can emit.
var EventKinds = []EventKind{
	EventLevelStart, EventJump, EventAttack, EventSmash, EventOrb, EventComboMilestone,
	EventHurt, EventLevelComplete, EventGameOver, EventNewBest, EventPersistError, EventLoadError,
}

// Event is a snapshot of session counters at the moment something happened.
type Event struct {
	Kind   EventKind
	Level  int
	Score  float64
	Combo  int
	Health int
	Gain   float64 // score awarded by this event, if any
	Err    error   // set for EventPersistError and EventLoadError
}

// EventSink receives session events. Implementations must not block.
type EventSink interface {
	OnEvent(e Event)
}

// MultiSink fans an event out to several sinks in order.
type MultiSink []EventSink

// OnEvent forwards e to every non-nil sink.
func (m MultiSink) OnEvent(e Event) {
	for _, s := range m {
		if s != nil {
			s.OnEvent(e)
		}
	}
}

// Notifier shows short feedback messages ("Pow!", "Ouch!").
// The implementation owns how long a message stays visible.
type Notifier interface {
	Notify(msg string)
}

// BestStore persists the best score across sessions.
type BestStore interface {
	LoadBest() (float64, error)
	SaveBest(score float64) error
}

// MemoryBest is a BestStore that keeps the value in memory.
type MemoryBest struct {
	Best float64
}

// LoadBest returns the stored value.
func (m *MemoryBest) LoadBest() (float64, error) { return m.Best, nil }

// SaveBest replaces the stored value.
func (m *MemoryBest) SaveBest(score float64) error {
	m.Best = score
	return nil
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
