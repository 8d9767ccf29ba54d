package runner

import "github.com/vovakirdan/orb-dash/internal/core"

// Toast is the default Notifier: it keeps the latest message visible for a
// fixed duration, advanced by the session clock.
type Toast struct {
	message  string
	timer    float64
	duration float64
}

// NewToast creates a toast that shows each message for duration seconds.
func NewToast(duration float64) *Toast {
	return &Toast{duration: duration}
}

// Notify replaces the current message and restarts the timer.
func (t *Toast) Notify(msg string) {
	t.message = msg
	t.timer = t.duration
}

// Update advances the display timer.
func (t *Toast) Update(dt float64) {
	t.timer = core.Countdown(t.timer, dt)
	if t.timer == 0 {
		t.message = ""
	}
}

// Message returns the visible message, or "" if none.
func (t *Toast) Message() string {
	return t.message
}

// Clear hides the current message.
func (t *Toast) Clear() {
	t.message = ""
	t.timer = 0
}
