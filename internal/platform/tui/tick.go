// Package tui provides the Bubble Tea integration for Orb Dash.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. It carries the wall
// clock time of the tick so the model can measure frame deltas, and the ID
// of the model whose loop scheduled it.
type TickMsg struct {
	At time.Time
	ID uint64
}

var loopIDs atomic.Uint64

// nextLoopID returns a unique tick loop identifier.
func nextLoopID() uint64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, id uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, ID: id}
	})
}

// frameDelta returns the time since the previous tick, or the nominal frame
// interval for the first tick.
func frameDelta(prev, now time.Time, nominal time.Duration) time.Duration {
	if prev.IsZero() || now.Before(prev) {
		return nominal
	}
	return now.Sub(prev)
}
