// Package tui provides the Bubble Tea frame driver for the runner: key
// input, fixed-rate ticking, terminal rendering, the scoreboard and the SSH
// server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastModelID atomic.Int64

// nextModelID hands every game screen its own tick chain identity.
func nextModelID() int {
	return int(lastModelID.Add(1))
}

// TickMsg triggers one simulation step of the model with the matching ID.
// Ticks still in flight for a screen that was left are dropped.
type TickMsg struct {
	ID   int
	Time time.Time
}

// tickCmd schedules the next tick of model id at the given rate.
func tickCmd(id, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

// ticksFor converts a duration to a whole number of ticks, at least one.
func ticksFor(d time.Duration, tickRate int) int {
	n := int(d * time.Duration(tickRate) / time.Second)
	if n < 1 {
		return 1
	}
	return n
}
