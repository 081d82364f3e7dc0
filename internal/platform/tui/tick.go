// Package tui provides the Bubble Tea integration for the game platform.
// It handles the terminal UI loop, input mapping, and rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxElapsed caps the time a single tick may cover, so a stalled terminal
// does not fling projectiles across the screen in one step.
const maxElapsed = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// elapsedSince returns the time between two ticks, clamped to
// [0, maxElapsed]. The first tick has no predecessor and reports zero.
func elapsedSince(last, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	d := now.Sub(last)
	switch {
	case d < 0:
		return 0
	case d > maxElapsed:
		return maxElapsed
	}
	return d
}
