// Package tui is the terminal front end of the engine: the Bubble Tea
// programs for playing, the menu and the scoreboard, and the SSH server
// that runs them per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate is used when the configured rate is not positive.
const defaultTickRate = 35

// TickMsg is sent to trigger a game step.
type TickMsg time.Time

// frameInterval is the time between two steps at tickRate frames per second.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next step.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
