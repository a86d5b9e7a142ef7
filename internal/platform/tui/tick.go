// Package tui provides the Bubble Tea integration for the puzzle.
// It schedules animation frames, maps keys to actions and draws the
// game's screen buffer with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg delivers the timestamp of one animation frame.
type FrameMsg time.Time

// frameCmd returns a command that delivers a single FrameMsg after one
// frame interval. Frames are requested on demand, never on a free-running loop.
func frameCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
