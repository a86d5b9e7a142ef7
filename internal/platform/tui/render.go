package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type cellColors struct {
	fg, bg core.Color
}

func (c cellColors) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(c.bg))
	}
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := make(map[cellColors]lipgloss.Style)

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			colors := cellColors{cell.Fg, cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{cell.Fg, cell.Bg}) != colors {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if colors == (cellColors{}) {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[colors]
			if !ok {
				style = colors.style()
				styles[colors] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
