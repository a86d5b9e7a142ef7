package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	hudRows = 2
	// Terminal cells are roughly twice as tall as wide; one board unit
	// spans two columns and one row.
	unitCols = 2
	minTile  = 2
)

// Layout is where the board lands on a screen of a given size.
type Layout struct {
	TileSize int // Board units per tile
	Board    core.Rect
}

// ComputeLayout centers the board below the HUD. ok is false when the
// screen is too small for tiles of at least minTile units.
func ComputeLayout(screenW, screenH, gridSize int) (l Layout, ok bool) {
	if gridSize <= 0 {
		return Layout{}, false
	}
	tile := min(screenW/unitCols, screenH-hudRows) / gridSize
	if tile < minTile {
		return Layout{}, false
	}

	w := tile * gridSize * unitCols
	h := tile * gridSize
	x := (screenW - w) / 2
	y := hudRows + (screenH-hudRows-h)/2
	return Layout{TileSize: tile, Board: core.NewRect(x, y, w, h)}, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	layout, ok := ComputeLayout(dst.Width(), dst.Height(), g.grid.Size())
	if !ok {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst, layout.Board)

	live := g.pool.live()
	for i := range live {
		g.drawTile(dst, &live[i], layout)
	}

	if g.state == StateGameOver {
		cx, cy := layout.Board.Center()
		lines := []string{"GAME OVER", fmt.Sprintf("Max tile: %d", g.grid.Max()), "Space: new game"}
		if g.canUndo {
			lines = append(lines, "U: undo last move")
		}
		drawOverlay(dst, cx, cy, lines...)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorRed)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

// renderHUD draws the title, current and best tile, and undo availability
// across the two rows above the board.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	dst.DrawText(board.X, 0, g.variant.Title, core.ColorWhite)

	scores := fmt.Sprintf("Max %d  Best %d", g.grid.Max(), g.highScore)
	dst.DrawText(max(board.Right()-len(scores), board.X), 0, scores, core.ColorWhite)

	switch {
	case !g.undoEnabled:
		dst.DrawText(board.X, 1, "Undo off", core.ColorDim)
	case g.canUndo:
		dst.DrawText(board.X, 1, "U: undo", core.ColorGreen)
	default:
		dst.DrawText(board.X, 1, "U: undo", core.ColorDim)
	}
}

// drawTile paints one render tile: translated along its slide vector,
// scaled about its cell center, filled, outlined when large enough and
// labelled with its display value.
func (g *Game) drawTile(dst *core.Screen, t *Tile, l Layout) {
	if !t.Visible || t.Scale <= 0 {
		return
	}

	unit := float64(l.TileSize)
	offX, offY := t.Offset()
	cx := float64(l.Board.X) + (float64(t.X)+0.5+offX)*unit*unitCols
	cy := float64(l.Board.Y) + (float64(t.Y)+0.5+offY)*unit

	w := round(unit * unitCols * t.Scale)
	h := round(unit * t.Scale)
	r := core.NewRect(round(cx-float64(w)/2), round(cy-float64(h)/2), w, h)
	if r.Empty() {
		return
	}

	value := t.DisplayValue()
	style := g.palette.Style(value)

	dst.FillRect(r, style.Fill)
	if h >= 3 && w >= 4 {
		dst.DrawBox(r, style.Stroke)
	}

	label := strconv.Itoa(value)
	if len(label) > w {
		label = label[:w]
	}
	dst.DrawText(r.X+(w-len(label))/2, r.Y+h/2, label, style.Text)
}

// drawOverlay draws a boxed block of centered lines.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.FillRect(box, core.ColorBlack)
	dst.DrawBox(box, core.ColorRed)

	for i, line := range lines {
		fg := core.ColorWhite
		if i == 0 {
			fg = core.ColorRed
		}
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line, fg)
	}
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
