package t2048

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOutOfBounds is returned by Grid accessors for coordinates outside the grid.
var ErrOutOfBounds = errors.New("t2048: grid index out of bounds")

// Direction represents a move direction.
type Direction int

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// LineGeometry maps a line buffer index back onto the grid:
// index i lives at (OriginX + i*DX, OriginY + i*DY).
type LineGeometry struct {
	OriginX, OriginY int
	DX, DY           int
}

// At returns the grid coordinates of buffer index i.
func (g LineGeometry) At(i int) (x, y int) {
	return g.OriginX + i*g.DX, g.OriginY + i*g.DY
}

// LineFunc processes one line oriented so that compaction goes toward index 0.
// It may mutate line freely and reports whether anything moved.
type LineFunc func(line []int, geo LineGeometry) bool

// Grid is a square board of cell values; 0 means empty.
// Cells are stored row-major.
type Grid struct {
	size  int
	cells []int
	line  []int // scratch buffer reused by ForEachLine
}

// NewGrid creates an empty size×size grid.
func NewGrid(size int) *Grid {
	return &Grid{
		size:  size,
		cells: make([]int, size*size),
		line:  make([]int, size),
	}
}

// Size returns the number of cells per side.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

func (g *Grid) index(x, y int) (int, error) {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return 0, fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, x, y, g.size, g.size)
	}
	return y*g.size + x, nil
}

// Get returns the value at (x, y).
func (g *Grid) Get(x, y int) (int, error) {
	i, err := g.index(x, y)
	if err != nil {
		return 0, err
	}
	return g.cells[i], nil
}

// Set stores v at (x, y).
func (g *Grid) Set(x, y, v int) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.cells[i] = v
	return nil
}

// at is the unchecked accessor used by in-package code with known-good coordinates.
func (g *Grid) at(x, y int) int {
	return g.cells[y*g.size+x]
}

// Contains reports whether any cell holds v.
func (g *Grid) Contains(v int) bool {
	return slices.Contains(g.cells, v)
}

// ContainsFunc reports whether any cell satisfies pred.
func (g *Grid) ContainsFunc(pred func(int) bool) bool {
	return slices.ContainsFunc(g.cells, pred)
}

// Max returns the largest cell value.
func (g *Grid) Max() int {
	return slices.Max(g.cells)
}

// Clear empties every cell.
func (g *Grid) Clear() {
	clear(g.cells)
}

// CopyFrom overwrites g with the contents of other. Sizes must match.
func (g *Grid) CopyFrom(other *Grid) {
	copy(g.cells, other.cells)
}

// Equal reports whether both grids hold the same values.
func (g *Grid) Equal(other *Grid) bool {
	return g.size == other.size && slices.Equal(g.cells, other.cells)
}

// Values returns a row-major copy of the cells.
func (g *Grid) Values() []int {
	return slices.Clone(g.cells)
}

// Load replaces the cells from a row-major slice of rows.
// Rows shorter than the grid leave the remaining cells empty.
func (g *Grid) Load(rows [][]int) error {
	if len(rows) > g.size {
		return fmt.Errorf("%w: %d rows on %dx%d grid", ErrOutOfBounds, len(rows), g.size, g.size)
	}
	g.Clear()
	for y, row := range rows {
		for x, v := range row {
			if err := g.Set(x, y, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForEachLine calls fn once per row (left/right) or column (up/down), with the
// line reversed for right/down so fn always compacts toward index 0. Each line
// is written back after fn returns. Reports whether any fn reported movement.
func (g *Grid) ForEachLine(dir Direction, fn LineFunc) bool {
	n := g.size
	last := n - 1
	moved := false

	for k := 0; k < n; k++ {
		var geo LineGeometry
		switch dir {
		case DirLeft:
			geo = LineGeometry{OriginX: 0, OriginY: k, DX: 1, DY: 0}
		case DirUp:
			geo = LineGeometry{OriginX: k, OriginY: 0, DX: 0, DY: 1}
		case DirRight:
			geo = LineGeometry{OriginX: last, OriginY: k, DX: -1, DY: 0}
		case DirDown:
			geo = LineGeometry{OriginX: k, OriginY: last, DX: 0, DY: -1}
		default:
			return false
		}

		for i := range g.line {
			x, y := geo.At(i)
			g.line[i] = g.at(x, y)
		}
		if fn(g.line, geo) {
			moved = true
		}
		for i, v := range g.line {
			x, y := geo.At(i)
			g.cells[y*n+x] = v
		}
	}

	return moved
}

// IsGameOver reports whether the grid is full and no two neighbours
// (right or below) share a value.
func (g *Grid) IsGameOver() bool {
	n := g.size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := g.at(x, y)
			if v == 0 {
				return false
			}
			if x+1 < n && g.at(x+1, y) == v {
				return false
			}
			if y+1 < n && g.at(x, y+1) == v {
				return false
			}
		}
	}
	return true
}

// String renders the grid as rows of numbers, for debugging and test output.
func (g *Grid) String() string {
	var out []byte
	for y := 0; y < g.size; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		out = fmt.Append(out, g.cells[y*g.size:(y+1)*g.size])
	}
	return string(out)
}
