// Package t2048 implements the sliding-tile merge puzzle: the grid, the
// animated move engine, one-level undo and the high score.
package t2048

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant is a named spawn and undo policy.
type Variant struct {
	ID              string
	Title           string
	FourProbability float64 // Chance a spawned tile is a 4 instead of a 2
	Undo            bool
}

// Built-in variants.
var (
	VariantStandard = Variant{ID: "2048", Title: "2048", FourProbability: 0.10, Undo: true}
	VariantClassic  = Variant{ID: "2048_classic", Title: "2048 (Classic)", FourProbability: 0, Undo: true}
)

// Game implements the 2048 puzzle.
type Game struct {
	variant     Variant
	fourProb    float64
	undoEnabled bool
	timings     Timings
	palette     *Palette

	grid    *Grid
	prev    *Grid // Undo snapshot
	scratch *Grid // Pre-move copy, promoted to prev when the move changes the grid
	canUndo bool

	pool  *tilePool
	state GameStateType
	moves int

	rng       *rand.Rand
	highScore int
	scores    core.HighScoreStore
	logger    *log.Logger
}

func init() {
	for _, v := range []Variant{VariantStandard, VariantClassic} {
		registry.Register(v.ID, v.Title, func(env registry.Env) (registry.Game, error) {
			g, err := New(v, env)
			if err != nil {
				return nil, err
			}
			return g, nil
		})
	}
}

// New creates a game for variant v. Config overrides for spawn and undo take
// precedence over the variant's own policy. Reset must be called before play.
func New(v Variant, env registry.Env) (*Game, error) {
	cfg := env.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("t2048: invalid config: %w", err)
	}

	palette, err := NewPalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("t2048: %w", err)
	}

	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	n := cfg.Grid.Size
	g := &Game{
		variant:     v,
		fourProb:    v.FourProbability,
		undoEnabled: v.Undo,
		timings: Timings{
			SlideStep: cfg.Animation.SlideStep(),
			Pulse:     cfg.Animation.Pulse(),
			Vanish:    cfg.Animation.Vanish(),
		},
		palette: palette,
		grid:    NewGrid(n),
		prev:    NewGrid(n),
		scratch: NewGrid(n),
		pool:    newTilePool(2 * n * n),
		state:   StatePlaying,
		rng:     rand.New(rand.NewSource(1)),
		scores:  env.Scores,
		logger:  logger.With("game", v.ID),
	}
	if p := cfg.Spawn.FourProbability; p != nil {
		g.fourProb = *p
	}
	if u := cfg.Undo.Enabled; u != nil {
		g.undoEnabled = *u
	}

	if g.scores != nil {
		best, err := g.scores.HighScore(v.ID)
		if err != nil {
			g.logger.Warn("cannot load high score", "err", err)
		} else {
			g.highScore = best
		}
	}

	return g, nil
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset reseeds the spawn RNG from cfg and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig, now time.Time) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.newGame(now)
}

// newGame empties the board and drops the two starting tiles.
func (g *Game) newGame(now time.Time) {
	g.grid.Clear()
	g.canUndo = false
	g.pool.reset()
	g.state = StatePlaying
	g.moves = 0

	g.DropTile(2, now)
	g.DropTile(2, now)
	g.updateHighScore()

	g.logger.Debug("new game", "size", g.grid.Size())
}

// Move slides every line toward dir. The render pool is rebuilt even when
// nothing moves. On a change it arms undo, spawns a tile, updates the high
// score and checks for game over. Reports whether the grid changed.
func (g *Game) Move(dir Direction, now time.Time) bool {
	g.pool.reset()
	g.scratch.CopyFrom(g.grid)

	c := compactor{pool: g.pool, timings: g.timings, now: now}
	if !g.grid.ForEachLine(dir, c.compact) {
		return false
	}

	g.prev, g.scratch = g.scratch, g.prev
	g.canUndo = g.undoEnabled
	g.moves++

	g.DropTile(g.spawnValue(), now)
	g.updateHighScore()

	if g.state != StateGameOver && g.grid.IsGameOver() {
		g.state = StateGameOver
		g.logger.Debug("game over", "max", g.grid.Max(), "moves", g.moves)
	}
	return true
}

// Undo restores the grid from before the last move. Only one level is kept,
// so a second Undo without an intervening move does nothing.
func (g *Game) Undo(now time.Time) bool {
	if !g.canUndo {
		return false
	}

	g.grid.CopyFrom(g.prev)
	g.canUndo = false
	g.pool.reset()
	g.state = StatePlaying

	n := g.grid.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if v := g.grid.at(x, y); v != 0 {
				g.pool.alloc(x, y, v).animatePulse(now, g.timings)
			}
		}
	}
	return true
}

// DropTile places value in a random empty cell: it starts at a uniformly
// random index and scans forward, wrapping, to the first empty cell.
// Returns false if the grid is full.
func (g *Game) DropTile(value int, now time.Time) bool {
	cells := g.grid.cells
	n := len(cells)
	start := g.rng.Intn(n)

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if cells[idx] != 0 {
			continue
		}
		cells[idx] = value
		size := g.grid.Size()
		g.pool.alloc(idx%size, idx/size, value).animatePulse(now, g.timings)
		return true
	}
	return false
}

func (g *Game) spawnValue() int {
	if g.rng.Float64() < g.fourProb {
		return 4
	}
	return 2
}

// Apply handles a player action. Directions always rebuild the render pool,
// so they always ask for a redraw.
func (g *Game) Apply(a core.Action, now time.Time) bool {
	if a.IsDirection() {
		g.Move(actionDirs[a], now)
		return true
	}

	switch a {
	case core.ActionReset:
		if g.state != StateGameOver {
			return false
		}
		g.newGame(now)
	case core.ActionUndo:
		return g.Undo(now)
	default:
		return false
	}
	return true
}

var actionDirs = map[core.Action]Direction{
	core.ActionLeft:  DirLeft,
	core.ActionUp:    DirUp,
	core.ActionRight: DirRight,
	core.ActionDown:  DirDown,
}

// Tick advances every live tile to now. Reports whether any is still animating.
func (g *Game) Tick(now time.Time) bool {
	more := false
	live := g.pool.live()
	for i := range live {
		if live[i].Update(now) {
			more = true
		}
	}
	return more
}

// updateHighScore raises and persists the high score if the board beats it.
func (g *Game) updateHighScore() {
	best := g.grid.Max()
	if best <= g.highScore {
		return
	}
	g.highScore = best

	if g.scores == nil {
		return
	}
	if err := g.scores.SaveHighScore(g.variant.ID, best); err != nil {
		g.logger.Warn("cannot save high score", "value", best, "err", err)
	}
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		MaxTile:   g.grid.Max(),
		HighScore: g.highScore,
		GameOver:  g.state == StateGameOver,
		CanUndo:   g.canUndo,
	}
}
