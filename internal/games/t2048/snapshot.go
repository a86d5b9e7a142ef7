package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Variant   string
	Size      int
	Grid      []int // Row-major
	State     GameStateType
	CanUndo   bool
	MaxTile   int
	HighScore int
	Moves     int // Moves that changed the grid since the last reset
	LiveTiles int // Render tiles allocated since the last move
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Variant:   g.variant.ID,
		Size:      g.grid.Size(),
		Grid:      g.grid.Values(),
		State:     g.state,
		CanUndo:   g.canUndo,
		MaxTile:   g.grid.Max(),
		HighScore: g.highScore,
		Moves:     g.moves,
		LiveTiles: len(g.pool.live()),
	}
}
