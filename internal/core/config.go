package core

// RuntimeConfig contains configuration passed to a game at reset.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Upper bound on animation frames per second
	Seed      int64 // RNG seed for deterministic spawns
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	MaxTile   int  // Highest tile currently on the grid
	HighScore int  // Best tile ever reached for this variant
	GameOver  bool // No move can change the grid
	CanUndo   bool // A one-level undo snapshot is available
}

// HighScoreStore persists a single best value per key.
// Implementations must keep the larger of the stored and offered value.
type HighScoreStore interface {
	HighScore(key string) (int, error)
	SaveHighScore(key string, value int) error
}
