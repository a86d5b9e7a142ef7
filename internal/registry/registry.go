// Package registry provides a global registry for game variant factories.
// Variants register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no Bubble Tea dependency: the platform maps
// keys to actions, schedules frames and turns the screen into terminal output.
type Game interface {
	// ID returns the variant identifier (e.g., "2048").
	// Used for CLI arguments and high-score keys.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new game. now is the animation clock.
	Reset(cfg core.RuntimeConfig, now time.Time)

	// Apply handles one player action and reports whether a redraw is needed.
	Apply(a core.Action, now time.Time) bool

	// Tick advances animations to now and reports whether another frame
	// is needed.
	Tick(now time.Time) bool

	// Render draws the current state into dst, resizing nothing.
	Render(dst *core.Screen)

	// State returns the platform-facing summary.
	State() core.GameState
}

// Env carries the collaborators a variant is built with.
type Env struct {
	Config config.T2048Config
	Scores core.HighScoreStore // May be nil: high score stays in memory
	Logger *log.Logger         // May be nil: logging is discarded
}

// GameInfo contains metadata about a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a variant.
type Factory func(env Env) (Game, error)

type entry struct {
	title   string
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a variant factory to the registry.
// Panics if a variant with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered variants, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a variant by its ID.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := e.factory(env)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// unregister removes a variant. Tests use it to clean up after themselves.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}
