// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, so the platform can list
// and instantiate them without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/chroma-arcade/internal/core"
)

// Game is the interface every mini-game implements.
// Games contain pure logic with no terminal dependency; the platform
// handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier ("sort", "rush", "hunt").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset returns the game to its intro screen with fresh state.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Describer is implemented by games that provide a one-line description
// for the menu and the list command.
type Describer interface {
	Description() string
}

// Checker is implemented by games whose Reset can fail, for example on an
// unreadable config file. Err reports the failure of the last Reset.
type Checker interface {
	Err() error
}

// Check resets g with cfg and returns its setup error, if it reports one.
// Callers use it to refuse to start a game that could not load its settings.
func Check(g Game, cfg core.RuntimeConfig) error {
	g.Reset(cfg)
	if c, ok := g.(Checker); ok {
		if err := c.Err(); err != nil {
			return fmt.Errorf("%s: %w", g.ID(), err)
		}
	}
	return nil
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
