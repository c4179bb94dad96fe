// Package registry provides a global registry for game factories.
// Game variants register themselves in init() functions, allowing the
// platform to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and terminal output.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "breakout").
	// Used for CLI commands and replay storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Breakout").
	Title() string

	// Reset initializes the game state.
	// The RuntimeConfig provides screen dimensions and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Left, Launch, Pause, etc.).
	// The result reports whether the platform should keep ticking.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, lives, phase).
	State() core.GameState
}

// Resizer is implemented by games that adapt to terminal size changes
// without a Reset.
type Resizer interface {
	Resize(width, height int)
}

// Recordable is implemented by games whose rounds can be stored and replayed.
// A replay is the config YAML plus one InputFrame per Step; re-running it on
// a fresh instance must reproduce SnapshotHash exactly.
type Recordable interface {
	Game

	// ConfigYAML returns the configuration the current round runs with.
	ConfigYAML() ([]byte, error)

	// UseConfigYAML pins the configuration for subsequent Resets.
	UseConfigYAML(data []byte) error

	// SnapshotHash fingerprints the full simulation state.
	SnapshotHash() uint64
}

// StatusListener receives score, lives and phase changes as they happen.
type StatusListener interface {
	StatsChanged(score, lives int)
	PhaseChanged(from, to string)
}

// Observable is implemented by games that report status changes to a listener.
// The listener stays attached across Resets.
type Observable interface {
	SetStatusListener(l StatusListener)
}

// StatusBar is implemented by games that draw a status area on the top rows
// of the screen.
type StatusBar interface {
	StatusRows() int
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
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

// CreateRecordable instantiates a game by ID and checks that it supports replays.
func CreateRecordable(id string) (Recordable, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	r, ok := g.(Recordable)
	if !ok {
		return nil, fmt.Errorf("registry: game %q does not support replays", id)
	}
	return r, nil
}
