// Package registry provides a global registry of runner variants.
// Variants register themselves in init() functions, allowing the drivers
// to discover and build sessions without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/runner"
)

// ErrUnknownVariant is returned by Create for an unregistered ID.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Options are the per-session knobs a driver passes to a Factory.
type Options struct {
	// ConfigPath overrides the YAML search path when non-empty.
	ConfigPath string
	// Difficulty preset applied on top of the loaded configuration.
	Difficulty config.DifficultyPreset
	// Seed for the obstacle and cloud RNG.
	Seed int64
	// Store holds the variant's high score. Nil keeps it in memory.
	Store runner.HighScoreStore
}

// VariantInfo contains metadata about a registered variant.
type VariantInfo struct {
	ID    string
	Title string
}

// Factory builds a new idle simulation of one variant.
type Factory func(opts Options) (*runner.Simulation, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Panics if a variant with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered variants, sorted by ID.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]VariantInfo, 0, len(factories))
	for id := range factories {
		result = append(result, VariantInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a new simulation of the variant id.
func Create(id string, opts Options) (*runner.Simulation, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}

	sim, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: build %q: %w", id, err)
	}
	return sim, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
