// Package variants registers the built-in runner variants. Import it for its
// side effects:
//
//	import _ "github.com/vovakirdan/dino-runner/internal/variants"
package variants

import (
	"fmt"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/runner"
)

const (
	Classic = "classic"
	Lite    = "lite"
)

func init() {
	registry.Register(Classic, "Dino Runner", factory(Classic))
	registry.Register(Lite, "Dino Runner Lite", factory(Lite))
}

// factory loads the variant's YAML, applies the difficulty preset and builds
// an idle simulation.
func factory(variant string) registry.Factory {
	return func(opts registry.Options) (*runner.Simulation, error) {
		cfg, err := LoadConfig(variant, opts.ConfigPath, opts.Difficulty)
		if err != nil {
			return nil, err
		}
		return runner.New(cfg, opts.Store, opts.Seed), nil
	}
}

// LoadConfig resolves the configuration a variant's sessions run with.
func LoadConfig(variant, path string, preset config.DifficultyPreset) (config.RunnerConfig, error) {
	cfg, err := config.Load(variant, path)
	if err != nil {
		return config.RunnerConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.RunnerConfig{}, fmt.Errorf("variants: %s after %q preset: %w", variant, preset, err)
	}
	return cfg, nil
}
