package config

import (
	"embed"
	"fmt"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// embeddedYAML returns the bundled YAML for a variant.
func embeddedYAML(variant string) ([]byte, error) {
	data, err := defaultsFS.ReadFile("defaults/" + variant + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("config: no bundled config for %q: %w", variant, err)
	}
	return data, nil
}

// Default returns the classic runner configuration.
func Default() RunnerConfig {
	return RunnerConfig{
		Title: "Dino Runner",
		Field: FieldConfig{
			Width:   800,
			Height:  200,
			GroundY: 190,
		},
		Player: PlayerConfig{
			X:          50,
			Width:      40,
			Height:     40,
			DuckHeight: 20,
		},
		Physics: PhysicsConfig{
			JumpVelocity: 15,
			Gravity:      0.8,
		},
		Speed: SpeedConfig{
			Initial:   3,
			Increment: 0.5,
			Interval:  100,
		},
		Scoring: ScoringConfig{Reward: 10},
		Spawn: SpawnConfig{
			BaseThreshold: 80,
			ScoreDivisor:  10,
			MinThreshold:  40,
		},
		Collision: CollisionConfig{Margin: 5},
		Clouds: CloudConfig{
			Enabled:  true,
			Interval: 200,
			Speed:    0.5,
			Width:    60,
			Height:   30,
			MinY:     20,
			YRange:   60,
		},
		Kinds: []ObstacleKind{
			{Name: "cactus_small", Width: 20, Height: 35, Y: 155, Color: "#228B22"},
			{Name: "cactus_large", Width: 30, Height: 50, Y: 140, Color: "#006400"},
			{Name: "bird", Width: 35, Height: 25, Y: 100, Flying: true, Color: "#8B4513"},
			{Name: "pterodactyl", Width: 40, Height: 30, Y: 80, Flying: true, Color: "#4B0082"},
		},
		Palette: Palette{
			Player:        "#4ECDC4",
			PlayerDucking: "#FF6B6B",
			Ground:        "#8B4513",
			GroundDetail:  "#654321",
			SkyTop:        "#87CEEB",
			SkyBottom:     "#E0F6FF",
			Cloud:         "#FFFFFF",
			Text:          "#333333",
		},
	}
}

// DefaultLite returns the single-cactus runner configuration.
func DefaultLite() RunnerConfig {
	cfg := Default()
	cfg.Title = "Dino Runner Lite"
	cfg.Player.DuckHeight = cfg.Player.Height
	cfg.Speed = SpeedConfig{Initial: 3}
	cfg.Spawn = SpawnConfig{BaseThreshold: 100}
	cfg.Collision.Margin = 0
	cfg.Clouds = CloudConfig{}
	cfg.Kinds = []ObstacleKind{
		{Name: "cactus", Width: 20, Height: 30, Y: 160, Color: "#E17055"},
	}
	cfg.Palette = Palette{
		Player:        "#00B894",
		PlayerDucking: "#00B894",
		Ground:        "#2D3436",
		GroundDetail:  "#2D3436",
		Text:          "#636E72",
	}
	return cfg
}

// fallback returns the hard-coded configuration for a variant.
func fallback(variant string) RunnerConfig {
	if variant == "lite" {
		return DefaultLite()
	}
	return Default()
}
