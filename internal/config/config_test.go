package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		variant string
		want    RunnerConfig
	}{
		{"classic", Default()},
		{"lite", DefaultLite()},
	}

	for _, tc := range tests {
		t.Run(tc.variant, func(t *testing.T) {
			got := baseConfig(tc.variant)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("embedded %s config drifted from hard-coded default:\n got %+v\nwant %+v", tc.variant, got, tc.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestLoadCustomPathOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	data := []byte("speed:\n  initial: 5\nkinds:\n  - {name: rock, width: 10, height: 10, y: 180}\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("classic", path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Speed.Initial != 5 {
		t.Errorf("Speed.Initial = %v, expected 5", cfg.Speed.Initial)
	}
	if cfg.Speed.Increment != 0.5 {
		t.Errorf("unset fields should keep defaults, Speed.Increment = %v", cfg.Speed.Increment)
	}
	if len(cfg.Kinds) != 1 || cfg.Kinds[0].Name != "rock" {
		t.Errorf("kinds should be replaced, got %+v", cfg.Kinds)
	}
	if len(Default().Kinds) != 4 {
		t.Error("overlay must not mutate the defaults")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load("classic", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("player:\n  width: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load("classic", bad)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, expected ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"empty kinds", func(c *RunnerConfig) { c.Kinds = nil }},
		{"duck taller than stand", func(c *RunnerConfig) { c.Player.DuckHeight = 50 }},
		{"ground outside field", func(c *RunnerConfig) { c.Field.GroundY = 300 }},
		{"negative margin", func(c *RunnerConfig) { c.Collision.Margin = -1 }},
		{"zero gravity", func(c *RunnerConfig) { c.Physics.Gravity = 0 }},
		{"bad colour", func(c *RunnerConfig) { c.Palette.Player = "teal" }},
		{"bad kind colour", func(c *RunnerConfig) { c.Kinds[0].Color = "#12" }},
		{"broken clouds", func(c *RunnerConfig) { c.Clouds.Interval = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestPlayerAnchors(t *testing.T) {
	p := Default().Player
	if got := p.StandY(190); got != 150 {
		t.Errorf("StandY = %v, expected 150", got)
	}
	if got := p.DuckY(190); got != 170 {
		t.Errorf("DuckY = %v, expected 170", got)
	}
}
