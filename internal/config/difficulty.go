package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "as configured".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// ApplyPreset adjusts the speed and spawn curve of cfg.
// Normal leaves the variant untouched; fixed switches progression off.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Initial = math.Max(1, cfg.Speed.Initial-0.5)
		cfg.Spawn.MinThreshold += 10
		cfg.Spawn.BaseThreshold += 10
	case DifficultyHard:
		cfg.Speed.Initial++
		cfg.Spawn.BaseThreshold = math.Max(1, cfg.Spawn.BaseThreshold-10)
		cfg.Spawn.MinThreshold = math.Max(1, cfg.Spawn.MinThreshold-5)
	case DifficultyFixed:
		cfg.Speed.Interval = 0
		cfg.Spawn.ScoreDivisor = 0
	}
}

// DifficultyManager derives score-dependent parameters: how many ticks pass
// between obstacle spawns and when scroll speed ratchets up.
type DifficultyManager struct {
	spawn SpawnConfig
	speed SpeedConfig
}

// NewDifficultyManager creates a difficulty manager for cfg.
func NewDifficultyManager(cfg RunnerConfig) *DifficultyManager {
	return &DifficultyManager{spawn: cfg.Spawn, speed: cfg.Speed}
}

// IsEnabled reports whether anything changes as the score grows.
func (d *DifficultyManager) IsEnabled() bool {
	return d.spawn.ScoreDivisor > 0 || (d.speed.Interval > 0 && d.speed.Increment > 0)
}

// SpawnThreshold returns the timer value an obstacle timer must exceed before
// the next spawn. It shrinks as score grows and never drops below the floor.
func (d *DifficultyManager) SpawnThreshold(score int) float64 {
	threshold := d.spawn.BaseThreshold
	if d.spawn.ScoreDivisor > 0 {
		threshold -= float64(score) / d.spawn.ScoreDivisor
	}
	return math.Max(threshold, d.spawn.MinThreshold)
}

// SpeedAfter returns the scroll speed once score has just been reached.
// Speed only ever grows, and only at exact multiples of the interval.
func (d *DifficultyManager) SpeedAfter(speed float64, score int) float64 {
	if d.speed.Interval <= 0 || score <= 0 || score%d.speed.Interval != 0 {
		return speed
	}
	return speed + d.speed.Increment
}
