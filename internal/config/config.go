// Package config provides YAML-based runner configuration loading and the
// difficulty curve used by the simulation.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/dino-runner/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// RunnerConfig holds every tunable of one runner variant. All lengths are in
// field pixels, all rates are per tick.
type RunnerConfig struct {
	Title     string          `yaml:"title"`
	Field     FieldConfig     `yaml:"field"`
	Player    PlayerConfig    `yaml:"player"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Speed     SpeedConfig     `yaml:"speed"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Collision CollisionConfig `yaml:"collision"`
	Clouds    CloudConfig     `yaml:"clouds"`
	Kinds     []ObstacleKind  `yaml:"kinds"`
	Palette   Palette         `yaml:"palette"`
}

// FieldConfig describes the play field.
type FieldConfig struct {
	Width   float64 `yaml:"width" json:"width"`
	Height  float64 `yaml:"height" json:"height"`
	GroundY float64 `yaml:"ground_y" json:"groundY"` // y of the ground line; the player stands on it
}

// PlayerConfig describes the player's hitbox.
type PlayerConfig struct {
	X          float64 `yaml:"x"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DuckHeight float64 `yaml:"duck_height"`
}

// StandY returns the top of the standing player's hitbox.
func (p PlayerConfig) StandY(groundY float64) float64 {
	return groundY - p.Height
}

// DuckY returns the top of the ducking player's hitbox.
func (p PlayerConfig) DuckY(groundY float64) float64 {
	return groundY - p.DuckHeight
}

// PhysicsConfig defines the jump arc.
type PhysicsConfig struct {
	JumpVelocity float64 `yaml:"jump_velocity"` // upward, positive
	Gravity      float64 `yaml:"gravity"`       // subtracted from velocity each airborne tick
}

// SpeedConfig defines the scroll speed and its ratchet.
type SpeedConfig struct {
	Initial   float64 `yaml:"initial"`
	Increment float64 `yaml:"increment"`
	Interval  int     `yaml:"interval"` // score multiple that triggers an increment; 0 disables
}

// ScoringConfig defines the per-obstacle reward.
type ScoringConfig struct {
	Reward int `yaml:"reward"`
}

// SpawnConfig defines the obstacle spawn threshold curve:
// max(BaseThreshold - score/ScoreDivisor, MinThreshold).
type SpawnConfig struct {
	BaseThreshold float64 `yaml:"base_threshold"`
	ScoreDivisor  float64 `yaml:"score_divisor"` // 0 keeps the threshold constant
	MinThreshold  float64 `yaml:"min_threshold"`
}

// CollisionConfig defines the forgiving inward hitbox margin.
type CollisionConfig struct {
	Margin float64 `yaml:"margin"`
}

// CloudConfig defines the cosmetic cloud layer.
type CloudConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Interval int     `yaml:"interval"`
	Speed    float64 `yaml:"speed"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	MinY     float64 `yaml:"min_y"`
	YRange   float64 `yaml:"y_range"`
}

// ObstacleKind is one row of a variant's obstacle table.
type ObstacleKind struct {
	Name   string     `yaml:"name" json:"name"`
	Width  float64    `yaml:"width" json:"width"`
	Height float64    `yaml:"height" json:"height"`
	Y      float64    `yaml:"y" json:"y"`
	Flying bool       `yaml:"flying" json:"flying"`
	Color  core.Color `yaml:"color" json:"color"`
}

// Palette holds the cosmetic colour table consumed by renderers.
type Palette struct {
	Player        core.Color `yaml:"player" json:"player"`
	PlayerDucking core.Color `yaml:"player_ducking" json:"playerDucking"`
	Ground        core.Color `yaml:"ground" json:"ground"`
	GroundDetail  core.Color `yaml:"ground_detail" json:"groundDetail"`
	SkyTop        core.Color `yaml:"sky_top" json:"skyTop"`
	SkyBottom     core.Color `yaml:"sky_bottom" json:"skyBottom"`
	Cloud         core.Color `yaml:"cloud" json:"cloud"`
	Text          core.Color `yaml:"text" json:"text"`
}

// Validate checks that the configuration describes a playable session.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field size must be positive", ErrInvalid)
	case c.Field.GroundY <= 0 || c.Field.GroundY > c.Field.Height:
		return fmt.Errorf("%w: ground_y %.1f outside field", ErrInvalid, c.Field.GroundY)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalid)
	case c.Player.DuckHeight <= 0 || c.Player.DuckHeight > c.Player.Height:
		return fmt.Errorf("%w: duck_height must be in (0, height]", ErrInvalid)
	case c.Player.Height > c.Field.GroundY:
		return fmt.Errorf("%w: player taller than the space above ground", ErrInvalid)
	case c.Physics.JumpVelocity <= 0 || c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: jump_velocity and gravity must be positive", ErrInvalid)
	case c.Speed.Initial <= 0 || c.Speed.Increment < 0 || c.Speed.Interval < 0:
		return fmt.Errorf("%w: bad speed settings", ErrInvalid)
	case c.Scoring.Reward <= 0:
		return fmt.Errorf("%w: reward must be positive", ErrInvalid)
	case c.Spawn.BaseThreshold <= 0 || c.Spawn.MinThreshold < 0 || c.Spawn.ScoreDivisor < 0:
		return fmt.Errorf("%w: bad spawn settings", ErrInvalid)
	case c.Collision.Margin < 0:
		return fmt.Errorf("%w: collision margin must not be negative", ErrInvalid)
	case len(c.Kinds) == 0:
		return fmt.Errorf("%w: obstacle table is empty", ErrInvalid)
	}

	if c.Clouds.Enabled && (c.Clouds.Interval <= 0 || c.Clouds.Speed <= 0 || c.Clouds.Width <= 0 || c.Clouds.Height <= 0) {
		return fmt.Errorf("%w: bad cloud settings", ErrInvalid)
	}

	for i, k := range c.Kinds {
		if k.Name == "" {
			return fmt.Errorf("%w: kind %d has no name", ErrInvalid, i)
		}
		if k.Width <= 0 || k.Height <= 0 {
			return fmt.Errorf("%w: kind %q size must be positive", ErrInvalid, k.Name)
		}
		if !k.Color.Valid() {
			return fmt.Errorf("%w: kind %q colour %q", ErrInvalid, k.Name, k.Color)
		}
	}

	for name, col := range c.Palette.colors() {
		if !col.Valid() {
			return fmt.Errorf("%w: palette %s colour %q", ErrInvalid, name, col)
		}
	}
	return nil
}

func (p Palette) colors() map[string]core.Color {
	return map[string]core.Color{
		"player":         p.Player,
		"player_ducking": p.PlayerDucking,
		"ground":         p.Ground,
		"ground_detail":  p.GroundDetail,
		"sky_top":        p.SkyTop,
		"sky_bottom":     p.SkyBottom,
		"cloud":          p.Cloud,
		"text":           p.Text,
	}
}
