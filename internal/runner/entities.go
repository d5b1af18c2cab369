package runner

import (
	"fmt"

	"github.com/vovakirdan/dino-runner/internal/core"
)

// Phase is the session phase.
type Phase int

const (
	PhaseIdle    Phase = iota // waiting for Start, no physics
	PhaseRunning              // ticking
)

// String returns the phase name used in snapshots.
func (p Phase) String() string {
	if p == PhaseRunning {
		return "running"
	}
	return "idle"
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*p = PhaseIdle
	case "running":
		*p = PhaseRunning
	default:
		return fmt.Errorf("runner: unknown phase %q", text)
	}
	return nil
}

// Posture is the player's movement state. Jumping and ducking exclude each
// other.
type Posture int

const (
	PostureGrounded Posture = iota
	PostureJumping
	PostureDucking
)

// String returns the posture name used in snapshots.
func (p Posture) String() string {
	switch p {
	case PostureJumping:
		return "jumping"
	case PostureDucking:
		return "ducking"
	default:
		return "grounded"
	}
}

// MarshalText encodes the posture by name.
func (p Posture) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a posture name.
func (p *Posture) UnmarshalText(text []byte) error {
	switch string(text) {
	case "grounded":
		*p = PostureGrounded
	case "jumping":
		*p = PostureJumping
	case "ducking":
		*p = PostureDucking
	default:
		return fmt.Errorf("runner: unknown posture %q", text)
	}
	return nil
}

// Player is the runner. X never changes; Y is the top of the hitbox.
type Player struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Velocity float64 `json:"velocity"` // positive = moving up
	Posture  Posture `json:"posture"`
}

// Rect returns the player's hitbox.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Obstacle is a hazard scrolling at the shared scroll speed.
type Obstacle struct {
	Kind   string     `json:"kind"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Flying bool       `json:"flying"`
	Color  core.Color `json:"color,omitempty"`
}

// Rect returns the obstacle's unshrunk hitbox.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// String is used in test failures and debug logs.
func (o Obstacle) String() string {
	return fmt.Sprintf("%s@(%.1f,%.1f)", o.Kind, o.X, o.Y)
}

// Cloud is scenery drifting at its own speed. It never collides.
type Cloud struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
}
