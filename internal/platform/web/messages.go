package web

import (
	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
)

// Message types exchanged over the play websocket.
const (
	msgStart    = "start"
	msgReset    = "reset"
	msgConfig   = "config"
	msgSnapshot = "snapshot"
	msgEnded    = "ended"
)

// ClientMessage is sent by the browser. Type is "start", "reset" or one of
// the input events "jump", "duckStart", "duckEnd".
type ClientMessage struct {
	Type string `json:"type"`
}

// ServerMessage wraps every payload sent to the browser.
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// FieldInfo is sent once per connection so the client can scale and colour
// the canvas.
type FieldInfo struct {
	Variant string                `json:"variant"`
	Title   string                `json:"title"`
	Field   config.FieldConfig    `json:"field"`
	Palette config.Palette        `json:"palette"`
	Kinds   []config.ObstacleKind `json:"kinds"`
}

func newFieldInfo(variant string, cfg config.RunnerConfig) FieldInfo {
	return FieldInfo{
		Variant: variant,
		Title:   cfg.Title,
		Field:   cfg.Field,
		Palette: cfg.Palette,
		Kinds:   cfg.Kinds,
	}
}

// command is a decoded client message.
type command struct {
	start, reset bool
	event        core.Event
}

// decode maps a client message to a command. Unknown types are rejected.
func (m ClientMessage) decode() (command, bool) {
	switch m.Type {
	case msgStart:
		return command{start: true}, true
	case msgReset:
		return command{reset: true}, true
	}
	if e, ok := core.ParseEvent(m.Type); ok {
		return command{event: e}, true
	}
	return command{}, false
}
