package runner

// Event is something that happened during a tick. The set is closed.
type Event interface {
	runnerEvent()
}

// ObstacleSpawned is emitted when a new obstacle enters at the right edge.
type ObstacleSpawned struct {
	Kind string `json:"kind"`
}

func (ObstacleSpawned) runnerEvent() {}

// ScoreChanged is emitted each time an obstacle leaves the field.
type ScoreChanged struct {
	Score int `json:"score"`
}

func (ScoreChanged) runnerEvent() {}

// SpeedIncreased is emitted when the scroll speed ratchets up.
type SpeedIncreased struct {
	Speed float64 `json:"speed"`
	Score int     `json:"score"`
}

func (SpeedIncreased) runnerEvent() {}

// SessionEnded is emitted once, on the tick a collision ends the session.
type SessionEnded struct {
	FinalScore int  `json:"finalScore"`
	HighScore  int  `json:"highScore"`
	NewRecord  bool `json:"newRecord"`
	Ticks      int  `json:"ticks"`
}

func (SessionEnded) runnerEvent() {}

// StepResult is returned by Tick.
type StepResult struct {
	Snapshot Snapshot
	Events   []Event
}

// Ended returns the SessionEnded event of this tick, if any.
func (r StepResult) Ended() (SessionEnded, bool) {
	for _, e := range r.Events {
		if ended, ok := e.(SessionEnded); ok {
			return ended, true
		}
	}
	return SessionEnded{}, false
}
