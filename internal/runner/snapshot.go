package runner

// Snapshot is everything a renderer needs to draw one frame. It shares no
// memory with the simulation.
type Snapshot struct {
	Phase     Phase      `json:"phase"`
	GameOver  bool       `json:"gameOver"`
	Tick      int        `json:"tick"`
	Score     int        `json:"score"`
	HighScore int        `json:"highScore"`
	Speed     float64    `json:"speed"`
	Player    Player     `json:"player"`
	Obstacles []Obstacle `json:"obstacles"`
	Clouds    []Cloud    `json:"clouds"`
}

// Running reports whether the snapshot was taken mid-session.
func (s Snapshot) Running() bool {
	return s.Phase == PhaseRunning
}

// ShowsIdlePrompt reports whether a renderer should draw the start prompt
// instead of a frozen game-over frame.
func (s Snapshot) ShowsIdlePrompt() bool {
	return s.Phase == PhaseIdle && !s.GameOver
}

// Snapshot returns the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Phase:     s.phase,
		GameOver:  s.over,
		Tick:      s.ticks,
		Score:     s.score,
		HighScore: s.highScore,
		Speed:     s.speed,
		Player:    s.player,
		Obstacles: s.obstacles.snapshot(),
		Clouds:    s.clouds.snapshot(),
	}
}
