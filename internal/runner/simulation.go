// Package runner implements the endless-runner session simulation: a player
// that jumps and ducks, procedurally spawned obstacles, scenery, score and
// difficulty. It advances one fixed step per Tick and never draws anything;
// drivers feed it input and render the snapshots it returns.
package runner

import (
	"math/rand"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
)

// Simulation owns all state of one runner session. It is not safe for
// concurrent use: exactly one driver goroutine calls its methods.
type Simulation struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	store      HighScoreStore
	rng        *rand.Rand
	input      core.EventQueue

	phase     Phase
	over      bool // set by a collision, cleared by Start/Reset
	player    Player
	obstacles *obstacleField
	clouds    *cloudLayer
	score     int
	highScore int
	speed     float64
	ticks     int
	events    []Event
}

// New creates an idle simulation. The high score is read from store once,
// here. A nil store keeps the high score in memory only.
func New(cfg config.RunnerConfig, store HighScoreStore, seed int64) *Simulation {
	if store == nil {
		store = NewMemoryStore(0)
	}

	s := &Simulation{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg),
		store:      store,
		rng:        rand.New(rand.NewSource(seed)),
		obstacles:  newObstacleField(cfg),
		clouds:     newCloudLayer(cfg),
		highScore:  store.HighScore(),
	}
	s.clear()
	return s
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.RunnerConfig {
	return s.cfg
}

// Phase returns the current phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Start begins a new session from initial values. It returns false and does
// nothing if a session is already running.
func (s *Simulation) Start() bool {
	if s.phase == PhaseRunning {
		return false
	}
	s.clear()
	s.phase = PhaseRunning
	return true
}

// Reset abandons the current session, if any, without recording its score.
func (s *Simulation) Reset() {
	s.clear()
	s.phase = PhaseIdle
}

// clear restores every per-session value. The high score and RNG survive.
func (s *Simulation) clear() {
	s.over = false
	s.score = 0
	s.speed = s.cfg.Speed.Initial
	s.ticks = 0
	s.obstacles.reset()
	s.clouds.reset()
	s.input.Clear()
	s.player = Player{
		X:       s.cfg.Player.X,
		Y:       s.cfg.Player.StandY(s.cfg.Field.GroundY),
		Width:   s.cfg.Player.Width,
		Height:  s.cfg.Player.Height,
		Posture: PostureGrounded,
	}
}

// ApplyInput buffers an input event for the next tick. Events arriving while
// idle are dropped.
func (s *Simulation) ApplyInput(e core.Event) {
	if s.phase != PhaseRunning {
		return
	}
	s.input.Push(e)
}

// Tick advances the session by one fixed step and returns the resulting
// snapshot together with the events of this step. While idle it only
// reports the current snapshot.
func (s *Simulation) Tick() StepResult {
	s.events = nil

	if s.phase != PhaseRunning {
		s.input.Clear()
		return StepResult{Snapshot: s.Snapshot()}
	}

	s.ticks++

	for _, e := range s.input.Drain() {
		s.handle(e)
	}

	s.updatePlayer()
	s.updateObstacles()
	s.clouds.update(s.rng)
	s.checkCollisions()

	return StepResult{Snapshot: s.Snapshot(), Events: s.events}
}

// handle applies one buffered input at the tick boundary.
func (s *Simulation) handle(e core.Event) {
	p := &s.player
	switch e {
	case core.EventJump:
		if p.Posture == PostureGrounded {
			p.Posture = PostureJumping
			p.Velocity = s.cfg.Physics.JumpVelocity
		}
	case core.EventDuckStart:
		if p.Posture == PostureGrounded {
			p.Posture = PostureDucking
			p.Height = s.cfg.Player.DuckHeight
			p.Y = s.cfg.Player.DuckY(s.cfg.Field.GroundY)
		}
	case core.EventDuckEnd:
		if p.Posture == PostureDucking {
			p.Posture = PostureGrounded
			p.Height = s.cfg.Player.Height
			p.Y = s.cfg.Player.StandY(s.cfg.Field.GroundY)
		}
	}
}

// updatePlayer integrates the jump arc: position first, then gravity.
func (s *Simulation) updatePlayer() {
	p := &s.player
	if p.Posture != PostureJumping {
		return
	}

	p.Y -= p.Velocity
	p.Velocity -= s.cfg.Physics.Gravity

	ground := s.cfg.Player.StandY(s.cfg.Field.GroundY)
	if p.Y >= ground {
		p.Y = ground
		p.Velocity = 0
		p.Posture = PostureGrounded
	}
}

// updateObstacles spawns, scrolls and scores obstacles. Each retired obstacle
// pays the reward and may ratchet the speed.
func (s *Simulation) updateObstacles() {
	threshold := s.difficulty.SpawnThreshold(s.score)
	if o, ok := s.obstacles.maybeSpawn(threshold, s.rng); ok {
		s.events = append(s.events, ObstacleSpawned{Kind: o.Kind})
	}

	removed := s.obstacles.advance(s.speed)
	for i := 0; i < removed; i++ {
		s.score += s.cfg.Scoring.Reward
		s.events = append(s.events, ScoreChanged{Score: s.score})

		if next := s.difficulty.SpeedAfter(s.speed, s.score); next > s.speed {
			s.speed = next
			s.events = append(s.events, SpeedIncreased{Speed: s.speed, Score: s.score})
		}
	}
}

// checkCollisions ends the session on the first obstacle whose hitbox, shrunk
// by the collision margin, overlaps the player.
func (s *Simulation) checkCollisions() {
	hitbox := s.player.Rect()
	for _, o := range s.obstacles.items {
		if hitbox.Intersects(o.Rect().Inset(s.cfg.Collision.Margin)) {
			s.gameOver()
			return
		}
	}
}

// gameOver ends the session and finalizes the high score.
func (s *Simulation) gameOver() {
	s.phase = PhaseIdle
	s.over = true

	record := s.score > s.highScore
	if record {
		s.highScore = s.score
		s.store.SetHighScore(s.score)
	}

	s.events = append(s.events, SessionEnded{
		FinalScore: s.score,
		HighScore:  s.highScore,
		NewRecord:  record,
		Ticks:      s.ticks,
	})
}
