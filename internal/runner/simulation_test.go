package runner

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/core"
)

// quietConfig is the classic variant with spawning and scenery switched off,
// so tests control every obstacle.
func quietConfig() config.RunnerConfig {
	cfg := config.Default()
	cfg.Spawn = config.SpawnConfig{BaseThreshold: 1e9, MinThreshold: 1e9}
	cfg.Clouds.Enabled = false
	return cfg
}

// place puts an obstacle of the named kind at x.
func place(t *testing.T, s *Simulation, name string, x float64) {
	t.Helper()
	for _, k := range s.cfg.Kinds {
		if k.Name == name {
			s.obstacles.items = append(s.obstacles.items, Obstacle{
				Kind: k.Name, X: x, Y: k.Y, Width: k.Width, Height: k.Height, Flying: k.Flying,
			})
			return
		}
	}
	t.Fatalf("no obstacle kind %q", name)
}

func tickUntilEnded(t *testing.T, s *Simulation, limit int) SessionEnded {
	t.Helper()
	for i := 0; i < limit; i++ {
		if ended, ok := s.Tick().Ended(); ok {
			return ended
		}
	}
	t.Fatalf("session did not end within %d ticks", limit)
	return SessionEnded{}
}

func TestIdleTickIsNoop(t *testing.T) {
	s := New(config.Default(), nil, 7)
	before := s.Snapshot()

	for i := 0; i < 500; i++ {
		s.ApplyInput(core.EventJump)
		s.ApplyInput(core.EventDuckStart)
		res := s.Tick()
		if len(res.Events) != 0 {
			t.Fatalf("idle tick %d produced events: %v", i, res.Events)
		}
	}

	after := s.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("idle ticks changed state:\nbefore %+v\nafter  %+v", before, after)
	}
	if after.Phase != PhaseIdle || !after.ShowsIdlePrompt() {
		t.Error("simulation should stay idle and show the start prompt")
	}
}

func TestIdleAfterGameOverIsFrozen(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()
	place(t, s, "cactus_small", 100)
	tickUntilEnded(t, s, 100)

	frozen := s.Snapshot()
	if !frozen.GameOver || frozen.ShowsIdlePrompt() {
		t.Fatal("after a collision the snapshot should be a game-over frame")
	}
	for i := 0; i < 50; i++ {
		s.ApplyInput(core.EventJump)
		s.Tick()
	}
	if !reflect.DeepEqual(frozen, s.Snapshot()) {
		t.Error("ticks after game over must not move anything")
	}
}

func TestJumpArcReturnsToGround(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()
	ground := s.player.Y

	s.ApplyInput(core.EventJump)

	var ys []float64
	for i := 0; i < 200; i++ {
		res := s.Tick()
		p := res.Snapshot.Player
		if p.Y > ground {
			t.Fatalf("tick %d: player fell below ground: y=%v ground=%v", i, p.Y, ground)
		}
		ys = append(ys, p.Y)
		if p.Posture == PostureGrounded {
			break
		}
	}

	if len(ys) < 3 {
		t.Fatalf("jump too short: %v", ys)
	}
	if !(ys[0] < ground && ys[1] < ys[0] && ys[2] < ys[1]) {
		t.Errorf("y should strictly decrease at the start of the jump: %v", ys[:3])
	}
	if last := ys[len(ys)-1]; last != ground {
		t.Errorf("player should land exactly on ground %v, got %v", ground, last)
	}
	if s.player.Velocity != 0 {
		t.Errorf("landing should zero velocity, got %v", s.player.Velocity)
	}
}

func TestJumpWhileJumpingHasNoEffect(t *testing.T) {
	a := New(quietConfig(), nil, 1)
	b := New(quietConfig(), nil, 1)
	for _, s := range []*Simulation{a, b} {
		s.Start()
		s.ApplyInput(core.EventJump)
		s.Tick()
	}

	a.ApplyInput(core.EventJump)
	for i := 0; i < 5; i++ {
		if !reflect.DeepEqual(a.Tick().Snapshot.Player, b.Tick().Snapshot.Player) {
			t.Fatalf("tick %d: second jump changed the arc", i)
		}
	}
}

func TestDuckRoundTrip(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()
	s.Tick()
	before := s.player

	s.ApplyInput(core.EventDuckStart)
	ducked := s.Tick().Snapshot.Player
	if ducked.Posture != PostureDucking {
		t.Fatalf("posture = %v, expected ducking", ducked.Posture)
	}
	if ducked.Height != 20 || ducked.Y != 170 {
		t.Errorf("ducking hitbox = y %v h %v, expected y 170 h 20", ducked.Y, ducked.Height)
	}
	if ducked.Rect().Bottom() != before.Rect().Bottom() {
		t.Error("ducking must keep the hitbox on the ground line")
	}

	s.ApplyInput(core.EventDuckStart) // repeat is a no-op
	s.ApplyInput(core.EventDuckEnd)
	if got := s.Tick().Snapshot.Player; got != before {
		t.Errorf("after duckEnd player = %+v, expected %+v", got, before)
	}
}

func TestDuckIgnoredWhileJumping(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()
	s.ApplyInput(core.EventJump)
	s.Tick()

	s.ApplyInput(core.EventDuckStart)
	p := s.Tick().Snapshot.Player
	if p.Posture != PostureJumping || p.Height != 40 {
		t.Errorf("duck while airborne should be ignored, got %+v", p)
	}
}

func TestJumpIgnoredWhileDucking(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()
	s.ApplyInput(core.EventDuckStart)
	s.ApplyInput(core.EventJump)
	p := s.Tick().Snapshot.Player
	if p.Posture != PostureDucking || p.Velocity != 0 {
		t.Errorf("jump while ducking should be ignored, got %+v", p)
	}
}

func TestScoreOnlyOnRemoval(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()
	place(t, s, "pterodactyl", 100) // flies over a standing player

	removedAt := -1
	for i := 0; i < 200; i++ {
		res := s.Tick()
		if res.Snapshot.GameOver {
			t.Fatal("pterodactyl should pass over a standing player")
		}
		if len(res.Snapshot.Obstacles) == 1 && res.Snapshot.Score != 0 {
			t.Fatalf("tick %d: score %d before the obstacle left", i, res.Snapshot.Score)
		}
		if len(res.Snapshot.Obstacles) == 0 {
			removedAt = i
			if res.Snapshot.Score != 10 {
				t.Errorf("score = %d, expected 10", res.Snapshot.Score)
			}
			if len(res.Events) != 1 || res.Events[0] != (ScoreChanged{Score: 10}) {
				t.Errorf("events = %v, expected one ScoreChanged", res.Events)
			}
			break
		}
	}
	if removedAt < 0 {
		t.Fatal("obstacle never left the field")
	}
	// x starts at 100 and must pass x < -40 at speed 3.
	if removedAt != 46 {
		t.Errorf("removed on tick index %d, expected 46", removedAt)
	}
}

func TestSpeedRatchetsAtInterval(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()

	s.score = 80
	place(t, s, "pterodactyl", -39)
	s.Tick()
	if s.score != 90 || s.speed != 3 {
		t.Fatalf("score %d speed %v, expected 90 and 3", s.score, s.speed)
	}

	place(t, s, "pterodactyl", -39)
	res := s.Tick()
	if s.score != 100 || s.speed != 3.5 {
		t.Fatalf("score %d speed %v, expected 100 and 3.5", s.score, s.speed)
	}
	found := false
	for _, e := range res.Events {
		if e == (SpeedIncreased{Speed: 3.5, Score: 100}) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SpeedIncreased event, got %v", res.Events)
	}

	// Two removals in one tick: 100 -> 110 -> 120, no ratchet.
	place(t, s, "bird", -34)
	place(t, s, "pterodactyl", -39)
	s.Tick()
	if s.score != 120 || s.speed != 3.5 {
		t.Errorf("score %d speed %v, expected 120 and 3.5", s.score, s.speed)
	}
}

// autopilot jumps over ground hazards and ducks under flying ones.
func autopilot(s *Simulation, snap Snapshot) {
	p := snap.Player
	for _, o := range snap.Obstacles {
		gap := o.X - (p.X + p.Width)
		if gap < 0 || gap > 60 {
			continue
		}
		if o.Flying && o.Y+o.Height > s.cfg.Player.StandY(s.cfg.Field.GroundY) {
			s.ApplyInput(core.EventDuckStart)
			return
		}
		if !o.Flying {
			s.ApplyInput(core.EventJump)
			return
		}
	}
	s.ApplyInput(core.EventDuckEnd)
}

func TestScoreAndSpeedInvariants(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 1234} {
		s := New(config.Default(), nil, seed)
		s.Start()
		cfg := s.cfg

		prev := s.Snapshot()
		for i := 0; i < 20000; i++ {
			autopilot(s, prev)
			res := s.Tick()
			snap := res.Snapshot

			if snap.Score < prev.Score {
				t.Fatalf("seed %d tick %d: score decreased %d -> %d", seed, i, prev.Score, snap.Score)
			}
			if snap.Score%cfg.Scoring.Reward != 0 {
				t.Fatalf("seed %d: score %d is not a multiple of the reward", seed, snap.Score)
			}
			if snap.Score != prev.Score {
				changes := 0
				for _, e := range res.Events {
					if _, ok := e.(ScoreChanged); ok {
						changes++
					}
				}
				if snap.Score-prev.Score != changes*cfg.Scoring.Reward {
					t.Fatalf("seed %d: score moved by %d with %d removals", seed, snap.Score-prev.Score, changes)
				}
			}
			if snap.Speed < prev.Speed {
				t.Fatalf("seed %d tick %d: speed decreased", seed, i)
			}
			wantSpeed := cfg.Speed.Initial + cfg.Speed.Increment*float64(snap.Score/cfg.Speed.Interval)
			if snap.Speed != wantSpeed {
				t.Fatalf("seed %d: speed %v at score %d, expected %v", seed, snap.Speed, snap.Score, wantSpeed)
			}
			if snap.Player.Y > cfg.Player.StandY(cfg.Field.GroundY) && snap.Player.Posture != PostureDucking {
				t.Fatalf("seed %d: player below ground", seed)
			}
			prev = snap
			if snap.GameOver {
				break
			}
		}
	}
}

func TestCollisionMargin(t *testing.T) {
	// Player hitbox is x 50..90, y 150..190.
	tests := []struct {
		name    string
		kind    string
		x, y    float64
		margin  float64
		gameEnd bool
	}{
		{"horizontal overlap within margin", "cactus_small", 85, 155, 5, false},
		{"horizontal overlap beyond margin", "cactus_small", 84, 155, 5, true},
		{"vertical overlap within margin", "bird", 60, 130, 5, false},
		{"vertical overlap beyond margin", "bird", 60, 131, 5, true},
		{"no margin, touching", "cactus_small", 90, 155, 0, false},
		{"no margin, one pixel", "cactus_small", 89, 155, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Collision.Margin = tc.margin
			s := New(cfg, nil, 1)
			s.Start()
			place(t, s, tc.kind, tc.x)
			s.obstacles.items[0].Y = tc.y

			s.checkCollisions()
			if got := s.phase == PhaseIdle; got != tc.gameEnd {
				t.Errorf("game over = %v, expected %v", got, tc.gameEnd)
			}
		})
	}
}

func TestSpawnedObstacleEndsSession(t *testing.T) {
	cfg := quietConfig()
	cfg.Kinds = cfg.Kinds[:1] // cactus_small, lower than the player's top
	store := NewMemoryStore(0)
	s := New(cfg, store, 99)
	s.Start()

	o, ok := s.obstacles.maybeSpawn(0, s.rng)
	if !ok || o.X != cfg.Field.Width {
		t.Fatalf("spawn = %+v, %v; expected one obstacle at x=%v", o, ok, cfg.Field.Width)
	}

	ended := tickUntilEnded(t, s, 1000)
	if ended.FinalScore != 0 || ended.NewRecord {
		t.Errorf("ended = %+v, expected score 0 and no record", ended)
	}
	if s.Phase() != PhaseIdle {
		t.Error("collision should return to idle")
	}
	if store.Writes() != 0 {
		t.Errorf("store written %d times for a score that did not beat 0", store.Writes())
	}
}

func TestHighScoreWrittenOnlyWhenBeaten(t *testing.T) {
	tests := []struct {
		name       string
		prior      int
		wantWrites int
		wantHigh   int
	}{
		{"beats stored score", 0, 1, 10},
		{"ties stored score", 10, 0, 10},
		{"below stored score", 500, 0, 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemoryStore(tc.prior)
			s := New(quietConfig(), store, 1)
			s.Start()
			place(t, s, "pterodactyl", -38) // leaves on the first tick: +10
			place(t, s, "cactus_small", 300)

			ended := tickUntilEnded(t, s, 500)
			if ended.FinalScore != 10 {
				t.Errorf("final score = %d, expected 10", ended.FinalScore)
			}
			if store.Writes() != tc.wantWrites {
				t.Errorf("store writes = %d, expected %d", store.Writes(), tc.wantWrites)
			}
			if ended.HighScore != tc.wantHigh || store.HighScore() != tc.wantHigh {
				t.Errorf("high score = %d (store %d), expected %d", ended.HighScore, store.HighScore(), tc.wantHigh)
			}
		})
	}
}

func TestResetDiscardsWithoutFinalizing(t *testing.T) {
	store := NewMemoryStore(0)
	s := New(quietConfig(), store, 1)
	s.Start()
	place(t, s, "pterodactyl", -38)
	place(t, s, "bird", 500)
	s.Tick()
	if s.score != 10 {
		t.Fatalf("score = %d, expected 10", s.score)
	}

	s.ApplyInput(core.EventJump)
	s.Reset()

	snap := s.Snapshot()
	if snap.Phase != PhaseIdle || snap.GameOver || snap.Score != 0 || len(snap.Obstacles) != 0 {
		t.Errorf("after Reset snapshot = %+v", snap)
	}
	if store.Writes() != 0 {
		t.Error("Reset must not finalize the high score")
	}

	s.Start()
	if s.Tick().Snapshot.Player.Posture != PostureGrounded {
		t.Error("input buffered before Reset must be discarded")
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	if !s.Start() {
		t.Fatal("first Start should succeed")
	}
	place(t, s, "bird", 400)
	s.Tick()

	if s.Start() {
		t.Error("Start while running should report false")
	}
	if len(s.obstacles.items) != 1 || s.ticks != 1 {
		t.Error("Start while running must not reset the session")
	}
}

func TestSpawnTiming(t *testing.T) {
	cfg := config.Default()
	cfg.Clouds.Enabled = false
	s := New(cfg, nil, 5)
	s.Start()

	for i := 1; i <= 81; i++ {
		res := s.Tick()
		spawned := false
		for _, e := range res.Events {
			if _, ok := e.(ObstacleSpawned); ok {
				spawned = true
			}
		}
		if i < 81 && spawned {
			t.Fatalf("spawned on tick %d, threshold is 80", i)
		}
		if i == 81 {
			if !spawned {
				t.Fatal("expected a spawn on tick 81")
			}
			o := res.Snapshot.Obstacles[0]
			if o.X != cfg.Field.Width-cfg.Speed.Initial {
				t.Errorf("new obstacle x = %v, expected %v", o.X, cfg.Field.Width-cfg.Speed.Initial)
			}
		}
	}
}

func TestCloudsAreCosmetic(t *testing.T) {
	cfg := quietConfig()
	cfg.Clouds.Enabled = true
	s := New(cfg, nil, 3)
	s.Start()

	for i := 0; i < 201; i++ {
		s.Tick()
	}
	clouds := s.Snapshot().Clouds
	if len(clouds) != 1 {
		t.Fatalf("expected one cloud after 201 ticks, got %d", len(clouds))
	}
	c := clouds[0]
	if c.X != cfg.Field.Width-cfg.Clouds.Speed || c.Y < cfg.Clouds.MinY || c.Y >= cfg.Clouds.MinY+cfg.Clouds.YRange {
		t.Errorf("cloud = %+v", c)
	}

	s.clouds.items[0].X = s.player.X
	s.clouds.items[0].Y = s.player.Y
	res := s.Tick()
	if res.Snapshot.GameOver || res.Snapshot.Score != 0 {
		t.Error("clouds must not collide or score")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Snapshot {
		s := New(config.Default(), nil, 12345)
		s.Start()
		var out []Snapshot
		for i := 0; i < 3000; i++ {
			switch i % 90 {
			case 0:
				s.ApplyInput(core.EventJump)
			case 50:
				s.ApplyInput(core.EventDuckStart)
			case 70:
				s.ApplyInput(core.EventDuckEnd)
			}
			out = append(out, s.Tick().Snapshot)
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs must produce identical snapshots")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(quietConfig(), nil, 1)
	s.Start()
	place(t, s, "bird", 300)

	snap := s.Tick().Snapshot
	snap.Obstacles[0].X = -1000
	if s.obstacles.items[0].X == -1000 {
		t.Error("snapshot shares memory with the simulation")
	}
}
