package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/runner"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = send(t, m, TickMsg{ID: m.id})
	}
	return m
}

func newTestModel(cfg config.RunnerConfig, opts Options) Model {
	opts.Logger = log.New(&bytes.Buffer{})
	return NewModel(runner.New(cfg, nil, 1), opts)
}

func TestModelStartAndJump(t *testing.T) {
	m := newTestModel(config.Default(), Options{Variant: "classic"})

	m = tick(t, m, 3)
	if m.Snapshot().Tick != 0 {
		t.Fatal("ticks before Start should not advance the session")
	}

	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, keySpace)
	m = tick(t, m, 1)

	snap := m.Snapshot()
	if !snap.Running() || snap.Tick != 1 {
		t.Fatalf("expected running session at tick 1, got %+v", snap)
	}
	if snap.Player.Posture != runner.PostureJumping {
		t.Errorf("posture = %v, expected jumping", snap.Player.Posture)
	}
}

func TestModelDuckEndsAfterHold(t *testing.T) {
	m := newTestModel(config.Default(), Options{TickRate: 60})
	m, _ = send(t, m, keyEnter)

	m, _ = send(t, m, keyDown)
	hold := ticksFor(duckHold, 60)

	m = tick(t, m, hold-1)
	if m.Snapshot().Player.Posture != runner.PostureDucking {
		t.Fatal("player should still be ducking before the hold expires")
	}

	// A key repeat extends the duck.
	m, _ = send(t, m, keyDown)
	m = tick(t, m, hold-1)
	if m.Snapshot().Player.Posture != runner.PostureDucking {
		t.Fatal("repeat should extend the duck")
	}

	m = tick(t, m, 1)
	if m.Snapshot().Player.Posture != runner.PostureGrounded {
		t.Errorf("duck should end after the hold, posture = %v", m.Snapshot().Player.Posture)
	}
}

func TestModelJumpCancelsDuck(t *testing.T) {
	m := newTestModel(config.Default(), Options{})
	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, keyDown)
	m = tick(t, m, 1)

	m, _ = send(t, m, keySpace)
	m = tick(t, m, 1)
	if got := m.Snapshot().Player.Posture; got != runner.PostureJumping {
		t.Errorf("posture = %v, expected jumping out of a duck", got)
	}
}

func TestModelDuckHeldThroughLanding(t *testing.T) {
	m := newTestModel(config.Default(), Options{TickRate: 60})
	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, keySpace)
	m = tick(t, m, 2)

	for i := 0; i < 60; i++ {
		if i%3 == 0 {
			m, _ = send(t, m, keyDown)
		}
		m = tick(t, m, 1)
		if i == 0 && m.Snapshot().Player.Posture != runner.PostureJumping {
			t.Fatal("duck must not interrupt a jump")
		}
	}

	if p := m.Snapshot().Player.Posture; p != runner.PostureDucking {
		t.Errorf("posture after landing with duck held = %v, want ducking", p)
	}
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	old := newTestModel(config.Default(), Options{})
	m := newTestModel(config.Default(), Options{})
	if old.id == m.id {
		t.Fatal("models must not share a tick id")
	}
	m, _ = send(t, m, keyEnter)

	m, cmd := send(t, m, TickMsg{ID: old.id})
	if cmd != nil || m.Snapshot().Tick != 0 {
		t.Errorf("stale tick advanced the session to %d", m.Snapshot().Tick)
	}
	m, cmd = send(t, m, TickMsg{ID: m.id})
	if cmd == nil || m.Snapshot().Tick != 1 {
		t.Errorf("own tick should step and re-arm, tick = %d", m.Snapshot().Tick)
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(config.Default(), Options{})

	m, _ = send(t, m, runeKey('p'))
	if m.Paused() {
		t.Fatal("pause should be ignored while idle")
	}

	m, _ = send(t, m, keyEnter)
	m = tick(t, m, 2)
	m, _ = send(t, m, runeKey('p'))
	m = tick(t, m, 5)
	if !m.Paused() || m.Snapshot().Tick != 2 {
		t.Fatalf("paused driver must not tick, tick = %d", m.Snapshot().Tick)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show the pause overlay")
	}

	m, _ = send(t, m, runeKey('p'))
	m = tick(t, m, 1)
	if m.Snapshot().Tick != 3 {
		t.Errorf("resumed tick = %d, expected 3", m.Snapshot().Tick)
	}
}

func TestModelResetReturnsToIdle(t *testing.T) {
	m := newTestModel(config.Default(), Options{})
	m, _ = send(t, m, keyEnter)
	m = tick(t, m, 10)

	m, _ = send(t, m, runeKey('r'))
	snap := m.Snapshot()
	if snap.Running() || snap.GameOver || snap.Tick != 0 {
		t.Errorf("after reset snapshot = %+v", snap)
	}
}

func TestModelRecordsFinishedSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	cfg := config.Default()
	cfg.Spawn = config.SpawnConfig{BaseThreshold: 1, MinThreshold: 1}
	cfg.Kinds = cfg.Kinds[:1]
	cfg.Clouds.Enabled = false

	m := newTestModel(cfg, Options{Variant: "classic", Store: store})
	m, _ = send(t, m, keyEnter)
	for i := 0; i < 2000 && !m.Snapshot().GameOver; i++ {
		m = tick(t, m, 1)
	}
	if !m.Snapshot().GameOver {
		t.Fatal("session should end on the first cactus")
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Ticks != m.Snapshot().Tick {
		t.Errorf("history = %+v, expected one entry of %d ticks", scores, m.Snapshot().Tick)
	}

	// Idle ticks after game over record nothing more.
	m = tick(t, m, 10)
	if scores, _ = store.TopScores("classic", 10); len(scores) != 1 {
		t.Errorf("expected one history entry, got %d", len(scores))
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("view should show the game-over box")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := newTestModel(config.Default(), Options{})
	m, _ = send(t, m, keyEsc)
	if m.BackToMenu() {
		t.Error("standalone model should ignore back")
	}

	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}

	e := newTestModel(config.Default(), Options{Embedded: true})
	e, _ = send(t, e, keyEnter)
	e, _ = send(t, e, keyEsc)
	if e.BackToMenu() {
		t.Error("back should be ignored mid-session")
	}
	e, _ = send(t, e, runeKey('r'))
	e, cmd = send(t, e, keyEsc)
	if !e.BackToMenu() || cmd == nil {
		t.Error("back should work while idle")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(config.Default(), Options{Width: 80, Height: 24})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 30 {
		t.Errorf("view has %d lines, expected 30", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "jump") {
		t.Errorf("footer should show key help, got %q", lines[len(lines)-1])
	}
}
