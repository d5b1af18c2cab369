package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/core"
	"github.com/vovakirdan/dino-runner/internal/runner"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

// Terminals report key presses but not releases. A duck lasts until no
// repeat of the duck key arrives for duckHold.
const duckHold = 400 * time.Millisecond

// DefaultTickRate matches the browser game's frame rate.
const DefaultTickRate = 60

// Options configures a game screen.
type Options struct {
	Variant  string
	TickRate int
	Width    int
	Height   int
	// Store records finished sessions; nil disables history.
	Store  *storage.Store
	Logger *log.Logger
	// Embedded models report Back instead of quitting the program.
	Embedded bool
}

// Model is the Bubble Tea frame driver of one simulation. ducking tracks the
// duck key being held, not the player's posture.
type Model struct {
	id       int
	sim      *runner.Simulation
	opts     Options
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	last     runner.Snapshot
	paused   bool
	ducking  bool
	duckLeft int
	quitting bool
	back     bool
}

// NewModel creates a game screen for sim.
func NewModel(sim *runner.Simulation, opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return Model{
		id:     nextModelID(),
		sim:    sim,
		opts:   opts,
		screen: core.NewScreen(opts.Width, opts.Height-1),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		last:   sim.Snapshot(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.id, m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Width, m.opts.Height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey turns key presses into simulation input and driver commands.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Resolve(msg) {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case ActionBack:
		if m.opts.Embedded && m.sim.Phase() != runner.PhaseRunning {
			m.back = true
			return m, tea.Quit
		}

	case ActionStart:
		if m.sim.Start() {
			m.paused = false
			m.ducking = false
			m.last = m.sim.Snapshot()
		}

	case ActionReset:
		m.sim.Reset()
		m.paused = false
		m.ducking = false
		m.last = m.sim.Snapshot()

	case ActionPause:
		if m.sim.Phase() == runner.PhaseRunning {
			m.paused = !m.paused
		}

	case ActionJump:
		if m.ducking {
			m.sim.ApplyInput(core.EventDuckEnd)
			m.ducking = false
		}
		m.sim.ApplyInput(core.EventJump)

	case ActionDuck:
		// Repeats keep asking until the player actually ducks, so a duck
		// held through a landing takes effect once grounded.
		if m.last.Player.Posture != runner.PostureDucking {
			m.sim.ApplyInput(core.EventDuckStart)
		}
		m.ducking = true
		m.duckLeft = ticksFor(duckHold, m.opts.TickRate)
	}

	return m, nil
}

// handleTick advances the simulation by one step unless paused.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.paused {
		return m, tickCmd(m.id, m.opts.TickRate)
	}

	if m.ducking {
		m.duckLeft--
		if m.duckLeft <= 0 {
			m.sim.ApplyInput(core.EventDuckEnd)
			m.ducking = false
		}
	}

	res := m.sim.Tick()
	m.last = res.Snapshot

	if ended, ok := res.Ended(); ok {
		m.ducking = false
		m.record(ended)
	}

	return m, tickCmd(m.id, m.opts.TickRate)
}

// record stores a finished session in the history table.
func (m Model) record(ended runner.SessionEnded) {
	m.opts.Logger.Debug("session ended",
		"variant", m.opts.Variant,
		"score", ended.FinalScore,
		"ticks", ended.Ticks,
		"record", ended.NewRecord,
	)
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.opts.Variant, ended.FinalScore, ended.Ticks); err != nil {
		m.opts.Logger.Error("save score", "variant", m.opts.Variant, "err", err)
	}
}

var pausedStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 2)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Draw(m.screen, m.last, m.sim.Config())
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ", core.ColorDefault)
	}

	footer := m.help.View(m.keys)
	if m.paused {
		footer = pausedStyle.Render("paused") + " " + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Snapshot returns the last frame the model drew from.
func (m Model) Snapshot() runner.Snapshot {
	return m.last
}

// Paused reports whether the driver has stopped ticking.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the variant menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program for sim.
// Returns true if an embedded screen asked to go back to the menu.
func Run(sim *runner.Simulation, opts Options) (goBack bool, err error) {
	p := tea.NewProgram(
		NewModel(sim, opts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
