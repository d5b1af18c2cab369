package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

// SessionOptions configures one remote session.
type SessionOptions struct {
	Store         *storage.Store
	Logger        *log.Logger
	Width, Height int
	TickRate      int
	ConfigPath    string
	Difficulty    config.DifficultyPreset
}

// SessionModel runs menu, scoreboard and game screens inside a single
// program, for hosts that cannot restart programs between screens.
// At most one of scoreboard and game is set; neither means the menu.
type SessionModel struct {
	opts       SessionOptions
	menu       MenuModel
	scoreboard *ScoreboardModel
	game       *Model
	err        error
	quitting   bool
}

// NewSessionModel opens on the variant menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := SessionModel{opts: opts}
	m.toMenu()
	return m
}

func (m *SessionModel) toMenu() {
	m.game, m.scoreboard = nil, nil
	m.menu = NewMenuModel(m.opts.Store, m.opts.Width, m.opts.Height)
}

func (m *SessionModel) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update routes msg to the active screen. Child screens signal completion
// through their state; their tea.Quit commands are never forwarded.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width, m.opts.Height = size.Width, size.Height
	}

	switch {
	case m.game != nil:
		next, cmd := m.game.Update(msg)
		game := next.(Model)
		switch {
		case game.IsQuitting():
			return m, m.quit()
		case game.BackToMenu():
			m.toMenu()
			return m, nil
		}
		m.game = &game
		return m, cmd

	case m.scoreboard != nil:
		next, cmd := m.scoreboard.Update(msg)
		board := next.(ScoreboardModel)
		switch {
		case board.IsQuitting():
			return m, m.quit()
		case board.IsGoingBack():
			m.toMenu()
			return m, nil
		}
		m.scoreboard = &board
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	switch {
	case m.menu.IsQuitting():
		return m, m.quit()
	case m.menu.WantsScoreboard():
		board := NewScoreboardModel(m.opts.Store, m.opts.Width, m.opts.Height)
		m.scoreboard = &board
		return m, nil
	case m.menu.Selected() != nil:
		return m.start(m.menu.Selected().ID)
	}
	return m, cmd
}

// start builds a game for variant wired to the shared store. A failure
// keeps the menu up with the error below it.
func (m SessionModel) start(variant string) (tea.Model, tea.Cmd) {
	ropts := registry.Options{
		ConfigPath: m.opts.ConfigPath,
		Difficulty: m.opts.Difficulty,
		Seed:       time.Now().UnixNano(),
	}
	if m.opts.Store != nil {
		ropts.Store = m.opts.Store.HighScores(variant, m.opts.Logger)
	}

	sim, err := registry.Create(variant, ropts)
	if err != nil {
		m.opts.Logger.Error("cannot start variant", "variant", variant, "err", err)
		m.toMenu()
		m.err = err
		return m, nil
	}

	game := NewModel(sim, Options{
		Variant:  variant,
		TickRate: m.opts.TickRate,
		Width:    m.opts.Width,
		Height:   m.opts.Height,
		Store:    m.opts.Store,
		Logger:   m.opts.Logger,
		Embedded: true,
	})
	m.err = nil
	m.game = &game
	return m, game.Init()
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	case m.err != nil:
		return m.menu.View() + "\n" + centerText(m.err.Error(), m.opts.Width)
	}
	return m.menu.View()
}
