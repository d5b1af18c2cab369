package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

// MenuKeyMap defines the key bindings of the variant picker.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MenuItem is one selectable variant with its stored record.
type MenuItem struct {
	ID     string
	Title  string
	Record int
}

// menuChoice is how the picker was left.
type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceScores
	choiceQuit
)

// MenuModel is the variant picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	choice menuChoice
	keys   MenuKeyMap
	help   help.Model
	width  int
	height int
}

// NewMenuModel lists every registered variant. A nil store shows every
// record as zero.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	var items []MenuItem
	for _, v := range registry.List() {
		item := MenuItem{ID: v.ID, Title: v.Title}
		if store != nil {
			//nolint:errcheck // A missing record shows as zero
			item.Record, _ = store.Record(v.ID)
		}
		items = append(items, item)
	}

	m := MenuModel{items: items, keys: DefaultMenuKeyMap(), help: help.New(), width: width, height: height}
	m.help.Width = width
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// leave records the choice and ends the picker program.
func (m MenuModel) leave(c menuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	return m, tea.Quit
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.leave(choiceQuit)
		case key.Matches(msg, m.keys.Scoreboard):
			return m.leave(choiceScores)
		case key.Matches(msg, m.keys.Select) && len(m.items) > 0:
			return m.leave(choicePlay)
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
		}
	}
	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}

	rows := []string{
		"",
		menuTitleStyle.Render("D I N O   R U N N E R"),
		"",
		menuMutedStyle.Render(hintText),
		"",
	}
	for i, item := range m.items {
		marker, style := "  ", lipgloss.NewStyle()
		if i == m.cursor {
			marker, style = "> ", menuCursorStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-20s best %d", marker, item.Title, item.Record)))
	}
	rows = append(rows, "", m.help.View(m.keys))

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(centerText(row, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the chosen variant, or nil while none was picked.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != choicePlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

func (m MenuModel) IsQuitting() bool { return m.choice == choiceQuit }

func (m MenuModel) WantsScoreboard() bool { return m.choice == choiceScores }

// centerText left-pads text to center it within width cells.
func centerText(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// MenuResult is what the picker was left with. Variant is empty unless a
// game was chosen.
type MenuResult struct {
	Variant         string
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the variant picker in its own program.
func RunMenu(store *storage.Store, width, height int) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, _ := final.(MenuModel)
	switch m.choice {
	case choicePlay:
		return MenuResult{Variant: m.Selected().ID}, nil
	case choiceScores:
		return MenuResult{WantsScoreboard: true}, nil
	}
	return MenuResult{Quit: true}, nil
}
