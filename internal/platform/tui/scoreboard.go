package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

// historyLimit caps how many sessions one board page loads.
const historyLimit = 100

// boardOrder selects which sessions the board lists.
type boardOrder int

const (
	orderBest boardOrder = iota
	orderRecent
)

func (o boardOrder) String() string {
	if o == orderRecent {
		return "latest sessions"
	}
	return "best sessions"
}

// BoardKeyMap defines the scoreboard bindings. Row scrolling is left to the
// table's own key map.
type BoardKeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Order key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Order, k.Back, k.Quit}
}

func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Next:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next variant")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev variant")),
		Order: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "best/latest")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTabStyle    = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	boardActiveStyle = boardTabStyle.Bold(true).Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#4ECDC4"))
	boardFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle  = menuMutedStyle.Italic(true).Padding(1, 3)
)

// ScoreboardModel browses the recorded sessions of every variant.
type ScoreboardModel struct {
	store     *storage.Store
	variants  []registry.VariantInfo
	cursor    int
	order     boardOrder
	entries   []storage.ScoreEntry
	stats     *storage.VariantStats
	table     table.Model
	help      help.Model
	keys      BoardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the board on the first registered variant.
// A nil store shows every variant as empty.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		keys:     DefaultBoardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.table = newBoardTable(width, height)
	m.reload()
	return m
}

// newBoardTable sizes the columns to the terminal; the date column absorbs
// any spare width.
func newBoardTable(width, height int) table.Model {
	date := min(max(width-40, 12), 20)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Length", Width: 8},
			{Title: "Played", Width: date},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("#4ECDC4")).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.Bold(false).Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("229"))
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) current() (registry.VariantInfo, bool) {
	if len(m.variants) == 0 {
		return registry.VariantInfo{}, false
	}
	return m.variants[m.cursor], true
}

// reload fetches the selected variant's sessions in the current order.
// Store errors leave the board empty.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats = nil, nil
	if v, ok := m.current(); ok && m.store != nil {
		fetch := m.store.TopScores
		if m.order == orderRecent {
			fetch = m.store.RecentScores
		}
		m.entries, _ = fetch(v.ID, historyLimit)
		m.stats, _ = m.store.Stats(v.ID)
	}

	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			formatTicks(e.Ticks),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// step moves the variant cursor by delta, wrapping at both ends.
func (m *ScoreboardModel) step(delta int) {
	if n := len(m.variants); n > 0 {
		m.cursor = ((m.cursor+delta)%n + n) % n
		m.reload()
	}
}

// formatTicks shows a session length at the default tick rate.
func formatTicks(ticks int) string {
	d := time.Duration(ticks) * time.Second / DefaultTickRate
	return d.Round(100 * time.Millisecond).String()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newBoardTable(m.width, m.height)
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if v, ok := m.current(); ok {
		title += " - " + v.Title
	}

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		style := boardTabStyle
		if i == m.cursor {
			style = boardActiveStyle
		}
		tabs[i] = style.Render(v.Title)
	}

	body := boardEmptyStyle.Render("No sessions recorded yet.\nFinish a run to put a score on the board.")
	if len(m.entries) > 0 {
		body = m.table.View()
	}

	lines := []string{
		"",
		menuTitleStyle.Render(title),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		menuMutedStyle.Render(m.summary()),
		boardFrameStyle.Render(body),
		m.help.View(m.keys),
	}
	var b strings.Builder
	for _, line := range lines {
		for _, row := range strings.Split(line, "\n") {
			b.WriteString(centerText(row, m.width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// summary describes the listing and the variant's aggregate stats.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.Sessions == 0 {
		return m.order.String()
	}
	return fmt.Sprintf("%s · record %d · %d runs · avg %.0f · last %s",
		m.order, m.stats.Record, m.stats.Sessions, m.stats.AvgScore,
		m.stats.LastPlayed.Local().Format("Jan 02"))
}

// IsGoingBack reports whether the board closed back to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the board asked to exit the program.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard shows the board in its own program.
// goBack is false when the player quit instead.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, _ := final.(ScoreboardModel)
	return m.IsGoingBack(), nil
}
