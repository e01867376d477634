package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 20  // Width of game list sidebar
	maxScores          = 100 // Max scores to load
	maxRounds          = 200 // Max rounds of history to load
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorAccent))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorDim))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(core.ColorDim)).
			Padding(0, 1)
	boardActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorWarn))
)

// boardSource is the part of the store the scoreboard reads.
type boardSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentRounds(gameID string, limit int) ([]storage.RoundRecord, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// boardView selects what the table lists.
type boardView int

const (
	viewScores boardView = iota
	viewRounds
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev game"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "scores/rounds"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
// It lists either the best runs or the latest rounds of one game at a time.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	source     boardSource
	view       boardView

	scores []storage.ScoreEntry
	rounds []storage.RoundRecord
	stats  *storage.GameStats

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model. A nil store shows
// empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var src boardSource
	if store != nil {
		src = store
	}
	return newScoreboardModel(src, registry.List(), width, height)
}

func newScoreboardModel(src boardSource, games []registry.GameInfo, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		games:  games,
		source: src,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// showSidebar reports whether the game list fits beside the table.
func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// columns lays out the table for the current view. The date column takes
// whatever width is left, up to 20 cells.
func (m ScoreboardModel) columns() []table.Column {
	avail := m.width - 4 // Margins
	if m.showSidebar() {
		avail -= sidebarWidth + 3 // Sidebar + border + gap
	}

	var cols []table.Column
	if m.view == viewRounds {
		cols = []table.Column{
			{Title: "Round", Width: 6},
			{Title: "Result", Width: 7},
			{Title: "Points", Width: 7},
			{Title: "Streak", Width: 7},
			{Title: "Time", Width: 6},
		}
	} else {
		cols = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Streak", Width: 8},
		}
	}

	used := 0
	for _, c := range cols {
		used += c.Width + 2 // cell padding
	}
	return append(cols, table.Column{Title: "Date", Width: core.Clamp(avail-used, 12, 20)})
}

func (m ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Header, summary, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(core.ColorDim)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// currentGame returns the selected game, or false when nothing is registered.
func (m ScoreboardModel) currentGame() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.gameCursor], true
}

// reload fetches data for the selected game and rebuilds the rows.
// Read errors leave the table empty.
func (m *ScoreboardModel) reload() {
	m.scores, m.rounds, m.stats = nil, nil, nil

	g, ok := m.currentGame()
	if ok && m.source != nil {
		if scores, err := m.source.TopScores(g.ID, maxScores); err == nil {
			m.scores = scores
		}
		if rounds, err := m.source.RecentRounds(g.ID, maxRounds); err == nil {
			m.rounds = rounds
		}
		if stats, err := m.source.GetGameStats(g.ID); err == nil {
			m.stats = stats
		}
	}

	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m ScoreboardModel) rows() []table.Row {
	if m.view == viewRounds {
		rows := make([]table.Row, len(m.rounds))
		for i, r := range m.rounds {
			result := "miss"
			if r.Success {
				result = "won"
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", r.RoundNo),
				result,
				fmt.Sprintf("%+d", r.Delta),
				fmt.Sprintf("%d", r.Streak),
				fmt.Sprintf("%.1fs", r.Duration.Seconds()),
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.BestStreak),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.selectGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.selectGame(-1)
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.view == viewScores {
				m.view = viewRounds
			} else {
				m.view = viewScores
			}
			m.table = m.createTable()
			m.table.SetRows(m.rows())
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(m.rows())
		return m, nil
	}

	// Scrolling and anything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) selectGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = core.Wrap(m.gameCursor+delta, len(m.games))
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	heading := "HIGH SCORES"
	if m.view == viewRounds {
		heading = "ROUND HISTORY"
	}
	if g, ok := m.currentGame(); ok {
		heading += " - " + g.Title
	}
	b.WriteString(boardTitleStyle.Render(centerText(heading, m.width)))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	body := boardFrameStyle.Render(m.renderTableContent())
	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary describes the selected game's history in one line.
func (m ScoreboardModel) summary() string {
	st := m.stats
	if st == nil || (st.GamesCount == 0 && st.Rounds == 0) {
		return "Nothing played yet"
	}
	if st.Rounds == 0 {
		return fmt.Sprintf("Games %d  Best %d  Avg %.1f", st.GamesCount, st.HighScore, st.AvgScore)
	}
	return fmt.Sprintf("Rounds %d/%d won (%.0f%%)  Avg %.1fs  Best streak %d",
		st.RoundsWon, st.Rounds, st.Accuracy()*100, st.AvgRoundDur.Seconds(), st.BestStreak)
}

func (m ScoreboardModel) renderSidebar() string {
	var list strings.Builder
	list.WriteString("Games\n")
	list.WriteString(strings.Repeat("-", sidebarWidth-4))
	list.WriteString("\n")

	for i, g := range m.games {
		name := g.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.gameCursor {
			list.WriteString(boardActiveStyle.Render("> " + name))
		} else {
			list.WriteString("  " + name)
		}
		list.WriteString("\n")
	}

	return boardFrameStyle.Width(sidebarWidth).Render(list.String())
}

// renderTabs lists games on one line, or just the current one with arrows
// when they don't fit.
func (m ScoreboardModel) renderTabs() string {
	g, ok := m.currentGame()
	if !ok {
		return ""
	}

	tabs := make([]string, len(m.games))
	width := 0
	for i, game := range m.games {
		name := game.Title
		if len(name) > 10 {
			name = name[:9] + "."
		}
		if i == m.gameCursor {
			tabs[i] = boardActiveStyle.Render("[" + name + "]")
		} else {
			tabs[i] = boardDimStyle.Render(" " + name + " ")
		}
		width += len(name) + 3
	}

	if width > m.width-4 {
		return fmt.Sprintf("< %s >", g.Title)
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.scores) == 0
	msg := "No scores recorded yet.\nPlay a game to set a high score!"
	if m.view == viewRounds {
		empty = len(m.rounds) == 0
		msg = "No rounds recorded yet."
	}
	if empty {
		return boardDimStyle.Italic(true).Padding(2, 4).Render(msg)
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
