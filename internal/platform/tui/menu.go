package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorAccent))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorText))
	menuSelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorWarn))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorDim))
	menuNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorBad))
)

// spectrum colours the band above the title and, in order, each game's chip.
var spectrum = []string{"#ef4444", "#f97316", "#facc15", "#22c55e", "#3b82f6", "#a855f7"}

const menuTitle = "C H R O M A   A R C A D E"

// MenuItem is one game in the picker with the player's records for it.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Chip        string // "#rrggbb" shown before the title
	HighScore   int
	BestStreak  int
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	notice    string // shown under the list, e.g. why a game failed to start

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists registered games. Records are read from store when
// it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))

	for i, g := range games {
		items[i] = MenuItem{
			GameID:      g.ID,
			Title:       g.Title,
			Description: g.Description,
			Chip:        spectrum[i%len(spectrum)],
		}
		if store == nil {
			continue
		}
		if high, err := store.HighScore(g.ID); err == nil {
			items[i].HighScore = high
		}
		if streak, err := store.BestStreak(g.ID); err == nil {
			items[i].BestStreak = streak
		}
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

// handleKey moves the cursor or leaves the menu with a choice.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, max(len(m.items)-1, 0))
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	var band strings.Builder
	for _, hex := range spectrum {
		band.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    "))
	}

	sections := []string{
		"",
		center(band.String()),
		"",
		center(menuTitleStyle.Render(menuTitle)),
		center(menuDimStyle.Render("How well do you see colour?")),
		"",
		center(m.renderList()),
	}

	if len(m.items) > 0 {
		sections = append(sections, "", center(menuDimStyle.Render(m.items[m.cursor].Description)))
	}
	if m.notice != "" {
		sections = append(sections, "", center(menuNoticeStyle.Render(m.notice)))
	}
	sections = append(sections, "",
		center(menuDimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit")))

	return strings.Join(sections, "\n") + "\n"
}

// renderList draws one row per game: cursor, colour chip, title, records.
func (m MenuModel) renderList() string {
	rows := make([]string, len(m.items))
	for i, item := range m.items {
		pointer, style := "  ", menuItemStyle
		if i == m.cursor {
			pointer, style = "> ", menuSelStyle
		}

		chip := lipgloss.NewStyle().Background(lipgloss.Color(item.Chip)).Render("  ")
		row := style.Render(fmt.Sprintf("%s%-14s", pointer, item.Title))

		var records []string
		if item.HighScore > 0 {
			records = append(records, fmt.Sprintf("best %d", item.HighScore))
		}
		if item.BestStreak > 0 {
			records = append(records, fmt.Sprintf("streak %d", item.BestStreak))
		}
		rows[i] = chip + " " + row
		if len(records) > 0 {
			rows[i] += menuDimStyle.Render(" " + strings.Join(records, ", "))
		}
	}
	return strings.Join(rows, "\n")
}

// Selected returns the chosen game, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized if the terminal changed.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers plain text within width.
func centerText(text string, width int) string {
	if n := lipgloss.Width(text); n < width {
		return strings.Repeat(" ", (width-n)/2) + text
	}
	return text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state. Leaving without a choice is a quit.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.openScoreboard:
		res.WantsScoreboard = true
	case m.selected != nil && !m.quitting:
		res.GameID = m.selected.GameID
	default:
		res.Quit = true
	}
	return res
}

// RunMenu shows the picker in the local terminal. notice, if set, is shown
// under the game list.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, notice string) (MenuResult, error) {
	model := NewMenuModel(store, cfg)
	model.notice = notice

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	if m, ok := final.(MenuModel); ok {
		return m.result(), nil
	}
	return MenuResult{Config: cfg, Quit: true}, nil
}
