package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/registry"
	"github.com/vovakirdan/chroma-arcade/internal/storage"
)

// sessionScreen is what a remote player is looking at.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenPlaying
)

// SessionModel drives one remote player through menu, scoreboard and
// games until they quit. Every SSH connection gets its own.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	player string
	id     string
	logger *log.Logger

	screen   sessionScreen
	menu     MenuModel
	board    ScoreboardModel
	play     GameModel
	quitting bool
}

// NewSessionModel creates a session for player, logging under a fresh
// session id.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()

	return SessionModel{
		store:  store,
		config: cfg,
		player: player,
		id:     id,
		logger: logger.With("session", id, "user", player),
		menu:   NewMenuModel(store, cfg),
	}
}

// SessionID returns the unique id of this session.
func (m SessionModel) SessionID() string {
	return m.id
}

// Screen reports the active screen.
func (m SessionModel) Screen() sessionScreen {
	return m.screen
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes a message to the active screen. Size changes are kept so
// the next screen opens at the right size.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch m.screen {
	case screenScores:
		return m.updateScores(msg)
	case screenPlaying:
		return m.updatePlaying(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.board.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

// startGame opens gameID, or returns to the menu with a notice when the
// game cannot load its settings.
func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	cfg := m.menu.Config()
	cfg.Seed = time.Now().UnixNano()

	game, err := registry.Create(gameID)
	if err == nil {
		err = registry.Check(game, cfg)
	}
	if err != nil {
		m.logger.Error("cannot start game", "game", gameID, "error", err)
		return m.backToMenu(fmt.Sprintf("Cannot start %s: %v", gameID, err))
	}

	m.config = cfg
	m.play = NewGameModel(game, m.store, cfg, m.logger)
	m.screen = screenPlaying
	m.logger.Info("round run started", "game", gameID, "run", m.play.rec.RunID())
	return m, m.play.Init()
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		return m.backToMenu("")
	}
	return m, cmd
}

func (m SessionModel) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if play, ok := next.(GameModel); ok {
		m.play = play
	}

	if !m.play.IsQuitting() && !m.play.BackToMenu() {
		return m, cmd
	}

	state := m.play.State()
	m.logger.Info("round run finished",
		"game", m.play.game.ID(),
		"score", state.Score,
		"best_streak", state.BestStreak,
	)
	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	// A fresh menu picks up the scores just saved.
	return m.backToMenu("")
}

func (m SessionModel) backToMenu(notice string) (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	m.menu.notice = notice
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenScores:
		return m.board.View()
	case screenPlaying:
		return m.play.View()
	default:
		return m.menu.View()
	}
}
