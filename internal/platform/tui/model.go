package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
// At most one FrameMsg is in flight at a time: framePending is set when a
// frame is requested and cleared when it arrives.
type Model struct {
	game         registry.Game
	screen       *core.Screen
	config       core.RuntimeConfig
	keys         KeyMap
	help         help.Model
	logger       *log.Logger
	now          func() time.Time
	width        int
	height       int
	framePending bool
	quitting     bool
}

// NewModel creates a model for game and starts a new game on it.
// The first frame is requested by Init.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:         game,
		config:       cfg,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		logger:       logger,
		now:          time.Now,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		framePending: true,
	}
	m.screen = core.NewScreen(m.boardSize())

	game.Reset(cfg, m.now())
	logger.Info("game started", "game", game.ID(), "seed", cfg.Seed)
	return m
}

// Init requests the first frame.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// invalidate requests a frame unless one is already pending.
func (m *Model) invalidate() tea.Cmd {
	if m.framePending {
		return nil
	}
	m.framePending = true
	return frameCmd(m.config.FrameRate)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.boardSize())
		return m, m.invalidate()
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("game finished", "game", m.game.ID(), "best", m.game.State().HighScore)
		return m, tea.Quit
	}

	if !m.game.Apply(action, m.now()) {
		return m, nil
	}
	m.logger.Debug("action", "action", action, "max", m.game.State().MaxTile)
	return m, m.invalidate()
}

// handleResize only reshapes the screen buffer; the game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(m.boardSize())

	return m, m.invalidate()
}

// handleFrame advances animations and asks for another frame while any run.
func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	m.framePending = false
	if m.game.Tick(time.Time(msg)) {
		return m, m.invalidate()
	}
	return m, nil
}

// boardSize returns the screen area left after the help bar.
func (m Model) boardSize() (int, int) {
	helpRows := lipgloss.Height(m.help.View(m.keys))
	return m.width, max(m.height-helpRows, 0)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
