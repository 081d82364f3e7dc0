package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shatter/internal/core"
	"github.com/vovakirdan/shatter/internal/registry"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	showHelp   bool
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	log        *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards output.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		log:        logger,
	}
}

// Init starts the tick loop. The game itself is reset by Run before the
// program starts, since Init has a value receiver.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.showHelp = !m.showHelp
		m.resizeScreen()
		return m, nil
	}

	m.log.Debug("key", "key", msg.String(), "action", action.String())
	m.inputFrame.Set(action)
	return m, nil
}

// handleMouse tracks the pointer and turns clicks into fire actions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Clicks on the help footer do not aim.
	area := core.NewRect(0, 0, m.screen.Width(), m.screen.Height())
	if !area.Contains(msg.X, msg.Y) {
		return m, nil
	}
	m.inputFrame.SetPointer(msg.X, msg.Y)
	if MouseFires(msg) {
		m.inputFrame.Set(core.ActionFire)
	}
	return m, nil
}

// handleResize follows terminal size changes. Games implementing
// registry.Resizer keep their state; others are reset.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	if !m.resizeScreen() && !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	m.log.Debug("resized", "width", msg.Width, "height", msg.Height)

	return m, nil
}

// handleTick steps the simulation with the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Elapsed = elapsedSince(m.lastTick, now)
	m.lastTick = now

	// The frame is cleared below, so the game gets its own copy.
	result := m.game.Step(m.inputFrame.Clone())
	if result.State.GameOver && !m.gameState.GameOver {
		m.log.Info("game over", "game", m.game.ID(), "score", result.State.Score, "reason", result.State.Message)
	}
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// resizeScreen fits the game screen to the terminal, reserving the last
// row for the help footer when it is shown. It reports whether the game
// followed the new size.
func (m *Model) resizeScreen() bool {
	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)
	r, ok := m.game.(registry.Resizer)
	if ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	}
	return ok
}

// gameConfig returns the runtime config as seen by the game.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	if m.showHelp && cfg.ScreenH > 1 {
		cfg.ScreenH--
	}
	return cfg
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.showHelp {
		out += "\n" + m.help.View(m.keys)
	}
	return out
}

// Run resets the game and starts the Bubble Tea program.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)
	game.Reset(model.gameConfig())
	model.gameState = game.State()
	model.log.Info("starting", "game", game.ID(), "width", cfg.ScreenW, "height", cfg.ScreenH, "fps", cfg.TickRate)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
