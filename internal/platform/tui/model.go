package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel is the Bubble Tea model that runs one game: it is the frame
// driver. Every tick it forwards synthesized key releases, advances the
// game by the measured frame time and renders the result.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	log    *log.Logger

	keys     GameKeyMap
	help     help.Model
	showHelp bool
	hold     *holdTracker

	player     string
	runID      string
	state      core.GameState
	lastTick   time.Time
	scoreSaved bool

	// embedded models hand control back to a session instead of quitting.
	embedded   bool
	quitting   bool
	backToMenu bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithPlayer sets the name scores are saved under.
func WithPlayer(name string) GameOption {
	return func(m *GameModel) { m.player = name }
}

// WithGameLogger sets the logger for platform events.
func WithGameLogger(l *log.Logger) GameOption {
	return func(m *GameModel) { m.log = l }
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) GameOption {
	return func(m *GameModel) { m.showHelp = show }
}

func embedded() GameOption {
	return func(m *GameModel) { m.embedded = true }
}

// NewGameModel resets the game for the given runtime config and wraps it
// in a model. A Reset error means the game cannot start.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) (GameModel, error) {
	m := GameModel{
		game:     game,
		store:    store,
		config:   cfg,
		log:      log.Default(),
		keys:     DefaultGameKeyMap(),
		help:     help.New(),
		showHelp: true,
		hold:     newHoldTracker(),
		player:   storage.AnonymousPlayer,
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = cfg.ScreenW

	m.screen = core.NewScreen(cfg.ScreenW, m.fieldRows(cfg.ScreenH))
	if err := game.Reset(cfg); err != nil {
		return GameModel{}, fmt.Errorf("tui: cannot start %s: %w", game.ID(), err)
	}
	m.state = game.State()
	m.log.Debug("run started", "game", game.ID(), "run", m.runID, "player", m.player)
	return m, nil
}

// fieldRows returns the rows left for the game once the help footer is placed.
func (m GameModel) fieldRows(height int) int {
	if m.showHelp && height > 1 {
		return height - 1
	}
	return height
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.game.HandleClick(core.ClickEvent{X: msg.X, Y: msg.Y})
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "err", err)
		} else {
			m.log.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.state.GameOver || m.state.Paused {
			return m.leave()
		}
		return m, nil
	}

	k, ok := m.keys.GameKey(msg)
	if !ok {
		return m, nil
	}
	if tracked(k) {
		m.forward(m.hold.Press(k, time.Now()))
	} else {
		m.game.HandleKey(core.Press(k))
	}
	return m.observe(m.game.State())
}

// forward delivers key events to the game in order.
func (m GameModel) forward(events []core.KeyEvent) {
	for _, ev := range events {
		m.game.HandleKey(ev)
	}
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.fieldRows(msg.Height))
	return m, nil
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.forward(m.hold.Tick(now))

	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now
	result := m.game.Update(dt)

	next, cmd := m.observe(result.State)
	if cmd != nil {
		return next, cmd
	}
	return next, tickCmd(m.config.TickRate)
}

// observe records a new game state: it starts a new run after a restart,
// saves the score once per finished run and honours the exit request.
func (m GameModel) observe(st core.GameState) (GameModel, tea.Cmd) {
	if m.state.GameOver && !st.GameOver {
		m.runID = uuid.NewString()
		m.scoreSaved = false
		m.hold.Reset()
		m.log.Debug("run started", "game", m.game.ID(), "run", m.runID)
	}
	m.state = st

	if st.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	if st.Exit {
		return m.leave()
	}
	return m, nil
}

// leave ends the model: embedded models return to their session menu,
// standalone ones quit the program.
func (m GameModel) leave() (GameModel, tea.Cmd) {
	if m.embedded {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

func (m GameModel) saveScore() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.player, m.runID, m.state.Score); err != nil {
		m.log.Warn("could not save score", "game", m.game.ID(), "err", err)
		return
	}
	m.log.Info("score saved", "game", m.game.ID(), "player", m.player, "score", m.state.Score, "won", m.state.Won)
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots and returns the file path.
func (m GameModel) saveScreenshot() (string, error) {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	if m.showHelp && m.config.ScreenH > 1 {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

// Close releases the game's resources.
func (m GameModel) Close() {
	m.game.Free()
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// RunID returns the identifier scores of the current run are saved under.
func (m GameModel) RunID() string {
	return m.runID
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the game asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) error {
	model, err := NewGameModel(game, store, cfg, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	model.Close()
	return err
}
