package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// footerRows is the number of terminal rows below the game screen.
const footerRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
//
// It is the frame scheduler: while the game asks for more frames a tick is
// scheduled per frame, otherwise the loop halts until the next input event.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model

	statusRows int // top rows drawn in the HUD style

	inputFrame core.InputFrame
	gameState  core.GameState
	ticking    bool
	gen        int // tick chain generation; stale ticks are dropped

	recorder *replay.Recorder
	saved    bool     // whether the current round has been stored
	replays  []string // IDs of replays stored by this model

	allowBack  bool
	backToMenu bool
	quitting   bool
}

// NewModel creates a model and resets the game for a first round.
// cfg holds the full terminal size; the help footer is taken off the game screen.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.ScreenH = max(cfg.ScreenH-footerRows, 0)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
	if bar, ok := game.(registry.StatusBar); ok {
		m.statusRows = bar.StatusRows()
	}
	if obs, ok := game.(registry.Observable); ok {
		obs.SetStatusListener(statusLog{logger: logger, game: game.ID()})
	}
	m.startRound()
	return m
}

// Init renders the start screen; the loop starts with the first input.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.keyMapper.MapMouseToFrame(msg, &m.inputFrame) {
			return m.afterInput()
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if !m.ticking || msg.Gen != m.gen {
			return m, nil
		}
		return m, m.step()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case "b":
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.saveReplay()
			m.backToMenu = true
			return m, nil
		}
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveReplay()
		m.quitting = true
		return m, tea.Quit
	}

	// A restart after the round ended begins a new recording, so the new
	// round is replayable from a fresh Reset.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.saveReplay()
		m.startRound()
		m.inputFrame.Set(core.ActionLaunch)
	}

	return m.afterInput()
}

// afterInput steps immediately when the loop is halted, so input both
// applies and restarts ticking. While ticking, input waits for the next tick.
func (m Model) afterInput() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	return m, m.step()
}

// handleResize adapts screen and game to the new terminal size.
// The round keeps running; only rendering and pointer mapping change.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	w, h := msg.Width, max(msg.Height-footerRows, 0)
	if w == m.config.ScreenW && h == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)
	m.help.Width = w

	if m.recorder != nil {
		m.recorder.Resize(w, h)
	} else if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(w, h)
	}
	return m, nil
}

// step runs one frame with the accumulated input and schedules the next one
// if the game asks for it.
func (m *Model) step() tea.Cmd {
	var result core.StepResult
	if m.recorder != nil {
		result = m.recorder.Step(m.inputFrame)
	} else {
		result = m.game.Step(m.inputFrame)
	}
	m.inputFrame.Clear()

	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveReplay()
	}

	if !result.Continue {
		m.ticking = false
		m.gen++
		return nil
	}
	m.ticking = true
	return tickCmd(m.config.TickRate, m.gen)
}

// startRound resets the game and starts a new recording.
func (m *Model) startRound() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.saved = false
	m.recorder = nil

	rec, ok := m.game.(registry.Recordable)
	if !ok {
		return
	}
	recorder, err := replay.NewRecorder(rec, m.config)
	if err != nil {
		m.logger.Warn("recording disabled", "game", m.game.ID(), "error", err)
		return
	}
	m.recorder = recorder
}

// saveReplay stores the current round once. Rounds that never started are skipped.
func (m *Model) saveReplay() {
	if m.saved || m.store == nil || m.recorder == nil || m.recorder.Len() == 0 {
		return
	}
	if m.gameState.Phase == "start" {
		return
	}
	m.saved = true

	r := m.recorder.Replay()
	id, err := m.store.SaveReplay(r)
	if err != nil {
		m.logger.Warn("could not save replay", "game", r.GameID, "error", err)
		return
	}
	m.replays = append(m.replays, id)
	m.logger.Info("replay saved",
		"id", id,
		"game", r.GameID,
		"frames", len(r.Frames),
		"score", r.Score,
		"state", r.State,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
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
	return RenderScreen(m.screen, m.statusRows) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// GameState returns the state reported by the last frame.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Ticking reports whether a frame is scheduled.
func (m Model) Ticking() bool {
	return m.ticking
}

// SavedReplays returns the IDs of replays stored during this model's lifetime.
func (m Model) SavedReplays() []string {
	return m.replays
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a game and returns the IDs of the
// replays stored while it ran.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) ([]string, error) {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // pointer steers the paddle
	)

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.SavedReplays(), nil
	}
	return nil, nil
}

// statusLog writes round status changes to the debug log.
type statusLog struct {
	logger *log.Logger
	game   string
}

func (s statusLog) StatsChanged(score, lives int) {
	s.logger.Debug("stats changed", "game", s.game, "score", score, "lives", lives)
}

func (s statusLog) PhaseChanged(from, to string) {
	s.logger.Debug("state changed", "game", s.game, "from", from, "to", to)
}
