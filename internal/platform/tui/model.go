package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/games/flappy"
)

// ScoreRecorder persists finished runs.
// It returns the player's best score after recording.
type ScoreRecorder interface {
	RecordScore(player string, score int, duration time.Duration) (int, error)
}

// Deps are the collaborators of a Model. Every field is optional.
type Deps struct {
	Renderer *Renderer          // nil draws flat colors
	Recorder ScoreRecorder      // nil disables score recording
	Player   string             // leaderboard name; empty disables recording
	Logger   *log.Logger        // nil discards
	Styles   *lipgloss.Renderer // per-connection renderer for SSH sessions
}

// Model is the Bubble Tea model for one game session.
// Key presses are queued and handed to the session on the next tick, so
// every frame sees its actions in arrival order.
type Model struct {
	session  *flappy.Session
	screen   *core.Screen
	renderer *Renderer
	keys     *KeyMapper
	pending  core.InputFrame
	config   core.RuntimeConfig
	styles   *lipgloss.Renderer
	lastTick time.Time
	quitting bool
}

// NewModel creates a new Bubble Tea model with a fresh session.
func NewModel(cfg core.RuntimeConfig, deps Deps) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if deps.Renderer == nil {
		deps.Renderer = NewRenderer(nil, core.ColorBackground, core.ColorText)
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	session := flappy.NewSession(cfg.Seed)
	session.OnGameOver(func(r flappy.RunResult) {
		recordRun(deps, r)
	})

	return Model{
		session:  session,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer: deps.Renderer,
		keys:     NewKeyMapper(DefaultKeyMap()),
		pending:  core.NewInputFrame(),
		config:   cfg,
		styles:   deps.Styles,
	}
}

// recordRun stores a finished run. Failures are logged and never stop the game.
func recordRun(deps Deps, r flappy.RunResult) {
	if deps.Recorder == nil || deps.Player == "" {
		return
	}
	best, err := deps.Recorder.RecordScore(deps.Player, r.Score, r.Duration)
	if err != nil {
		deps.Logger.Warn("could not record score", "player", deps.Player, "score", r.Score, "error", err)
		return
	}
	deps.Logger.Info("run finished", "player", deps.Player, "score", r.Score, "best", best, "duration", r.Duration)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues gameplay keys; quit takes effect immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.session.Handle(core.ActionQuit)
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	default:
		m.pending.Push(action)
		return m, nil
	}
}

// handleResize processes window resize events.
// The simulation is resolution independent, so only the screen changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one frame with the time elapsed since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1.0 / float64(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	running := m.session.Frame(dt, m.pending)
	m.pending.Clear()
	if !running {
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Render(m.screen, m.session.Snapshot())
	return RenderScreen(m.screen, m.styles)
}

// Session exposes the game session. Callers must treat it as read-only.
func (m Model) Session() *flappy.Session {
	return m.session
}

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(cfg core.RuntimeConfig, deps Deps, opts ...tea.ProgramOption) error {
	model := NewModel(cfg, deps)

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(model, opts...)

	_, err := p.Run()
	return err
}
