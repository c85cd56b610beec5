package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/sats-skater/internal/core"
	"github.com/vovakirdan/sats-skater/internal/loop"
	"github.com/vovakirdan/sats-skater/internal/registry"
	"github.com/vovakirdan/sats-skater/internal/storage"
)

// Options are the optional collaborators of a play model.
type Options struct {
	Store  *storage.Store
	Sink   EventSink
	Logger *log.Logger
	// FPS is the terminal redraw rate. It defaults to the tick rate and does
	// not change the simulation speed.
	FPS int
	// SnapshotEvery publishes a world snapshot to the sink every n ticks.
	// Zero disables snapshots.
	SnapshotEvery int
}

// highScorer is implemented by games that show a stored high score.
type highScorer interface {
	SetHighScore(score int)
}

// runState is shared between the model copies Bubble Tea makes and the
// loop callbacks.
type runState struct {
	loop     *loop.Loop
	tracker  *core.InputTracker
	now      time.Time
	state    core.GameState
	tick     uint64
	runID    string
	saved    bool
	snapTick uint64 // tick of the last published snapshot
}

// Model is the Bubble Tea model for playing one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	run        *runState
	embedded   bool // Hosted by a session; back returns to the menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = loop.DefaultTickRate
	}
	if opts.FPS <= 0 {
		opts.FPS = cfg.TickRate
	}

	run := &runState{tracker: core.NewInputTracker(core.DefaultHoldWindow)}
	run.loop = loop.New(loop.Config{TickRate: cfg.TickRate}, func(float64) {
		result := game.Step(run.tracker.Frame(run.now))
		run.state = result.State
		run.tick = result.Tick
	}, nil)

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		run:       run,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.startRun()
	m.run.loop.Start()
	return tickCmd(m.opts.FPS)
}

// startRun resets the game for a new run with a fresh run ID.
func (m Model) startRun() {
	m.game.Reset(m.config)
	m.run.tracker.Reset()
	m.run.loop.Reset()
	m.run.state = m.game.State()
	m.run.tick = 0
	m.run.runID = uuid.NewString()
	m.run.saved = false
	m.run.snapTick = 0
	m.loadHighScore()
}

func (m Model) loadHighScore() {
	hs, ok := m.game.(highScorer)
	if !ok || m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.HighScore(m.difficulty())
	if err != nil {
		m.logger().Warn("could not load high score", "error", err)
		return
	}
	hs.SetHighScore(best)
}

func (m Model) difficulty() string {
	if src, ok := m.game.(core.StatsSource); ok {
		return src.RunStats().Difficulty
	}
	return ""
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (m Model) logger() *log.Logger { return m.opts.logger() }

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer scales the world to any size, so the run continues.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	over := m.run.state.GameOver
	switch action {
	case core.ActionBack:
		if over || m.run.state.Paused {
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		action = core.ActionPause
	case core.ActionRestart:
		if over {
			// New seed for every restart
			m.config.Seed = time.Now().UnixNano()
			m.startRun()
			return m, nil
		}
	}

	m.run.tracker.Press(action, time.Now())
	return m, nil
}

// handleTick runs one loop frame and forwards what the game produced.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	m.run.now = now
	m.run.loop.Frame(now)
	m.afterFrame()
	return m, tickCmd(m.opts.FPS)
}

// afterFrame drains game events into the sink and saves the run once it is over.
func (m Model) afterFrame() {
	if src, ok := m.game.(core.EventSource); ok && m.opts.Sink != nil {
		for _, e := range src.DrainEvents() {
			m.opts.Sink.Publish(m.run.runID, e)
		}
	}
	m.publishSnapshot()

	if m.run.state.GameOver && !m.run.saved {
		m.run.saved = true
		m.saveRun()
	}
}

// publishSnapshot sends a world snapshot once SnapshotEvery ticks have run.
func (m Model) publishSnapshot() {
	every := uint64(max(m.opts.SnapshotEvery, 0))
	if every == 0 || m.opts.Sink == nil || m.run.tick < m.run.snapTick+every {
		return
	}
	src, ok := m.game.(core.SnapshotSource)
	if !ok {
		return
	}
	m.run.snapTick = m.run.tick
	m.opts.Sink.Publish(m.run.runID, src.SnapshotEvent())
}

// saveRun stores the finished run. A failed save is logged and play goes on.
func (m Model) saveRun() {
	src, ok := m.game.(core.StatsSource)
	if !ok {
		return
	}
	stats := src.RunStats()
	if m.opts.Sink != nil {
		m.opts.Sink.Publish(m.run.runID, core.Event{Name: "run_over", Tick: m.run.tick, Data: stats})
	}
	if m.opts.Store == nil || stats.Score <= 0 {
		return
	}

	result := storage.NewRunResult(stats, m.config.Player)
	result.RunID = m.run.runID
	if _, err := m.opts.Store.SaveRun(result); err != nil {
		m.logger().Error("could not save run", "run", m.run.runID, "error", err)
		return
	}
	m.logger().Debug("run saved", "run", m.run.runID, "score", stats.Score, "difficulty", stats.Difficulty)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sats-skater", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// RunID returns the ID of the current run.
func (m Model) RunID() string { return m.run.runID }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
