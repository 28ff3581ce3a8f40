package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/registry"
	"github.com/vovakirdan/tui-wolf/internal/storage"
)

// QuickSlot is the save slot written by Ctrl+S and read by Ctrl+L.
const QuickSlot = 0

// statusFrames is how long a platform status line stays visible.
const statusFrames = 105

// GameModel runs one game: it feeds key presses to the simulation at the
// tick rate and persists saves, level results and scores for its player.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone play has no menu to go back to
	scoreSaved bool // Whether score has been saved for current game over
	resume     bool // Load the quick slot on the first tick

	status       string
	statusFrames int
}

// NewGameModel creates a new game model. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		player:     player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// ResumeQuickSlot makes the model load the player's quick slot as soon as
// the game starts.
func (m *GameModel) ResumeQuickSlot() {
	m.resume = true
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The automap adapts to any size, so a resize keeps the run going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Back to menu (B or Esc) only once the game is over or paused
	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	if m.statusFrames > 0 {
		if m.statusFrames--; m.statusFrames == 0 {
			m.status = ""
		}
	}

	if m.resume {
		m.resume = false
		m.loadSlot()
	}

	// A restart is a new run; a fresh score may be saved for it
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.scoreSaved = false
	}
	if m.inputFrame.Has(core.ActionSave) {
		m.saveSlot()
	}
	if m.inputFrame.Has(core.ActionLoad) {
		m.loadSlot()
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.recordReports()

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) setStatus(msg string) {
	m.status = msg
	m.statusFrames = statusFrames
}

// saveSlot writes the running level to the quick slot.
func (m *GameModel) saveSlot() {
	p, ok := m.game.(registry.Persistable)
	if !ok {
		m.setStatus("This game cannot be saved")
		return
	}
	if m.store == nil {
		m.setStatus("No database, cannot save")
		return
	}
	data, err := p.SaveState()
	if err != nil {
		m.logger.Warn("save failed", "player", m.player, "err", err)
		m.setStatus("Save failed")
		return
	}
	level := m.game.State().Level
	err = m.store.PutSave(storage.SaveSlot{
		Player: m.player,
		Slot:   QuickSlot,
		GameID: m.game.ID(),
		Map:    level,
		Label:  fmt.Sprintf("%s %s", level, time.Now().Format("Jan 02 15:04")),
		Data:   data,
	})
	if err != nil {
		m.logger.Error("cannot store save slot", "player", m.player, "err", err)
		m.setStatus("Save failed")
		return
	}
	m.logger.Info("game saved", "player", m.player, "map", level, "bytes", len(data))
}

// loadSlot restores the quick slot.
func (m *GameModel) loadSlot() {
	p, ok := m.game.(registry.Persistable)
	if !ok || m.store == nil {
		m.setStatus("Nothing to load")
		return
	}
	slot, found, err := m.store.GetSave(m.player, QuickSlot)
	switch {
	case err != nil:
		m.logger.Error("cannot read save slot", "player", m.player, "err", err)
		m.setStatus("Load failed")
		return
	case !found:
		m.setStatus("No saved game")
		return
	case slot.GameID != m.game.ID():
		m.setStatus(fmt.Sprintf("Saved game belongs to %s", slot.GameID))
		return
	}
	if err := p.LoadState(slot.Data); err != nil {
		m.logger.Warn("load failed", "player", m.player, "err", err)
		m.setStatus("Saved game is damaged")
		return
	}
	m.scoreSaved = false
	m.logger.Info("game loaded", "player", m.player, "map", slot.Map)
}

// recordReports stores the results of levels finished during the last step.
func (m *GameModel) recordReports() {
	r, ok := m.game.(registry.Reporter)
	if !ok {
		return
	}
	for _, report := range r.DrainReports() {
		if m.store == nil {
			continue
		}
		if _, err := m.store.RecordLevel(m.player, report); err != nil {
			m.logger.Error("cannot record level", "map", report.Map, "err", err)
		}
	}
}

func (m *GameModel) saveScore() {
	if m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.player,
		Map:    m.gameState.Level,
		Score:  m.gameState.Score,
		Won:    m.gameState.Won,
	})
	if err != nil {
		m.logger.Error("cannot save score", "player", m.player, "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.status, core.ColorBrightRed)
	}

	// Convert screen to string
	return RenderScreen(m.screen)
}

// close releases what the game holds, such as its metrics contribution.
func (m *GameModel) close() {
	if c, ok := m.game.(interface{ Close() }); ok {
		c.Close()
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Status returns the platform status line, empty when none is shown.
func (m GameModel) Status() string {
	return m.status
}

// RunOptions are the collaborators of a standalone game program.
type RunOptions struct {
	Store  *storage.Store // May be nil
	Player string
	Logger *log.Logger
	Resume bool // Start from the player's quick slot
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) error {
	model := NewGameModel(game, opts.Store, cfg, opts.Player, opts.Logger)
	model.quitOnBack = true
	model.resume = opts.Resume

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	model.close()
	return err
}
