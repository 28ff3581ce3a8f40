package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/registry"
	"github.com/vovakirdan/tui-wolf/internal/storage"
)

// MenuItem is one selectable line of the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
	Resume  bool // Start the game from the player's quick slot
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("88")).
			Padding(0, 3)
	menuActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuFooterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	player         string
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model. When the player has a quick save
// of a registered game, the menu opens on a resume entry for it.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, player string) MenuModel {
	var items []MenuItem
	if slot, ok := quickSave(store, player); ok {
		if info, found := registry.Lookup(slot.GameID); found && info.Saves {
			items = append(items, MenuItem{
				GameID:  slot.GameID,
				Title:   "Continue",
				Summary: slot.Label,
				Resume:  true,
			})
		}
	}
	for _, g := range registry.List() {
		items = append(items, MenuItem{
			GameID:  g.ID,
			Title:   g.Title,
			Summary: g.Summary,
		})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func quickSave(store *storage.Store, player string) (storage.SaveSlot, bool) {
	if store == nil || player == "" {
		return storage.SaveSlot{}, false
	}
	slot, ok, err := store.GetSave(player, QuickSlot)
	if err != nil {
		return storage.SaveSlot{}, false
	}
	return slot, ok
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
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if len(m.items) > 0 {
			m.cursor = (m.cursor + len(m.items) - 1) % len(m.items)
		}

	case MenuActionDown:
		if len(m.items) > 0 {
			m.cursor = (m.cursor + 1) % len(m.items)
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("W O L F"),
		"",
		fmt.Sprintf("Player: %s", m.playerLabel()),
		"",
	}
	for i, item := range m.items {
		title := "  " + item.Title
		if i == m.cursor {
			title = menuActiveStyle.Render("> " + item.Title)
		}
		lines = append(lines, title)
		if item.Summary != "" {
			lines = append(lines, menuSummaryStyle.Render("    "+item.Summary))
		}
	}
	lines = append(lines, "",
		menuFooterStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"))

	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.PlaceHorizontal(max(m.width, lipgloss.Width(block)), lipgloss.Center, block)
}

func (m MenuModel) playerLabel() string {
	if m.player == "" {
		return "anonymous"
	}
	return m.player
}

// Selected returns the selected menu item, or nil if none selected.
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

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Resume          bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, player string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, player), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
		result.Resume = m.Selected().Resume
	default:
		result.Quit = true
	}
	return result, nil
}
