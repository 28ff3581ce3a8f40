package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-wolf/internal/core"
	"github.com/vovakirdan/tui-wolf/internal/registry"
	"github.com/vovakirdan/tui-wolf/internal/storage"
)

const (
	minWidthForPanel = 84  // Narrower screens drop the stats panel
	panelWidth       = 24
	maxRows          = 100 // Rows loaded per table
)

// recordView selects what the scoreboard table lists.
type recordView int

const (
	viewScores recordView = iota
	viewLevels
)

func (v recordView) String() string {
	if v == viewLevels {
		return "Level records"
	}
	return "High scores"
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("88")).
			Padding(0, 1)
	tabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle = dimStyle.Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Switch   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.NextGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.NextGame, k.PrevGame, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "prev game")),
		Switch:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "scores/levels")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the high scores of each game and the most recent
// level results.
type ScoreboardModel struct {
	games     []registry.GameInfo
	game      int
	view      recordView
	store     *storage.Store
	scores    []storage.ScoreEntry
	levels    []storage.LevelStat
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

func (m *ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.game].ID
}

// reload fetches the records of the current game and view.
func (m *ScoreboardModel) reload() {
	m.scores, m.levels, m.stats, m.loadErr = nil, nil, nil, nil
	if m.store != nil && m.gameID() != "" {
		switch m.view {
		case viewScores:
			m.scores, m.loadErr = m.store.TopScores(m.gameID(), maxRows)
			if m.loadErr == nil {
				m.stats, m.loadErr = m.store.GetGameStats(m.gameID())
			}
		case viewLevels:
			m.levels, m.loadErr = m.store.LevelHistory("", maxRows)
		}
	}
	m.table = m.buildTable()
}

func (m *ScoreboardModel) columns() []table.Column {
	var cols []table.Column
	var grow []int // Indices of the name columns that take spare width
	switch m.view {
	case viewScores:
		cols = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 10},
			{Title: "Map", Width: 12},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 12},
		}
		grow = []int{1, 2}
	case viewLevels:
		cols = []table.Column{
			{Title: "Player", Width: 10},
			{Title: "Map", Width: 12},
			{Title: "Result", Width: 6},
			{Title: "Kill", Width: 4},
			{Title: "Secr", Width: 4},
			{Title: "Tres", Width: 4},
			{Title: "Time", Width: 5},
			{Title: "Par", Width: 5},
		}
		grow = []int{0, 1}
	}

	avail := m.width - 6 // Box border, padding and margin
	if m.showPanel() {
		avail -= panelWidth + 4
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2 // Cell padding
	}
	if spare := avail - used; spare > 0 {
		cols[grow[0]].Width += min(spare/2, 10)
		cols[grow[1]].Width += min(spare-spare/2, 14)
	}
	return cols
}

func (m *ScoreboardModel) rows() []table.Row {
	if m.view == viewLevels {
		rows := make([]table.Row, len(m.levels))
		for i, l := range m.levels {
			result := "died"
			if l.Completed {
				result = "done"
			}
			rows[i] = table.Row{
				l.Player,
				l.Map,
				result,
				fmt.Sprintf("%d%%", core.Ratio(l.Kills, l.TotalKills)),
				fmt.Sprintf("%d%%", core.Ratio(l.Secrets, l.TotalSecrets)),
				fmt.Sprintf("%d%%", core.Ratio(l.Treasure, l.TotalTreasure)),
				clock(l.Seconds),
				clock(l.ParSeconds),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		score := fmt.Sprint(s.Score)
		if s.Won {
			score += "*"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			s.Map,
			score,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) buildTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("88")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) showPanel() bool {
	return m.width >= minWidthForPanel
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			m.view = 1 - m.view
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.PrevGame):
			if n := len(m.games); n > 0 {
				step := 1
				if key.Matches(msg, m.keys.PrevGame) {
					step = n - 1
				}
				m.game = (m.game + step) % n
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := strings.ToUpper(m.view.String())
	if m.view == viewScores && len(m.games) > 0 {
		title += " - " + m.games[m.game].Title
	}
	b.WriteString(centerText(lipgloss.NewStyle().Bold(true).Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := boxStyle.Render(m.renderTableContent())
	if m.showPanel() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderPanel(), "  ", body)
	}
	b.WriteString(centerText(body, m.width))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, v := range []recordView{viewScores, viewLevels} {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderPanel lists the games and the aggregate stats of the selected one.
func (m ScoreboardModel) renderPanel() string {
	var p strings.Builder
	p.WriteString("Games\n")
	for i, g := range m.games {
		name := truncate(g.Title, panelWidth-4)
		if i == m.game {
			p.WriteString(menuActiveStyle.Render("> " + name))
		} else {
			p.WriteString("  " + name)
		}
		p.WriteString("\n")
	}

	if st := m.stats; st != nil && st.GamesCount > 0 {
		p.WriteString("\n")
		fmt.Fprintf(&p, "Runs     %d\n", st.GamesCount)
		fmt.Fprintf(&p, "Wins     %d\n", st.Wins)
		fmt.Fprintf(&p, "Best     %d\n", st.HighScore)
		fmt.Fprintf(&p, "Average  %.0f\n", st.AvgScore)
		fmt.Fprintf(&p, "Last     %s", st.LastPlayed.Format("Jan 02"))
	}
	return boxStyle.Width(panelWidth).Render(p.String())
}

func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Records unavailable:\n" + m.loadErr.Error())
	case m.view == viewLevels && len(m.levels) == 0:
		return emptyStyle.Render("No levels finished yet.")
	case m.view == viewScores && len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nFinish a run to set a high score!")
	case m.view == viewScores:
		return m.table.View() + "\n" + dimStyle.Render("* finished the episode")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

func clock(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
