// Package dashboard is the optional interactive bubbletea view onto
// every tracked kild: branch, agent, health classification, and CPU/
// memory, refreshed on an interval or on demand. It reads through the
// same store/health packages the CLI's status command uses — no
// separate data path, just a different renderer.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kildhq/kild/internal/health"
	"github.com/kildhq/kild/internal/store"
)

const refreshInterval = 3 * time.Second

// Row is one rendered line of the dashboard.
type Row struct {
	Branch  string
	Agent   string
	Health  health.Class
	CPU     float64
	MemMB   float64
	Project string
}

// KeyMap binds the dashboard's keys and supplies the help view's
// short and full binding lists.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Refresh key.Binding
	Quit   key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Loader produces a fresh set of rows each time the dashboard refreshes.
type Loader func() ([]Row, error)

// Model is the bubbletea model for `kild dashboard`.
type Model struct {
	load   Loader
	rows   []Row
	cursor int
	err    error
	keys   KeyMap
	help   help.Model
	width  int
	height int
}

// New builds a dashboard Model sourcing rows from load.
func New(load Loader) *Model {
	return &Model{load: load, keys: defaultKeyMap(), help: help.New()}
}

type tickMsg time.Time

type rowsMsg struct {
	rows []Row
	err  error
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetch, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) fetch() tea.Msg {
	rows, err := m.load()
	return rowsMsg{rows: rows, err: err}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetch, tick())

	case rowsMsg:
		m.rows, m.err = msg.rows, msg.err
		if m.cursor >= len(m.rows) {
			m.cursor = max(0, len(m.rows)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetch
		}
	}
	return m, nil
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

func (m *Model) View() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %-12s %-8s %6s %8s", "BRANCH", "AGENT", "HEALTH", "CPU%", "MEM(MB)")) + "\n")
	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("no kilds tracked") + "\n")
	}
	for i, r := range m.rows {
		line := fmt.Sprintf("%-24s %-12s %-8s %6.1f %8.0f",
			truncate(r.Branch, 24), truncate(r.Agent, 12), health.Icon(r.Health)+" "+string(r.Health), r.CPU, r.MemMB)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// RowsFromSessions builds dashboard Rows from sessions and their
// reconciled health metrics, joined by SessionID.
func RowsFromSessions(sessions []store.Session, metrics []health.Metrics) []Row {
	byID := map[string]health.Metrics{}
	for _, m := range metrics {
		byID[m.SessionID] = m
	}
	rows := make([]Row, 0, len(sessions))
	for _, s := range sessions {
		m := byID[s.SessionID]
		rows = append(rows, Row{
			Branch:  s.Branch,
			Agent:   s.Agent,
			Health:  m.Class,
			CPU:     m.CPUPercent,
			MemMB:   m.MemoryMB,
			Project: s.ProjectID,
		})
	}
	return rows
}
