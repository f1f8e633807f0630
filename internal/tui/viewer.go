// Package tui shows an aggregate result in an interactive terminal table.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/meantimes/internal/summary"
)

// missing is shown in place of an undefined statistic.
const missing = "-"

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// model is the Bubble Tea model for the summary viewer.
type model struct {
	title string
	table table.Model
	// Current terminal size, zero until the first WindowSizeMsg.
	width, height int
}

// initialModel builds the table with one row per program and the same
// columns as the CSV output.
func initialModel(title string, res *summary.Result) *model {
	header := res.Header()
	records := res.Records()

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	rows := make([]table.Row, len(records))
	for r, rec := range records {
		row := make(table.Row, len(rec))
		for i, field := range rec {
			if field == "" {
				field = missing
			}
			row[i] = field
			widths[i] = max(widths[i], lipgloss.Width(field))
		}
		rows[r] = row
	}

	cols := make([]table.Column, len(header))
	for i, h := range header {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+2),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return &model{title: title, table: t}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// Leave room for the border, title and help lines.
		m.table.SetWidth(max(msg.Width-2, 0))
		m.table.SetHeight(min(len(m.table.Rows())+2, max(msg.Height-6, 3)))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	return fmt.Sprintf("%s\n%s\n%s\n",
		titleStyle.Render(m.title),
		baseStyle.Render(m.table.View()),
		helpStyle.Render(" (↑/↓ to move, q to quit)"),
	)
}

// Run shows res until the user quits. It blocks.
func Run(title string, res *summary.Result) error {
	p := tea.NewProgram(initialModel(title, res), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running viewer: %w", err)
	}
	return nil
}
