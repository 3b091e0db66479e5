package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// boardsMsg carries a fresh leaderboard poll.
type boardsMsg []board

// pollErrMsg carries a failed poll. The previous boards stay on screen.
type pollErrMsg struct{ err error }

type tickMsg time.Time

// dashboardModel is the Bubble Tea model for the leaderboard view.
type dashboardModel struct {
	client  *leaderboardClient
	refresh time.Duration

	table     table.Model
	boards    []board
	selected  int
	err       error
	lastFetch time.Time
	width     int
	height    int
}

func newDashboardModel(client *leaderboardClient, refresh time.Duration) dashboardModel {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Strategy", Width: 22},
		{Title: "TF", Width: 4},
		{Title: "Risk", Width: 6},
		{Title: "Assets", Width: 12},
		{Title: "W", Width: 4},
		{Title: "L", Width: 4},
		{Title: "State", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return dashboardModel{
		client:  client,
		refresh: refresh,
		table:   t,
	}
}

// Init implements tea.Model.
func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.poll(), m.tick())
}

func (m dashboardModel) poll() tea.Cmd {
	return func() tea.Msg {
		boards, err := m.client.fetch()
		if err != nil {
			return pollErrMsg{err: err}
		}

		return boardsMsg(boards)
	}
}

func (m dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right":
			if len(m.boards) > 0 {
				m.selected = (m.selected + 1) % len(m.boards)
				m.rebuildRows()
			}

			return m, nil
		case "left":
			if len(m.boards) > 0 {
				m.selected = (m.selected + len(m.boards) - 1) % len(m.boards)
				m.rebuildRows()
			}

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 8)

		return m, nil

	case boardsMsg:
		m.boards = msg
		m.err = nil
		m.lastFetch = time.Now()

		if m.selected >= len(m.boards) {
			m.selected = 0
		}

		m.rebuildRows()

		return m, nil

	case pollErrMsg:
		m.err = msg.err

		return m, nil

	case tickMsg:
		return m, tea.Batch(m.poll(), m.tick())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *dashboardModel) rebuildRows() {
	if len(m.boards) == 0 {
		m.table.SetRows(nil)

		return
	}

	current := m.boards[m.selected]
	rows := make([]table.Row, 0, len(current.Standings))

	for i, standing := range current.Standings {
		state := "active"
		if standing.Stopped {
			state = "stopped"
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			standing.StrategyKey,
			standing.Timeframe,
			fmt.Sprintf("%.3f", standing.RiskRatio),
			formatAssets(standing.Assets),
			fmt.Sprintf("%d", standing.Wins),
			fmt.Sprintf("%d", standing.Losses),
			state,
		})
	}

	m.table.SetRows(rows)
}

// View implements tea.Model.
func (m dashboardModel) View() string {
	if len(m.boards) == 0 {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("cannot reach status server: %v", m.err)) +
				helpStyle.Render("\n\nq: quit")
		}

		return helpStyle.Render("waiting for first leaderboard poll...")
	}

	current := m.boards[m.selected]

	header := titleStyle.Render(fmt.Sprintf("%s  price %.2f  total assets %s",
		current.Symbol, current.LastPrice, formatAssets(current.TotalAssets)))

	if current.AllStopped {
		header += "  " + errorStyle.Render("ALL AGENTS STOPPED")
	}

	status := ""
	if m.err != nil {
		status = errorStyle.Render(fmt.Sprintf("poll failed: %v (showing data from %s)",
			m.err, m.lastFetch.Format("15:04:05")))
	} else if !m.lastFetch.IsZero() {
		status = helpStyle.Render("updated " + m.lastFetch.Format("15:04:05"))
	}

	help := helpStyle.Render("tab/←/→: switch instrument • ↑/↓: scroll • q: quit")

	return header + "\n\n" + m.table.View() + "\n" + status + "\n" + help
}
