package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"chequetrack/internal/cheque"
	"chequetrack/internal/stats"
)

type DashboardModel struct {
	CommonModel
	chequeService *cheque.Service
	ownerID       uuid.UUID

	dashboard stats.Dashboard
	loading   bool
	err       error
}

func NewDashboardModel(chequeSvc *cheque.Service, ownerID uuid.UUID) DashboardModel {
	return DashboardModel{
		chequeService: chequeSvc,
		ownerID:       ownerID,
		loading:       true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(24)

	cardTitleStyle = lipgloss.NewStyle().Faint(true)
	cardValueStyle = lipgloss.NewStyle().Bold(true)
	alertStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	d := m.dashboard

	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Cheques", fmt.Sprintf("%d", d.TotalCheques)),
		card("Pending", fmt.Sprintf("%d", d.PendingCheques)),
		card("Cleared", fmt.Sprintf("%d", d.ClearedCheques)),
		card("Bounced", fmt.Sprintf("%d", d.BouncedCheques)),
	)

	amounts := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Amount", FormatAmount(d.TotalAmount)),
		card("Pending Amount", FormatAmount(d.PendingAmount)),
		card("Bounced Amount", FormatAmount(d.BouncedAmount)),
		card("Recovered Amount", FormatAmount(d.RecoveredAmount)),
	)

	due := fmt.Sprintf("Due within a week: %d", d.UpcomingDueCount)

	overdue := fmt.Sprintf("Overdue: %d", d.OverdueCount)
	if d.OverdueCount > 0 {
		overdue = alertStyle.Render(overdue)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			counts,
			amounts,
			"",
			due,
			overdue,
		),
	)
}

func card(title, value string) string {
	return cardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			cardTitleStyle.Render(title),
			cardValueStyle.Render(value),
		),
	)
}

// Messages

type dashboardLoadedMsg struct {
	dashboard stats.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cheques, err := m.chequeService.List(ctx, m.ownerID, cheque.ListFilter{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{dashboard: stats.Compute(cheques, time.Now())}
	}
}
