package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agungalvian/wjg/internal/ledger"
)

// DashboardModel shows the fund balances and the month-end series of the current year.
type DashboardModel struct {
	CommonModel
	ledger *ledger.Service
	now    func() time.Time

	balances ledger.Balances
	series   *ledger.YearSeries
	table    table.Model
	loading  bool
	err      error
}

func NewDashboardModel(svc *ledger.Service, now func() time.Time) DashboardModel {
	columns := []table.Column{
		{Title: "Bulan", Width: 6},
		{Title: "Kas Perumahan", Width: 18},
		{Title: "Dana Sosial", Width: 18},
		{Title: "Kas RT", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(13),
	)
	t.SetStyles(tableStyles())

	return DashboardModel{ledger: svc, now: now, table: t, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

type dashboardLoadedMsg struct {
	balances ledger.Balances
	series   *ledger.YearSeries
	err      error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	year := m.now().Year()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		b, err := m.ledger.Balances(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		s, err := m.ledger.YearSeries(ctx, year)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{balances: b, series: s}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.balances = msg.balances
			m.series = msg.series
			m.table.SetRows(seriesRows(msg.series))
		}

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

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func seriesRows(s *ledger.YearSeries) []table.Row {
	rows := make([]table.Row, 12)
	for i := range 12 {
		rows[i] = table.Row{
			s.Labels[i],
			FormatOptional(s.Housing[i]),
			FormatOptional(s.Social[i]),
			FormatOptional(s.RT[i]),
		}
	}

	return rows
}

func (m DashboardModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Memuat saldo...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Saldo Kas") + "\n\n")

	for _, f := range ledger.Funds {
		fmt.Fprintf(&sb, "%-15s %s\n", f.Label(), FormatRupiah(m.balances.Of(f)))
	}

	fmt.Fprintf(&sb, "%-15s %s\n\n", "Total", FormatRupiah(m.balances.Total()))
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Saldo Akhir Bulan %d", m.series.Year)) + "\n")
	sb.WriteString(m.table.View())

	return style.Render(sb.String())
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}
