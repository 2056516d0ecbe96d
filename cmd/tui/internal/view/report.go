package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/agungalvian/wjg/internal/export"
	"github.com/agungalvian/wjg/internal/ledger"
)

type reportState int

const (
	reportStateForm reportState = iota
	reportStateLoading
	reportStateResult
	reportStateExporting
)

const exportTimeout = 2 * time.Minute

// ReportModel asks for a period, shows its report and can export it as a workbook.
type ReportModel struct {
	CommonModel
	ledger  *ledger.Service
	exports *export.Service

	state   reportState
	form    *huh.Form
	spinner spinner.Model
	table   table.Model

	// Form bindings
	month string
	year  string
	path  string

	report *ledger.PeriodReport
	status string
	err    error
}

func NewReportModel(svc *ledger.Service, exports *export.Service, now func() time.Time) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Tanggal", Width: 10},
			{Title: "Keterangan", Width: 30},
			{Title: "Warga", Width: 16},
			{Title: "Dana", Width: 14},
			{Title: "Masuk", Width: 14},
			{Title: "Keluar", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	n := now()

	m := ReportModel{
		ledger:  svc,
		exports: exports,
		spinner: s,
		table:   t,
		month:   strconv.Itoa(int(n.Month())),
		year:    strconv.Itoa(n.Year()),
		path:    "./exports",
	}
	m.form = m.buildForm()

	return m
}

func (m ReportModel) Title() string { return "Laporan Keuangan" }

func (m ReportModel) ShortHelp() string {
	if m.state == reportStateResult {
		return "Esc: back | x: export xlsx | n: new period"
	}

	return "Esc: back | Enter: confirm"
}

func (m ReportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *ReportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("month").
				Title("Bulan").
				Description("1-12, kosongkan untuk satu tahun penuh").
				Value(&m.month).
				Validate(validateWindowPart(12)),
			huh.NewInput().
				Key("year").
				Title("Tahun").
				Description("kosongkan untuk semua periode").
				Value(&m.year).
				Validate(validateWindowPart(9999)),
			huh.NewInput().
				Key("path").
				Title("Folder Ekspor").
				Placeholder("./exports").
				Value(&m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateWindowPart(limit int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}

		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > limit {
			return fmt.Errorf("harus 1-%d", limit)
		}

		return nil
	}
}

type reportLoadedMsg struct {
	report *ledger.PeriodReport
	err    error
}

type reportExportedMsg struct {
	path string
	err  error
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.state = reportStateResult
		m.err = msg.err
		m.status = ""

		if msg.err == nil {
			m.report = msg.report
			m.table.SetRows(entryRows(msg.report.Entries))
		}

		return m, nil

	case reportExportedMsg:
		m.state = reportStateResult
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Export gagal: %v", msg.err))
		} else {
			m.status = successStyle.Render("Tersimpan di " + msg.path)
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	switch m.state {
	case reportStateForm:
		return m.updateForm(msg)
	case reportStateResult:
		return m.updateResult(msg)
	case reportStateLoading, reportStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ReportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	w, err := ledger.ParseWindow(m.month, m.year)
	if err != nil {
		m.state = reportStateResult
		m.err = err

		return m, nil
	}

	m.state = reportStateLoading

	return m, tea.Batch(m.spinner.Tick, m.loadCmd(w))
}

func (m ReportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "n":
			m.state = reportStateForm
			m.err = nil
			m.form = m.buildForm()

			return m, m.form.Init()
		case "x":
			if m.report == nil {
				return m, nil
			}

			m.state = reportStateExporting

			return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.report.Window, m.path))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReportModel) loadCmd(w ledger.Window) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.ledger.PeriodReport(ctx, w)

		return reportLoadedMsg{report: r, err: err}
	}
}

func (m ReportModel) exportCmd(w ledger.Window, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		if strings.TrimSpace(dir) == "" {
			dir = "./exports"
		}

		path, err := m.exports.ToDir(ctx, w, dir)

		return reportExportedMsg{path: path, err: err}
	}
}

func entryRows(entries []*ledger.Entry) []table.Row {
	rows := make([]table.Row, len(entries))

	for i, e := range entries {
		in, out := "", ""
		if e.Direction == ledger.DirectionOut {
			out = FormatRupiah(e.Amount)
		} else {
			in = FormatRupiah(e.Amount)
		}

		rows[i] = table.Row{FormatDate(e.Date), e.Description, e.ResidentName, e.Fund.Label(), in, out}
	}

	return rows
}

func (m ReportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case reportStateForm:
		return style.Render(m.form.View())
	case reportStateLoading:
		return style.Render(m.spinner.View() + " Menyusun laporan...")
	case reportStateExporting:
		return style.Render(m.spinner.View() + " Mengekspor laporan...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(n: periode lain, Esc: kembali)")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Laporan Keuangan: "+m.report.Window.Title()),
		"",
		summaryTable(m.report.Summary),
		"",
		m.table.View(),
		m.skippedNote(),
		m.status,
	))
}

func (m ReportModel) skippedNote() string {
	if m.report.Skipped == 0 {
		return ""
	}

	return mutedStyle.Render(fmt.Sprintf("%d mutasi tidak valid dilewati dari perhitungan", m.report.Skipped))
}

func summaryTable(s ledger.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-14s %16s %16s %16s %16s\n", "Dana", "Saldo Awal", "Masuk", "Keluar", "Saldo Akhir")

	row := func(label string, fs ledger.FundSummary) {
		fmt.Fprintf(&sb, "%-14s %16s %16s %16s %16s\n", label,
			FormatRupiah(fs.Opening), FormatRupiah(fs.In), FormatRupiah(fs.Out), FormatRupiah(fs.Balance))
	}

	for _, f := range ledger.Funds {
		row(f.Label(), s.Of(f))
	}

	row("TOTAL", s.Total)

	return sb.String()
}
