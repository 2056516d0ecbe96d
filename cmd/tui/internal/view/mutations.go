package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/agungalvian/wjg/internal/ledger"
)

type mutationsState int

const (
	mutationsStateBrowse mutationsState = iota
	mutationsStateAdd
)

var fundFilters = []ledger.Fund{"", ledger.FundHousing, ledger.FundSocial, ledger.FundRT}

// MutationsModel lists recorded mutations and records manual ones.
type MutationsModel struct {
	CommonModel
	ledger *ledger.Service
	now    func() time.Time

	state   mutationsState
	table   table.Model
	entries []*ledger.Entry
	shown   []*ledger.Entry
	form    *huh.Form

	fundFilterIdx int

	loading bool
	err     error
	status  string

	// Form bindings
	formDirection ledger.Direction
	formFund      ledger.Fund
	formAmount    string
	formDate      string
	formDesc      string
	formCategory  string
}

func NewMutationsModel(svc *ledger.Service, now func() time.Time) MutationsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Tanggal", Width: 10},
			{Title: "Keterangan", Width: 32},
			{Title: "Kategori", Width: 12},
			{Title: "Dana", Width: 14},
			{Title: "Masuk", Width: 14},
			{Title: "Keluar", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return MutationsModel{
		ledger:  svc,
		now:     now,
		table:   t,
		loading: true,
	}
}

func (m MutationsModel) Title() string { return "Mutasi Kas" }

func (m MutationsModel) ShortHelp() string {
	if m.state == mutationsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | f: fund filter | r: refresh"
}

func (m MutationsModel) Init() tea.Cmd {
	return m.loadCmd()
}

type mutationsLoadedMsg struct {
	entries []*ledger.Entry
	err     error
}

type mutationSavedMsg struct {
	mutation *ledger.Mutation
	err      error
}

func (m MutationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mutationsLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.entries = msg.entries
			m.refreshTable()
		}

		return m, nil

	case mutationSavedMsg:
		m.state = mutationsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Gagal menyimpan: %v", msg.err))
			return m, nil
		}

		m.status = successStyle.Render("Tersimpan: " + msg.mutation.Description)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case mutationsStateBrowse:
		return m.updateBrowse(msg)
	case mutationsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m MutationsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "f":
			m.fundFilterIdx = (m.fundFilterIdx + 1) % len(fundFilters)
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MutationsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formDirection = ledger.DirectionOut
	m.formFund = ledger.FundHousing
	m.formAmount = ""
	m.formDate = m.now().Format(time.DateOnly)
	m.formDesc = ""
	m.formCategory = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ledger.Direction]().
				Title("Arah").
				Options(
					huh.NewOption("Keluar", ledger.DirectionOut),
					huh.NewOption("Masuk", ledger.DirectionIn),
				).
				Value(&m.formDirection),
			huh.NewSelect[ledger.Fund]().
				Title("Dana").
				Options(
					huh.NewOption(ledger.FundHousing.Label(), ledger.FundHousing),
					huh.NewOption(ledger.FundSocial.Label(), ledger.FundSocial),
					huh.NewOption(ledger.FundRT.Label(), ledger.FundRT),
					huh.NewOption("Umum", ledger.FundNone),
				).
				Value(&m.formFund),
			huh.NewInput().
				Title("Jumlah (Rp)").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || v < 0 {
						return fmt.Errorf("masukkan angka bulat tidak negatif")
					}

					return nil
				}),
			huh.NewInput().
				Title("Tanggal").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("format YYYY-MM-DD")
					}

					return nil
				}),
			huh.NewInput().
				Title("Keterangan").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("keterangan wajib diisi")
					}

					return nil
				}),
			huh.NewInput().
				Title("Kategori").
				Value(&m.formCategory),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = mutationsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m MutationsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = mutationsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m *MutationsModel) refreshTable() {
	fund := fundFilters[m.fundFilterIdx]

	m.shown = make([]*ledger.Entry, 0, len(m.entries))

	for _, e := range m.entries {
		if fund != "" && e.Fund != fund {
			continue
		}

		m.shown = append(m.shown, e)
	}

	rows := entryRows(m.shown)
	for i, e := range m.shown {
		rows[i] = table.Row{rows[i][0], rows[i][1], e.Category, rows[i][3], rows[i][4], rows[i][5]}
	}

	m.table.SetRows(rows)
}

func (m MutationsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Memuat mutasi...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	label := "Semua"
	if f := fundFilters[m.fundFilterIdx]; f != "" {
		label = f.Label()
	}

	header := fmt.Sprintf("Filter: [f] Dana: %s | %d baris", headerStyle.Render(label), len(m.shown))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		m.table.View(),
	)

	if m.state == mutationsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Catat Mutasi\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return style.Render(content)
}

func (m MutationsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.ledger.ListMutations(ctx)

		return mutationsLoadedMsg{entries: entries, err: err}
	}
}

func (m MutationsModel) saveCmd() tea.Cmd {
	amount, _ := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate))

	params := ledger.CreateParams{
		Direction:   m.formDirection,
		Amount:      amount,
		Description: strings.TrimSpace(m.formDesc),
		Date:        date,
		Category:    strings.TrimSpace(m.formCategory),
		Fund:        m.formFund,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mutation, err := m.ledger.Record(ctx, params)

		return mutationSavedMsg{mutation: mutation, err: err}
	}
}
