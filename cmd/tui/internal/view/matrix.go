package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/agungalvian/wjg/internal/payment"
)

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// MatrixModel shows which residents have paid for each month of a year.
type MatrixModel struct {
	CommonModel
	payments *payment.Service

	form    *huh.Form
	year    string
	matrix  *payment.Matrix
	table   table.Model
	loading bool
	err     error
}

func NewMatrixModel(svc *payment.Service, now func() time.Time) MatrixModel {
	columns := []table.Column{
		{Title: "No", Width: 6},
		{Title: "Warga", Width: 20},
	}
	for _, name := range monthAbbr {
		columns = append(columns, table.Column{Title: name, Width: 4})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	m := MatrixModel{
		payments: svc,
		year:     strconv.Itoa(now().Year()),
		table:    t,
	}
	m.form = m.buildForm()

	return m
}

func (m MatrixModel) Title() string { return "Matriks Iuran" }

func (m MatrixModel) ShortHelp() string {
	if m.matrix != nil {
		return "Esc: back | y: other year"
	}

	return "Esc: back | Enter: confirm"
}

func (m MatrixModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *MatrixModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tahun").
				Value(&m.year).
				Validate(func(s string) error {
					y, err := strconv.Atoi(s)
					if err != nil || y < 1 || y > 9999 {
						return fmt.Errorf("tahun tidak valid")
					}

					return nil
				}),
		),
	).WithWidth(30).WithShowHelp(false)
}

type matrixLoadedMsg struct {
	matrix *payment.Matrix
	err    error
}

func (m MatrixModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case matrixLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.matrix = msg.matrix
			m.table.SetRows(matrixRows(msg.matrix))
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if (m.matrix != nil || m.err != nil) && msg.String() == "y" {
			m.matrix = nil
			m.err = nil
			m.form = m.buildForm()

			return m, m.form.Init()
		}
	}

	if m.matrix != nil {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	if m.loading || m.err != nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	year, _ := strconv.Atoi(m.year)
	m.loading = true

	return m, m.loadCmd(year)
}

func matrixRows(mx *payment.Matrix) []table.Row {
	rows := make([]table.Row, len(mx.Residents))

	for i, r := range mx.Residents {
		row := table.Row{orDash(r.HouseNumber), r.FullName}

		for _, month := range mx.Months {
			mark := "·"
			if mx.IsPaid(r.ID, month) {
				mark = "✓"
			}

			row = append(row, mark)
		}

		rows[i] = row
	}

	return rows
}

func (m MatrixModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.loading:
		return style.Render("Memuat matriks...")
	case m.err != nil:
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(y: tahun lain, Esc: kembali)")
	case m.matrix == nil:
		return style.Render(m.form.View())
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("Iuran Tahun %d", m.matrix.Year)),
		"",
		m.table.View(),
	))
}

func (m MatrixModel) loadCmd(year int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mx, err := m.payments.Matrix(ctx, year)

		return matrixLoadedMsg{matrix: mx, err: err}
	}
}
