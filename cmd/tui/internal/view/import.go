package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agungalvian/wjg/internal/importer"
	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/matching"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateResult
)

// ImportModel reads a mutation CSV, classifies its rows with the learned rules and
// stores the rows the user keeps.
type ImportModel struct {
	CommonModel
	ledger   *ledger.Service
	parser   *importer.Parser
	matching *matching.Service

	state      importState
	filePicker filepicker.Model

	params   []ledger.CreateParams
	matched  int
	preview  list.Model
	selected map[int]bool

	status string
	err    error
}

func NewImportModel(svc *ledger.Service, parser *importer.Parser, matchSvc *matching.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		ledger:     svc,
		parser:     parser,
		matching:   matchSvc,
		filePicker: fp,
		selected:   make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Impor Mutasi" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Space: toggle | a: all | n: none | Enter: save | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type parsedMsg struct {
	params  []ledger.CreateParams
	matched int
	err     error
}

type importedMsg struct {
	count int
	err   error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.params) == 0 {
			m.state = importStateResult
			m.status = "File tidak berisi mutasi."

			return m, nil
		}

		m.params = msg.params
		m.matched = msg.matched
		m.selected = make(map[int]bool, len(msg.params))

		items := make([]list.Item, len(msg.params))
		for i, p := range msg.params {
			items[i] = rowItem{params: p, index: i}
			m.selected[i] = true
		}

		m.preview = list.New(items, rowDelegate{selected: m.selected}, 80, 20)
		m.preview.Title = fmt.Sprintf("%d baris, %d dikenali aturan", len(msg.params), msg.matched)
		m.preview.SetShowStatusBar(false)
		m.preview.SetFilteringEnabled(false)
		m.preview.SetShowHelp(false)
		m.state = importStatePreview

		return m, nil

	case importedMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("%d mutasi diimpor.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Membaca %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateResult, importStatePreview:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""
		m.params = nil
		m.selected = make(map[int]bool)

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.preview.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.params {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.params {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.importCmd()
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Pilih file CSV (rincian atau mutasi bank):\n\n" + m.filePicker.View(),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.preview.View())
	case importStateResult:
		style := successStyle
		if m.err != nil {
			style = errorStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc: kembali)")
	}

	return ""
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		params, err := m.parser.Parse(f)
		if err != nil {
			return parsedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		matched, err := m.matching.Apply(ctx, params)
		if err != nil {
			return parsedMsg{err: err}
		}

		return parsedMsg{params: params, matched: matched}
	}
}

func (m ImportModel) importCmd() tea.Cmd {
	var keep []ledger.CreateParams

	for i, p := range m.params {
		if m.selected[i] {
			keep = append(keep, p)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		ms, err := m.ledger.ImportBatch(ctx, keep)
		if err != nil {
			return importedMsg{err: err}
		}

		return importedMsg{count: len(ms)}
	}
}

type rowItem struct {
	params ledger.CreateParams
	index  int
}

func (i rowItem) Title() string       { return i.params.Description }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.params.Description }

type rowDelegate struct {
	selected map[int]bool
}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(rowItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if d.selected[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	p := item.params

	amount := FormatRupiah(p.Amount)
	if p.Direction == ledger.DirectionOut {
		amount = FormatRupiah(-p.Amount)
	}

	line1 := fmt.Sprintf("%s%s %s  %s  %s", cursor, checkbox, FormatDate(p.Date), amount, p.Description)
	line2 := mutedStyle.Render(fmt.Sprintf("      %s / %s", p.Fund.Label(), orDash(p.Category)))

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
