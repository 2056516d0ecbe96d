package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agungalvian/wjg/internal/payment"
)

// PendingModel walks the queue of submitted payments one at a time.
type PendingModel struct {
	CommonModel
	payments *payment.Service

	queue   []*payment.Payment
	current *payment.Payment

	noteInput textinput.Model

	status     string
	loading    bool
	totalCount int
	approved   int
	rejected   int
}

func NewPendingModel(svc *payment.Service) PendingModel {
	ti := textinput.New()
	ti.Placeholder = "Catatan (opsional)"
	ti.Width = 50

	return PendingModel{
		payments:  svc,
		noteInput: ti,
		loading:   true,
	}
}

func (m PendingModel) Title() string { return "Verifikasi Pembayaran" }

func (m PendingModel) ShortHelp() string {
	return "Enter: approve | Ctrl+X: reject | Tab: skip | Esc: back"
}

func (m PendingModel) Init() tea.Cmd {
	return m.loadCmd()
}

type pendingLoadedMsg struct {
	payments []*payment.Payment
	err      error
}

type reviewedMsg struct {
	status payment.Status
	err    error
}

func (m PendingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, Back

		case tea.KeyEnter:
			if m.current != nil {
				m.loading = true
				return m, m.reviewCmd(payment.StatusApproved)
			}

		case tea.KeyCtrlX:
			if m.current != nil {
				m.loading = true
				return m, m.reviewCmd(payment.StatusRejected)
			}

		case tea.KeyTab:
			if m.current != nil {
				m.next()
				return m, textinput.Blink
			}
		}

	case pendingLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Gagal memuat: %v", msg.err))
			break
		}

		// Oldest submissions first.
		m.queue = make([]*payment.Payment, 0, len(msg.payments))
		for i := len(msg.payments) - 1; i >= 0; i-- {
			m.queue = append(m.queue, msg.payments[i])
		}

		m.totalCount = len(m.queue)
		m.next()

		return m, textinput.Blink

	case reviewedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Gagal menyimpan: %v", msg.err))
			break
		}

		if msg.status == payment.StatusApproved {
			m.approved++
		} else {
			m.rejected++
		}

		m.next()

		return m, textinput.Blink
	}

	if m.current != nil {
		m.noteInput, cmd = m.noteInput.Update(msg)
	}

	return m, cmd
}

func (m *PendingModel) next() {
	m.noteInput.SetValue("")

	if len(m.queue) == 0 {
		m.current = nil
		m.status = fmt.Sprintf("Selesai. %d disetujui, %d ditolak.", m.approved, m.rejected)
		m.noteInput.Blur()

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]

	m.status = fmt.Sprintf("Pembayaran %d/%d", m.totalCount-len(m.queue), m.totalCount)
	m.noteInput.Focus()
}

func (m PendingModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.loading && m.current == nil {
		return style.Render("Memuat pembayaran...")
	}

	if m.current == nil {
		return style.Render(m.status + "\n\n(Esc: kembali)")
	}

	p := m.current

	info := fmt.Sprintf(
		"Warga:    %s (%s)\nTanggal:  %s\nBulan:    %s\nJumlah:   %s\n  %s: %s\n  %s: %s\n  %s: %s\nBukti:    %s",
		p.ResidentName, orDash(p.HouseNumber),
		FormatDate(p.PaymentDate),
		strings.Join(p.Months, ", "),
		FormatRupiah(p.Amount),
		"Kas Perumahan", FormatRupiah(p.Breakdown.Housing),
		"Dana Sosial", FormatRupiah(p.Breakdown.Social),
		"Kas RT", FormatRupiah(p.Breakdown.RT),
		orDash(p.ProofImage),
	)

	return style.Render(fmt.Sprintf("%s\n\n%s\n\n%s\n%s",
		headerStyle.Render(m.status), info, "Catatan:", m.noteInput.View()))
}

func (m PendingModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ps, err := m.payments.List(ctx, payment.StatusPending)

		return pendingLoadedMsg{payments: ps, err: err}
	}
}

func (m PendingModel) reviewCmd(status payment.Status) tea.Cmd {
	id := m.current.ID
	note := strings.TrimSpace(m.noteInput.Value())

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		if status == payment.StatusApproved {
			_, err = m.payments.Approve(ctx, id, note)
		} else {
			_, err = m.payments.Reject(ctx, id, note)
		}

		return reviewedMsg{status: status, err: err}
	}
}
