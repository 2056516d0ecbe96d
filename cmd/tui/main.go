package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/agungalvian/wjg/cmd/tui/internal/view"
	"github.com/agungalvian/wjg/internal/config"
	"github.com/agungalvian/wjg/internal/database"
	"github.com/agungalvian/wjg/internal/export"
	"github.com/agungalvian/wjg/internal/importer"
	"github.com/agungalvian/wjg/internal/ledger"
	ledgerStore "github.com/agungalvian/wjg/internal/ledger/store"
	"github.com/agungalvian/wjg/internal/logging"
	"github.com/agungalvian/wjg/internal/matching"
	matchingStore "github.com/agungalvian/wjg/internal/matching/store"
	"github.com/agungalvian/wjg/internal/payment"
	paymentStore "github.com/agungalvian/wjg/internal/payment/store"
	"github.com/agungalvian/wjg/internal/settings"
	settingsStore "github.com/agungalvian/wjg/internal/settings/store"
)

const logFile = "wjg-tui.log"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type services struct {
	ledger   *ledger.Service
	payments *payment.Service
	matching *matching.Service
	exports  *export.Service
	parser   *importer.Parser
	now      func() time.Time
}

type menuItem struct {
	label string
	open  func(s *services) view.View
}

var menu = []menuItem{
	{"Dashboard", func(s *services) view.View { return view.NewDashboardModel(s.ledger, s.now) }},
	{"Laporan Keuangan", func(s *services) view.View { return view.NewReportModel(s.ledger, s.exports, s.now) }},
	{"Verifikasi Pembayaran", func(s *services) view.View { return view.NewPendingModel(s.payments) }},
	{"Matriks Iuran", func(s *services) view.View { return view.NewMatrixModel(s.payments, s.now) }},
	{"Impor Mutasi", func(s *services) view.View { return view.NewImportModel(s.ledger, s.parser, s.matching) }},
	{"Mutasi Kas", func(s *services) view.View { return view.NewMutationsModel(s.ledger, s.now) }},
}

type model struct {
	svc     *services
	appName string

	// current is nil while the menu is shown.
	current view.View
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" {
		return m, tea.Quit
	}

	if len(key) != 1 || key[0] < '1' || int(key[0]-'1') >= len(menu) {
		return m, nil
	}

	m.current = menu[key[0]-'1'].open(m.svc)

	return m, m.current.Init()
}

func (m model) View() string {
	if m.current != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.current.Title()),
			m.current.View(),
			helpStyle.Render(m.current.ShortHelp()),
		)
	}

	s := m.appName + " TUI\n\n"
	for i, item := range menu {
		s += fmt.Sprintf("%d. %s\n", i+1, item.label)
	}

	s += "\nq. Quit"

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func initialModel(cfg *config.Config) (model, func(), error) {
	now, err := cfg.Clock()
	if err != nil {
		return model{}, nil, err
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return model{}, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return model{}, nil, fmt.Errorf("migrating database: %w", err)
	}

	ledgerSvc := ledger.NewService(ledgerStore.New(db), now)
	settingsSvc := settings.NewService(settingsStore.New(db))

	svc := &services{
		ledger:   ledgerSvc,
		payments: payment.NewService(paymentStore.New(db), settingsSvc, now),
		matching: matching.NewService(matchingStore.New(db)),
		exports:  export.NewService(ledgerSvc),
		parser:   importer.NewParser(),
		now:      now,
	}

	return model{svc: svc, appName: cfg.App.Name}, func() { db.Close() }, nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	slog.SetDefault(logging.New(f, logging.ParseLevel(cfg.Log.Level)))

	m, closeDB, err := initialModel(cfg)
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeDB()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
	}
}
