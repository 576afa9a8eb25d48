package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vipledger/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/vipledger/internal/auth"
	"github.com/MrJamesThe3rd/vipledger/internal/config"
	"github.com/MrJamesThe3rd/vipledger/internal/export"
	"github.com/MrJamesThe3rd/vipledger/internal/importer"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger/slot"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type model struct {
	store         *ledger.Store
	session       *auth.Session
	importService *importer.Service
	exportService *export.Service

	currentView View
	month       period.Month
	confirmQuit bool
	status      string

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	recordsView   view.RecordsModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewDashboard
	ViewRecords
	ViewImport
	ViewExport
)

var (
	dirtyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).PaddingLeft(1)
)

func initialModel(cfg *config.Config, store *ledger.Store, loadErr error) model {
	gate := auth.NewGate(cfg.Auth.Password, auth.NewSigner(cfg.Auth.Secret, cfg.App.Name, cfg.Auth.SessionTTL))
	session := auth.NewSession(gate, auth.NewFileMarkers(cfg.Auth.MarkerPath))

	m := model{
		store:         store,
		session:       session,
		importService: importer.NewService(store, slog.Default()),
		exportService: export.NewService(store, cfg.App.Name),
		currentView:   ViewLogin,
		month:         period.CurrentMonth(),
		loginView:     view.NewLoginModel(session),
	}

	if loadErr != nil {
		m.status = errorStyle.Render("Stored data could not be read; starting from defaults.")
	}

	if session.Restore() {
		m.currentView = ViewMenu
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmQuit {
			return m.updateConfirmQuit(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "ctrl+s":
			if m.currentView != ViewLogin {
				return m, m.saveCmd()
			}
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.LoggedInMsg:
		m.currentView = ViewMenu
		m.status = ""

		return m, nil
	case view.BackMsg:
		if m.currentView == ViewDashboard {
			m.month = m.dashboardView.Month()
		}

		m.currentView = ViewMenu

		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Save failed: %v", msg.err))
			return m, nil
		}

		m.status = "Saved."
		if msg.quit {
			return m, tea.Quit
		}

		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewRecords:
		var newModel tea.Model
		newModel, cmd = m.recordsView.Update(msg)
		m.recordsView = newModel.(view.RecordsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	records := func(build func(*ledger.Store, period.Month) view.RecordsModel) (tea.Model, tea.Cmd) {
		m.recordsView = build(m.store, m.month)
		m.currentView = ViewRecords

		return m, m.recordsView.Init()
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "1":
		m.dashboardView = view.NewDashboardModel(m.store, m.month)
		m.currentView = ViewDashboard

		return m, m.dashboardView.Init()
	case "2":
		return records(view.NewIncomeModel)
	case "3":
		return records(view.NewExpenseModel)
	case "4":
		return records(view.NewAdvanceModel)
	case "5":
		return records(view.NewSalaryModel)
	case "6":
		return records(view.NewEmployeeModel)
	case "7":
		return records(view.NewDebtModel)
	case "8":
		m.importView = view.NewImportModel(m.importService)
		m.currentView = ViewImport

		return m, m.importView.Init()
	case "9":
		m.exportView = view.NewExportModel(m.exportService, m.month)
		m.currentView = ViewExport

		return m, m.exportView.Init()
	case "s":
		return m, m.saveCmd()
	case "l":
		if err := m.session.Logout(); err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Logout failed: %v", err))
			return m, nil
		}

		m.loginView = view.NewLoginModel(m.session)
		m.currentView = ViewLogin

		return m, m.loginView.Init()
	}

	return m, nil
}

// quit asks for confirmation while there are unsaved changes.
func (m model) quit() (tea.Model, tea.Cmd) {
	if m.currentView == ViewLogin || !m.store.Dirty() {
		return m, tea.Quit
	}

	m.confirmQuit = true

	return m, nil
}

func (m model) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "y":
		m.confirmQuit = false
		return m, m.saveAndQuitCmd()
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "n":
		m.confirmQuit = false
	}

	return m, nil
}

func (m model) View() string {
	var body string

	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		body = lipgloss.NewStyle().Padding(1, 2).Render(
			"1. Dashboard\n" +
				"2. Income\n" +
				"3. Expenses\n" +
				"4. Advances\n" +
				"5. Salaries\n" +
				"6. Employees\n" +
				"7. Debts\n" +
				"8. Import CSV\n" +
				"9. Export Month\n\n" +
				"s. Save\n" +
				"l. Logout\n" +
				"q. Quit",
		)
	case ViewDashboard:
		body = m.dashboardView.View() + "\n" + helpStyle.Render(m.dashboardView.ShortHelp())
	case ViewRecords:
		body = m.recordsView.View() + "\n" + helpStyle.Render(m.recordsView.ShortHelp())
	case ViewImport:
		body = m.importView.View() + "\n" + helpStyle.Render(m.importView.ShortHelp())
	case ViewExport:
		body = m.exportView.View() + "\n" + helpStyle.Render(m.exportView.ShortHelp())
	default:
		body = "Unknown View"
	}

	header := headerStyle.Render("VIP Ledger")
	if m.store.Dirty() {
		header += "  " + dirtyStyle.Render("● unsaved changes (ctrl+s to save)")
	}

	if m.status != "" {
		header += "  " + m.status
	}

	if m.confirmQuit {
		body += "\n\n" + errorStyle.PaddingLeft(1).Render(
			"You have unsaved changes. s: save and quit | q: quit without saving | esc: stay")
	}

	return header + "\n" + body
}

type savedMsg struct {
	quit bool
	err  error
}

func (m model) saveCmd() tea.Cmd {
	store := m.store

	return func() tea.Msg {
		ctx, cancel := view.StoreCtx()
		defer cancel()

		return savedMsg{err: store.Save(ctx)}
	}
}

func (m model) saveAndQuitCmd() tea.Cmd {
	store := m.store

	return func() tea.Msg {
		ctx, cancel := view.StoreCtx()
		defer cancel()

		return savedMsg{quit: true, err: store.Save(ctx)}
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logFile, err := tea.LogToFile(filepath.Join(cfg.Storage.Dir, "tui.log"), "vipledger")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx := context.Background()

	s, closeSlot, err := slot.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeSlot()

	store := ledger.NewStore(s, ledger.WithLogger(slog.Default()), ledger.WithWriteThrough(cfg.Storage.WriteThrough))

	loadErr := store.Load(ctx)
	if loadErr != nil && !errors.Is(loadErr, ledger.ErrLoad) {
		return loadErr
	}

	p := tea.NewProgram(initialModel(cfg, store, loadErr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
