package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"chequetrack/cmd/tui/internal/view"
	"chequetrack/internal/cheque"
	chequeStore "chequetrack/internal/cheque/store"
	"chequetrack/internal/config"
	"chequetrack/internal/database"
	"chequetrack/internal/export"
	"chequetrack/internal/followup"
	followupStore "chequetrack/internal/followup/store"
	"chequetrack/internal/importer"
)

type model struct {
	chequeService   *cheque.Service
	followUpService *followup.Service
	importService   *importer.Service
	exportService   *export.Service
	ownerID         uuid.UUID

	currentView View

	dashboardView view.DashboardModel
	chequesView   view.ChequesModel
	recoveryView  view.RecoveryModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewCheques   View = 2
	ViewRecovery  View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ownerID, err := uuid.Parse(cfg.App.OwnerID)
	if err != nil {
		slog.Error("OWNER_ID must be set to a valid owner id")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	chequeSvc := cheque.NewService(chequeStore.New(db))
	followUpSvc := followup.NewService(followupStore.New(db))
	impSvc := importer.NewService()
	expSvc := export.NewService(chequeSvc)

	return model{
		chequeService:   chequeSvc,
		followUpService: followUpSvc,
		importService:   impSvc,
		exportService:   expSvc,
		ownerID:         ownerID,
		currentView:     ViewMenu,
		dashboardView:   view.NewDashboardModel(chequeSvc, ownerID),
		chequesView:     view.NewChequesModel(chequeSvc, ownerID),
		recoveryView:    view.NewRecoveryModel(chequeSvc, followUpSvc, ownerID),
		importView:      view.NewImportModel(chequeSvc, impSvc, ownerID),
		exportView:      view.NewExportModel(expSvc, ownerID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.chequeService, m.ownerID)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewCheques
				m.chequesView = view.NewChequesModel(m.chequeService, m.ownerID)

				return m, m.chequesView.Init()
			case "3":
				m.currentView = ViewRecovery
				m.recoveryView = view.NewRecoveryModel(m.chequeService, m.followUpService, m.ownerID)

				return m, m.recoveryView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.chequeService, m.importService, m.ownerID)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.ownerID)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewCheques:
		var newModel tea.Model
		newModel, cmd = m.chequesView.Update(msg)
		m.chequesView = newModel.(view.ChequesModel)
	case ViewRecovery:
		var newModel tea.Model
		newModel, cmd = m.recoveryView.Update(msg)
		m.recoveryView = newModel.(view.RecoveryModel)
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

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"ChequeTrack TUI\n\n" +
				"1. Dashboard\n" +
				"2. Cheques\n" +
				"3. Recovery & Follow-ups\n" +
				"4. Import Cheques\n" +
				"5. Export Cheques\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewCheques:
		return m.chequesView.View()
	case ViewRecovery:
		return m.recoveryView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
