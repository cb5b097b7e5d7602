package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mdineen/outgo/cmd/tui/internal/view"
	"github.com/mdineen/outgo/internal/auth"
	authStore "github.com/mdineen/outgo/internal/auth/store"
	"github.com/mdineen/outgo/internal/config"
	"github.com/mdineen/outgo/internal/database"
	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/expense/list"
	expenseStore "github.com/mdineen/outgo/internal/expense/store"
	"github.com/mdineen/outgo/internal/export"
	"github.com/mdineen/outgo/internal/seed"
	"github.com/mdineen/outgo/internal/storage"
)

type model struct {
	cfg            *config.Config
	session        *auth.Session
	expenseService *expense.Service
	exportService  *export.Service

	gate        *view.Gate
	currentView View

	signInView   view.SignInModel
	signUpView   view.SignUpModel
	expensesView view.ExpensesModel
	addView      view.AddModel
	totalView    view.TotalModel
	importView   view.ImportModel
	exportView   view.ExportModel
}

type View int

const (
	ViewSignIn   View = 0
	ViewSignUp   View = 1
	ViewMenu     View = 2
	ViewExpenses View = 3
	ViewAdd      View = 4
	ViewTotal    View = 5
	ViewImport   View = 6
	ViewExport   View = 7
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := storage.Migrate(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(authStore.New(db), []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	session := auth.NewSession(authSvc)
	expenseSvc := expense.NewService(expenseStore.New(db))
	exportSvc := export.NewService(expenseSvc)

	return model{
		cfg:            cfg,
		session:        session,
		expenseService: expenseSvc,
		exportService:  exportSvc,
		gate:           view.NewGate(session),
		currentView:    ViewSignIn,
		signInView:     view.NewSignInModel(session),
		signUpView:     view.NewSignUpModel(session),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.gate.Watch(), m.signInView.Init())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.AccountChangedMsg:
		switch m.gate.Apply(msg) {
		case view.GateSignedIn:
			if m.currentView == ViewSignIn || m.currentView == ViewSignUp {
				m.currentView = ViewMenu
			}
		case view.GateSignedOut:
			m.currentView = ViewSignIn
			m.signInView = view.NewSignInModel(m.session)

			return m, tea.Batch(m.gate.Watch(), m.signInView.Init())
		}

		return m, m.gate.Watch()

	case view.ShowSignUpMsg:
		m.currentView = ViewSignUp
		m.signUpView = view.NewSignUpModel(m.session)

		return m, m.signUpView.Init()

	case view.ShowSignInMsg:
		m.currentView = ViewSignIn
		m.signInView = view.NewSignInModel(m.session)

		return m, m.signInView.Init()

	case view.SignedUpMsg:
		if m.cfg.Dev.Seed && msg.Account != nil {
			return m, seedCmd(m.expenseService, msg.Account)
		}

		return m, nil

	case seedDoneMsg:
		if msg.err != nil {
			slog.Warn("failed to seed sample expenses", "error", msg.err)
		}

		return m, nil

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.gate.Close()
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	}

	switch m.currentView {
	case ViewSignIn:
		var newModel tea.Model
		newModel, cmd = m.signInView.Update(msg)
		m.signInView = newModel.(view.SignInModel)
	case ViewSignUp:
		var newModel tea.Model
		newModel, cmd = m.signUpView.Update(msg)
		m.signUpView = newModel.(view.SignUpModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewTotal:
		var newModel tea.Model
		newModel, cmd = m.totalView.Update(msg)
		m.totalView = newModel.(view.TotalModel)
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
	acct := m.session.CurrentAccount()
	if acct == nil {
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.gate.Close()
		return m, tea.Quit
	case "s":
		m.session.SignOut()
		return m, nil
	case "1":
		machine := list.NewMachine(m.expenseService, acct.ID, slog.Default())
		m.currentView = ViewExpenses
		m.expensesView = view.NewExpensesModel(machine)

		return m, m.expensesView.Init()
	case "2":
		m.currentView = ViewAdd
		m.addView = view.NewAddModel(m.expenseService, acct.ID)

		return m, m.addView.Init()
	case "3":
		m.currentView = ViewTotal
		m.totalView = view.NewTotalModel(m.expenseService, acct.ID)

		return m, m.totalView.Init()
	case "4":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.expenseService, acct.ID)

		return m, m.importView.Init()
	case "5":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.exportService, acct.ID)

		return m, m.exportView.Init()
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewSignIn:
		if m.gate.State() == view.GatePending {
			return lipgloss.NewStyle().Padding(2).Render("Checking session...")
		}

		return m.signInView.View()
	case ViewSignUp:
		return m.signUpView.View()
	case ViewMenu:
		email := ""
		if acct := m.session.CurrentAccount(); acct != nil {
			email = acct.Email
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Outgo — " + email + "\n\n" +
				"1. Expenses\n" +
				"2. Add Expense\n" +
				"3. Total Spend\n" +
				"4. Import CSV\n" +
				"5. Export CSV\n\n" +
				"s. Sign Out\n" +
				"q. Quit",
		)
	case ViewExpenses:
		return m.expensesView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewTotal:
		return m.totalView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

type seedDoneMsg struct {
	err error
}

const seedTimeout = 30 * time.Second

func seedCmd(svc *expense.Service, acct *auth.Account) tea.Cmd {
	accountID := acct.ID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		defer cancel()

		return seedDoneMsg{err: seed.EnsureExpenses(ctx, svc, accountID, 0)}
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
