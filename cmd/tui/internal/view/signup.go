package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mdineen/outgo/internal/auth"
)

// SignedUpMsg announces a freshly created account so the root model can kick
// off dev seeding before the expense views mount.
type SignedUpMsg struct {
	Account *auth.Account
}

type signUpResultMsg struct {
	account *auth.Account
	err     error
}

type SignUpModel struct {
	CommonModel
	gateway auth.Gateway

	form       *huh.Form
	email      string
	password   string
	errMsg     string
	submitting bool
}

func NewSignUpModel(gw auth.Gateway) SignUpModel {
	m := SignUpModel{gateway: gw}
	m.form = m.buildForm()

	return m
}

func (m SignUpModel) Title() string { return "Create Account" }

func (m SignUpModel) ShortHelp() string {
	return "Enter: create account | Ctrl+B: back to sign in | Ctrl+C: quit"
}

func (m SignUpModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SignUpModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.email),

			huh.NewInput().
				Key("password").
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SignUpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+b" {
			return m, func() tea.Msg { return ShowSignInMsg{} }
		}

	case signUpResultMsg:
		m.submitting = false

		if msg.err != nil {
			m.errMsg = auth.FriendlyError(msg.err)
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		acct := msg.account

		return m, func() tea.Msg { return SignedUpMsg{Account: acct} }
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true
	m.errMsg = ""

	return m, m.signUpCmd()
}

func (m SignUpModel) signUpCmd() tea.Cmd {
	gw := m.gateway
	email := m.form.GetString("email")
	password := m.form.GetString("password")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		acct, err := gw.SignUp(ctx, email, password)

		return signUpResultMsg{account: acct, err: err}
	}
}

func (m SignUpModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(1).Render("Creating account...")
	}

	body := m.form.View()

	if m.errMsg != "" {
		errLine := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.errMsg)
		body = errLine + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}
