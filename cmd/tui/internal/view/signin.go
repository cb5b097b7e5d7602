package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mdineen/outgo/internal/auth"
)

// ShowSignUpMsg asks the root model to swap to the sign-up screen.
type ShowSignUpMsg struct{}

// ShowSignInMsg asks the root model to swap to the sign-in screen.
type ShowSignInMsg struct{}

type signInResultMsg struct {
	err error
}

type SignInModel struct {
	CommonModel
	gateway auth.Gateway

	form       *huh.Form
	email      string
	password   string
	errMsg     string
	submitting bool
}

func NewSignInModel(gw auth.Gateway) SignInModel {
	m := SignInModel{gateway: gw}
	m.form = m.buildForm()

	return m
}

func (m SignInModel) Title() string { return "Sign In" }

func (m SignInModel) ShortHelp() string {
	return "Enter: sign in | Ctrl+N: create account | Ctrl+C: quit"
}

func (m SignInModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SignInModel) buildForm() *huh.Form {
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
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+n" {
			return m, func() tea.Msg { return ShowSignUpMsg{} }
		}

	case signInResultMsg:
		m.submitting = false

		if msg.err != nil {
			m.errMsg = auth.FriendlyError(msg.err)
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		// Success flows in through the gate's AccountChangedMsg.
		return m, nil
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

	return m, m.signInCmd()
}

func (m SignInModel) signInCmd() tea.Cmd {
	gw := m.gateway
	email := m.form.GetString("email")
	password := m.form.GetString("password")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := gw.SignIn(ctx, email, password)

		return signInResultMsg{err: err}
	}
}

func (m SignInModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(1).Render("Signing in...")
	}

	body := m.form.View()

	if m.errMsg != "" {
		errLine := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.errMsg)
		body = errLine + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}
