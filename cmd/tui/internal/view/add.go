package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
)

type addState int

const (
	addStateForm addState = iota
	addStateInvalid
	addStateSaving
	addStateResult
)

// AddModel is the new-expense form. Validation failures surface as a modal
// the user dismisses back into the form; nothing is stored until the draft
// passes.
type AddModel struct {
	CommonModel
	expenses  *expense.Service
	accountID uuid.UUID

	state      addState
	form       *huh.Form
	desc       string
	date       string
	cost       string
	invalidMsg string
	resultMsg  string
}

func NewAddModel(expenses *expense.Service, accountID uuid.UUID) AddModel {
	m := AddModel{
		expenses:  expenses,
		accountID: accountID,
		date:      time.Now().Format(time.DateOnly),
	}
	m.form = m.buildForm()

	return m
}

func (m AddModel) Title() string { return "Add Expense" }

func (m AddModel) ShortHelp() string {
	switch m.state {
	case addStateInvalid:
		return "Any key: back to the form"
	case addStateResult:
		return "Esc: back to menu | a: add another"
	}

	return "Esc: back | Enter/Tab: navigate form"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.desc),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.date),

			huh.NewInput().
				Key("cost").
				Title("Cost").
				Placeholder("0.00").
				Value(&m.cost),
		),
	).WithWidth(50).WithShowHelp(false)
}

type addResultMsg struct {
	created *expense.Expense
	err     error
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addResultMsg:
		m.state = addStateResult

		if msg.err != nil {
			m.resultMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.resultMsg = fmt.Sprintf("Added %q.", msg.created.Description)
		}

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case addStateInvalid:
			m.state = addStateForm
			return m, nil

		case addStateResult:
			switch msg.String() {
			case "esc":
				return m, Back
			case "a":
				fresh := NewAddModel(m.expenses, m.accountID)
				return fresh, fresh.Init()
			}

			return m, nil

		case addStateForm:
			if msg.Type == tea.KeyEsc {
				return m, Back
			}
		}
	}

	if m.state != addStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	draft, err := expense.ValidateDraft(
		m.form.GetString("description"),
		m.form.GetString("date"),
		m.form.GetString("cost"),
	)
	if err != nil {
		m.invalidMsg = err.Error()
		m.desc = m.form.GetString("description")
		m.date = m.form.GetString("date")
		m.cost = m.form.GetString("cost")
		m.form = m.buildForm()
		m.state = addStateInvalid

		return m, m.form.Init()
	}

	m.state = addStateSaving

	return m, m.saveCmd(draft)
}

func (m AddModel) saveCmd(draft expense.Draft) tea.Cmd {
	svc, accountID := m.expenses, m.accountID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		created, err := svc.Create(ctx, accountID, draft)

		return addResultMsg{created: created, err: err}
	}
}

func (m AddModel) View() string {
	switch m.state {
	case addStateInvalid:
		panel := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(m.invalidMsg + "\n\nPress any key to go back and fix it.")

		return lipgloss.NewStyle().Padding(1).Render(panel)

	case addStateSaving:
		return lipgloss.NewStyle().Padding(1).Render("Saving...")

	case addStateResult:
		return lipgloss.NewStyle().Padding(1).Render(m.resultMsg)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}
