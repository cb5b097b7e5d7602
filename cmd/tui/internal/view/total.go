package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/money"
)

// TotalModel shows the grand total of the account's expenses.
type TotalModel struct {
	CommonModel
	expenses  *expense.Service
	accountID uuid.UUID

	loading bool
	spinner spinner.Model
	total   int64
	count   int
	err     error
}

func NewTotalModel(expenses *expense.Service, accountID uuid.UUID) TotalModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return TotalModel{
		expenses:  expenses,
		accountID: accountID,
		loading:   true,
		spinner:   s,
	}
}

func (m TotalModel) Title() string { return "Total Spend" }

func (m TotalModel) ShortHelp() string { return "Esc: back" }

func (m TotalModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

type totalLoadedMsg struct {
	items []*expense.Expense
	err   error
}

func (m TotalModel) loadCmd() tea.Cmd {
	svc, accountID := m.expenses, m.accountID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := svc.List(ctx, accountID)

		return totalLoadedMsg{items: items, err: err}
	}
}

func (m TotalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case totalLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.total = expense.Total(msg.items)
		m.count = len(msg.items)

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		return m, nil
	}

	if m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m TotalModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Adding it all up...", m.spinner.View()),
		)
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	amount := lipgloss.NewStyle().Bold(true).Render(money.Format(m.total))

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("You have spent %s across %d expenses.", amount, m.count),
	)
}
