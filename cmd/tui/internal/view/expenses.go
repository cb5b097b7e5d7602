package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/expense/list"
	"github.com/mdineen/outgo/internal/money"
)

type expensesState int

const (
	expensesStateLoading expensesState = iota
	expensesStateBrowsing
	expensesStateEditing
	expensesStateInvalid
)

// ExpensesModel renders the expense list machine: a sortable table with
// inline editing and delete. All list semantics live in the machine; this
// model only forwards intents and paints the result.
type ExpensesModel struct {
	CommonModel
	machine *list.Machine

	state expensesState
	table table.Model
	rows  []*expense.Expense

	form       *huh.Form
	invalidMsg string
	status     string
}

func NewExpensesModel(machine *list.Machine) ExpensesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Description", Width: 36},
			{Title: "Cost", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return ExpensesModel{
		machine: machine,
		state:   expensesStateLoading,
		table:   t,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStateEditing:
		return "Esc: cancel | Enter/Tab: navigate form"
	case expensesStateInvalid:
		return "Any key: back to editing"
	}

	return "Esc: back | e: edit | x: delete | d/c: sort by date/cost | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

type expensesLoadedMsg struct {
	items []*expense.Expense
	err   error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	machine := m.machine

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := machine.Fetch(ctx)

		return expensesLoadedMsg{items: items, err: err}
	}
}

type commitDoneMsg struct {
	err error
}

func commitCmd(commit list.Commit) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return commitDoneMsg{err: commit(ctx)}
	}
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesLoadedMsg:
		m.machine.ApplyLoad(msg.items, msg.err)
		m.state = expensesStateBrowsing
		m.refreshRows()

		if msg.err != nil {
			m.status = "Could not load expenses; showing an empty list."
		}

		return m, nil

	case commitDoneMsg:
		if msg.err != nil {
			m.status = "Sync failed; unsaved changes revert on the next refresh."
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(4, msg.Height-10))

		return m, nil
	}

	switch m.state {
	case expensesStateBrowsing:
		return m.updateBrowsing(msg)
	case expensesStateEditing:
		return m.updateEditing(msg)
	case expensesStateInvalid:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.state = expensesStateEditing
		}

		return m, nil
	}

	return m, nil
}

func (m ExpensesModel) updateBrowsing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "d":
			m.machine.ChooseSort(list.SortByDate)
			m.refreshRows()

			return m, nil
		case "c":
			m.machine.ChooseSort(list.SortByCost)
			m.refreshRows()

			return m, nil
		case "r":
			m.state = expensesStateLoading
			m.status = ""

			return m, m.loadCmd()
		case "e":
			return m.startEditing()
		case "x":
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) startEditing() (tea.Model, tea.Cmd) {
	selected := m.selectedExpense()
	if selected == nil {
		return m, nil
	}

	m.machine.BeginEdit(selected.ID)
	m.form = m.buildEditForm(m.machine.TempEdit())
	m.state = expensesStateEditing
	m.status = ""

	return m, m.form.Init()
}

func (m ExpensesModel) buildEditForm(temp list.TempEdit) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&temp.Description),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&temp.Date),

			huh.NewInput().
				Key("cost").
				Title("Cost").
				Value(&temp.Cost),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExpensesModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.machine.CancelEdit()
			m.form = nil
			m.state = expensesStateBrowsing

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	id, ok := m.machine.EditingID()
	if !ok {
		m.state = expensesStateBrowsing
		return m, nil
	}

	temp := list.TempEdit{
		Description: m.form.GetString("description"),
		Date:        m.form.GetString("date"),
		Cost:        m.form.GetString("cost"),
	}
	m.machine.SetTempEdit(temp)

	commit, err := m.machine.SaveEdit(id, temp)
	if err != nil {
		m.invalidMsg = err.Error()
		m.form = m.buildEditForm(temp)
		m.state = expensesStateInvalid

		return m, m.form.Init()
	}

	m.form = nil
	m.state = expensesStateBrowsing
	m.refreshRows()

	return m, commitCmd(commit)
}

func (m ExpensesModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected := m.selectedExpense()
	if selected == nil {
		return m, nil
	}

	commit := m.machine.Delete(selected.ID)
	m.refreshRows()
	m.status = fmt.Sprintf("Deleted %q.", selected.Description)

	return m, commitCmd(commit)
}

func (m ExpensesModel) selectedExpense() *expense.Expense {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	return m.rows[idx]
}

func (m *ExpensesModel) refreshRows() {
	m.rows = m.machine.SortedView()

	rows := make([]table.Row, len(m.rows))
	for i, e := range m.rows {
		rows[i] = table.Row{e.Date, e.Description, money.Format(e.Cost)}
	}

	m.table.SetRows(rows)
}

func (m ExpensesModel) View() string {
	switch m.state {
	case expensesStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")

	case expensesStateEditing:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case expensesStateInvalid:
		panel := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(m.invalidMsg + "\n\nPress any key to go back and fix it.")

		return lipgloss.NewStyle().Padding(1).Render(panel)
	}

	sortLine := lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("Sorted by %s (%s)", m.machine.SortBy(), m.machine.SortDir()),
	)
	totalLine := fmt.Sprintf("Total: %s", money.Format(m.machine.Total()))

	body := sortLine + "\n" + m.table.View() + "\n\n" + totalLine

	if m.status != "" {
		body += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}
