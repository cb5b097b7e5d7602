package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/importer"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

// ImportModel walks the user through picking a CSV file and loading its rows
// as expenses.
type ImportModel struct {
	CommonModel
	expenses  *expense.Service
	accountID uuid.UUID

	state      importState
	filePicker filepicker.Model
	spinner    spinner.Model
	status     string
	err        error
}

func NewImportModel(expenses *expense.Service, accountID uuid.UUID) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ImportModel{
		expenses:   expenses,
		accountID:  accountID,
		filePicker: fp,
		spinner:    s,
	}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateImporting:
		return "Importing..."
	case importStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: select file"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type importResultMsg struct {
	imported int
	err      error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == importStateImporting {
				return m, nil
			}

			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Imported %d expenses.", msg.imported)
		}

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if ok, path := m.filePicker.DidSelectFile(msg); ok {
			m.state = importStateImporting
			return m, tea.Batch(m.spinner.Tick, m.importCmd(path))
		}

		return m, cmd

	case importStateImporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	svc, accountID := m.expenses, m.accountID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		drafts, err := importer.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		created, err := svc.CreateBatch(ctx, accountID, drafts)

		return importResultMsg{imported: len(created), err: err}
	}
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateImporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Importing expenses...", m.spinner.View()),
		)

	case importStateResult:
		style := lipgloss.NewStyle().Padding(1)
		if m.err != nil {
			return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status))
		}

		return style.Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		"Pick a CSV file to import:\n\n" + m.filePicker.View(),
	)
}
