// Package list holds the expense list state machine: the in-memory list, the
// sort state, and the single edit slot, orchestrated against the store
// gateway. The presentation layer renders this state and forwards intents;
// it never touches the gateway directly.
package list

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/money"
)

// SortKey selects which field orders the view.
type SortKey string

const (
	SortByDate SortKey = "date"
	SortByCost SortKey = "cost"
)

// SortDir is the view's sort direction.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// State tracks the load lifecycle of the list.
type State int

const (
	Loading State = iota
	Loaded
)

// TempEdit shadows one expense's editable fields as text while a row is in
// edit mode. Seeded on BeginEdit, discarded on save or cancel.
type TempEdit struct {
	Description string
	Date        string
	Cost        string
}

//go:generate mockgen -source=machine.go -destination=gateway_mock.go -package=list
type Gateway interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*expense.Expense, error)
	Update(ctx context.Context, accountID, id uuid.UUID, patch expense.Patch) error
	SoftDelete(ctx context.Context, accountID, id uuid.UUID) error
}

// Commit performs the deferred gateway write for an already-applied local
// mutation. The local state is updated before a Commit exists, so a caller
// can run it whenever convenient (or on another goroutine) without the UI
// waiting on the network.
type Commit func(ctx context.Context) error

// Machine owns the loaded expense list for one mounted list view.
type Machine struct {
	gw        Gateway
	accountID uuid.UUID
	log       *slog.Logger

	state     State
	items     []*expense.Expense
	sortBy    SortKey
	sortDir   SortDir
	editingID uuid.UUID
	editing   bool
	temp      TempEdit
}

// NewMachine returns a machine in the Loading state with the default sort
// (date, descending).
func NewMachine(gw Gateway, accountID uuid.UUID, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}

	return &Machine{
		gw:        gw,
		accountID: accountID,
		log:       log,
		state:     Loading,
		sortBy:    SortByDate,
		sortDir:   Desc,
	}
}

func (m *Machine) State() State     { return m.state }
func (m *Machine) SortBy() SortKey  { return m.sortBy }
func (m *Machine) SortDir() SortDir { return m.sortDir }

// Fetch retrieves the account's expenses from the gateway. It does not touch
// machine state, so it is safe to call off the UI loop and feed the result
// back through ApplyLoad.
func (m *Machine) Fetch(ctx context.Context) ([]*expense.Expense, error) {
	return m.gw.List(ctx, m.accountID)
}

// ApplyLoad transitions to Loaded. A fetch failure degrades to an empty list
// with a logged warning; the page stays usable and the next reload gets
// another chance.
func (m *Machine) ApplyLoad(items []*expense.Expense, err error) {
	if err != nil {
		m.log.Warn("failed to fetch expenses, showing empty list", "error", err)

		items = nil
	}

	m.items = items
	m.state = Loaded
}

// Load is the synchronous fetch-and-apply convenience.
func (m *Machine) Load(ctx context.Context) {
	items, err := m.Fetch(ctx)
	m.ApplyLoad(items, err)
}

// SortedView derives the display order from the loaded list and the current
// sort state. It never mutates the loaded list; calling it twice with the
// same state yields the same order.
func (m *Machine) SortedView() []*expense.Expense {
	view := make([]*expense.Expense, len(m.items))
	copy(view, m.items)

	by, dir := m.sortBy, m.sortDir

	sort.SliceStable(view, func(i, j int) bool {
		var cmp int

		if by == SortByCost {
			cmp = compareCost(view[i].Cost, view[j].Cost)
		} else {
			cmp = dateKey(view[i].Date).Compare(dateKey(view[j].Date))
		}

		if dir == Desc {
			return cmp > 0
		}

		return cmp < 0
	})

	return view
}

// ChooseSort re-sorts by key: picking the current key flips the direction,
// picking the other key resets to that key's default (date descending, cost
// ascending).
func (m *Machine) ChooseSort(key SortKey) {
	if m.sortBy == key {
		if m.sortDir == Asc {
			m.sortDir = Desc
		} else {
			m.sortDir = Asc
		}

		return
	}

	m.sortBy = key
	if key == SortByCost {
		m.sortDir = Asc
	} else {
		m.sortDir = Desc
	}
}

// BeginEdit claims the edit slot for the given row and seeds the temp edit
// from its fields. Starting a new edit overwrites an in-progress one without
// confirmation; there is only one slot.
func (m *Machine) BeginEdit(id uuid.UUID) {
	e := m.find(id)
	if e == nil {
		return
	}

	m.editingID = id
	m.editing = true
	m.temp = TempEdit{
		Description: e.Description,
		Date:        e.Date,
		Cost:        money.Plain(e.Cost),
	}
}

// CancelEdit releases the edit slot without touching stored data.
func (m *Machine) CancelEdit() {
	m.editing = false
	m.editingID = uuid.Nil
	m.temp = TempEdit{}
}

// EditingID reports which row is in edit mode, if any.
func (m *Machine) EditingID() (uuid.UUID, bool) {
	return m.editingID, m.editing
}

func (m *Machine) TempEdit() TempEdit { return m.temp }

// SetTempEdit replaces the temp edit as the user types.
func (m *Machine) SetTempEdit(t TempEdit) { m.temp = t }

// SaveEdit validates the temp edit and, on success, applies it to the
// in-memory list immediately, releases the edit slot, and returns the
// deferred gateway write. On validation failure nothing changes: the edit
// slot and list are untouched, no Commit is returned, and the gateway is
// never called. A failed Commit is logged only; the optimistic local copy
// stands until the next full reload.
func (m *Machine) SaveEdit(id uuid.UUID, temp TempEdit) (Commit, error) {
	draft, err := expense.ValidateDraft(temp.Description, temp.Date, temp.Cost)
	if err != nil {
		return nil, err
	}

	if e := m.find(id); e != nil {
		e.Description = draft.Description
		e.Date = draft.Date
		e.Cost = draft.Cost
	}

	m.CancelEdit()

	patch := expense.Patch{
		Description: &draft.Description,
		Date:        &draft.Date,
		Cost:        &draft.Cost,
	}
	gw, accountID, log := m.gw, m.accountID, m.log

	return func(ctx context.Context) error {
		if err := gw.Update(ctx, accountID, id, patch); err != nil {
			log.Warn("failed to save edit, local copy kept until next reload",
				"id", id, "error", err)

			return err
		}

		return nil
	}, nil
}

// Delete removes the row from the in-memory list immediately (releasing the
// edit slot if it was the edited row) and returns the deferred soft-delete.
// Same no-rollback policy as SaveEdit.
func (m *Machine) Delete(id uuid.UUID) Commit {
	kept := make([]*expense.Expense, 0, len(m.items))

	for _, e := range m.items {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	m.items = kept

	if m.editingID == id {
		m.CancelEdit()
	}

	gw, accountID, log := m.gw, m.accountID, m.log

	return func(ctx context.Context) error {
		if err := gw.SoftDelete(ctx, accountID, id); err != nil {
			log.Warn("failed to delete expense, row returns on next reload",
				"id", id, "error", err)

			return err
		}

		return nil
	}
}

// Total is the grand total of the loaded list in cents.
func (m *Machine) Total() int64 {
	return expense.Total(m.items)
}

func (m *Machine) find(id uuid.UUID) *expense.Expense {
	for _, e := range m.items {
		if e.ID == id {
			return e
		}
	}

	return nil
}

func compareCost(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// dateKey turns stored YYYY-MM-DD text into a comparable instant. Missing or
// malformed dates sort as the earliest possible value rather than erroring.
func dateKey(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}

	return t
}
