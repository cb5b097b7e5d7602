package expense

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	ListExpenses(ctx context.Context, accountID uuid.UUID) ([]*Expense, error)
	CreateExpense(ctx context.Context, accountID uuid.UUID, e *Expense) error
	UpdateExpense(ctx context.Context, accountID, id uuid.UUID, patch Patch) error
	SoftDeleteExpense(ctx context.Context, accountID, id uuid.UUID) error
}

// Service is the store gateway the UI and handlers talk to. Every operation
// is scoped to an account; listing excludes soft-deleted records at the
// query boundary, so a loaded list never contains a deleted entry.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, accountID uuid.UUID) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, accountID)
}

// Create persists a draft. Drafts normally arrive via ValidateDraft; the
// invariants are re-checked here so nothing invalid reaches storage.
func (s *Service) Create(ctx context.Context, accountID uuid.UUID, d Draft) (*Expense, error) {
	if d.Description == "" {
		return nil, &ValidationError{Code: CodeDescriptionRequired, Message: "Description is required"}
	}

	if d.Cost < 0 {
		return nil, &ValidationError{Code: CodeInvalidCost, Message: "Enter a valid non-negative cost"}
	}

	e := &Expense{
		Description: d.Description,
		Date:        d.Date,
		Cost:        d.Cost,
	}
	if err := s.repo.CreateExpense(ctx, accountID, e); err != nil {
		return nil, err
	}

	return e, nil
}

// CreateBatch persists drafts in order, stopping at the first failure and
// reporting how many made it in.
func (s *Service) CreateBatch(ctx context.Context, accountID uuid.UUID, drafts []Draft) ([]*Expense, error) {
	created := make([]*Expense, 0, len(drafts))

	for _, d := range drafts {
		e, err := s.Create(ctx, accountID, d)
		if err != nil {
			return created, err
		}

		created = append(created, e)
	}

	return created, nil
}

func (s *Service) Update(ctx context.Context, accountID, id uuid.UUID, patch Patch) error {
	return s.repo.UpdateExpense(ctx, accountID, id, patch)
}

// SoftDelete flags the record as deleted. The row stays in storage; it just
// stops showing up in List.
func (s *Service) SoftDelete(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.SoftDeleteExpense(ctx, accountID, id)
}
