package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
)

type expenseResponse struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Cost        int64      `json:"cost"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type listResponse struct {
	Expenses []expenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Date:        e.Date,
		Cost:        e.Cost,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toListResponse(items []*expense.Expense) listResponse {
	resp := listResponse{
		Expenses: make([]expenseResponse, len(items)),
		Total:    expense.Total(items),
	}
	for i, e := range items {
		resp.Expenses[i] = toResponse(e)
	}

	return resp
}
