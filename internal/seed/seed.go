// Package seed fills a fresh dev account with plausible expenses so the UI
// has something to show. Guarded by config; never runs in production.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
)

var descriptions = []string{
	"Coffee",
	"Groceries",
	"Dining out",
	"Taxi",
	"Fuel",
	"Rent",
	"Utilities",
	"Internet",
	"Subscriptions",
	"Shopping",
}

const defaultCount = 100

// EnsureExpenses seeds n random expenses spread over the trailing 180 days.
// Accounts that already have expenses are left alone, so re-running the app
// with seeding on does not pile up duplicates. n <= 0 uses a default.
func EnsureExpenses(ctx context.Context, svc *expense.Service, accountID uuid.UUID, n int) error {
	existing, err := svc.List(ctx, accountID)
	if err != nil {
		return fmt.Errorf("checking for existing expenses: %w", err)
	}

	if len(existing) > 0 {
		return nil
	}

	if n <= 0 {
		n = defaultCount
	}

	drafts := make([]expense.Draft, 0, n)
	now := time.Now()

	for i := 0; i < n; i++ {
		drafts = append(drafts, expense.Draft{
			Description: descriptions[rand.IntN(len(descriptions))],
			Date:        now.AddDate(0, 0, -rand.IntN(180)).Format(time.DateOnly),
			Cost:        int64(rand.IntN(24901) + 100), // 1.00 to 250.00
		})
	}

	if _, err := svc.CreateBatch(ctx, accountID, drafts); err != nil {
		return fmt.Errorf("seeding expenses: %w", err)
	}

	return nil
}
