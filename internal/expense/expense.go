package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Expense is a single monetary record scoped to an account. Dates are kept as
// YYYY-MM-DD text the way users entered them; display ordering parses them
// leniently instead of rejecting odd values. Records are never removed from
// storage, only flagged deleted.
type Expense struct {
	ID          uuid.UUID
	Description string
	Date        string // YYYY-MM-DD
	Cost        int64  // cents
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Draft is a validated, normalized expense waiting to be persisted.
type Draft struct {
	Description string
	Date        string
	Cost        int64
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Description *string
	Date        *string
	Cost        *int64
}

var ErrNotFound = errors.New("expense not found")
