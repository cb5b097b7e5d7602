package expense

import (
	"strings"

	"github.com/mdineen/outgo/internal/money"
)

// ValidationCode identifies which rule a draft failed.
type ValidationCode string

const (
	CodeDescriptionRequired ValidationCode = "description_required"
	CodeInvalidCost         ValidationCode = "invalid_cost"
)

// ValidationError is a user-correctable input problem. Callers surface the
// message and must not submit the draft to the store.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidateDraft applies the shared rule set for the add and edit flows:
// description must be non-empty after trimming, cost must parse as a
// non-negative decimal. The date is opaque text; the input control is
// trusted to keep it in shape. Cost is normalized to cents on success.
func ValidateDraft(description, date, cost string) (Draft, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Draft{}, &ValidationError{
			Code:    CodeDescriptionRequired,
			Message: "Description is required",
		}
	}

	cents, err := money.ParseAmount(cost)
	if err != nil {
		return Draft{}, &ValidationError{
			Code:    CodeInvalidCost,
			Message: "Enter a valid non-negative cost",
		}
	}

	return Draft{Description: desc, Date: date, Cost: cents}, nil
}
