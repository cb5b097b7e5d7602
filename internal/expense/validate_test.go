package expense_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdineen/outgo/internal/expense"
)

func TestValidateDraft(t *testing.T) {
	type args struct {
		description string
		date        string
		cost        string
	}

	tests := []struct {
		name     string
		args     args
		want     expense.Draft
		wantCode expense.ValidationCode
	}{
		{
			name: "Valid",
			args: args{description: "Coffee", date: "2024-01-03", cost: "3.5"},
			want: expense.Draft{Description: "Coffee", Date: "2024-01-03", Cost: 350},
		},
		{
			name: "TrimsDescription",
			args: args{description: "  Taxi  ", date: "2024-01-03", cost: "12"},
			want: expense.Draft{Description: "Taxi", Date: "2024-01-03", Cost: 1200},
		},
		{
			name: "NormalizesCostToTwoDecimals",
			args: args{description: "Fuel", date: "2024-01-03", cost: "49.999"},
			want: expense.Draft{Description: "Fuel", Date: "2024-01-03", Cost: 5000},
		},
		{
			name:     "EmptyDescription",
			args:     args{description: "", date: "2024-01-03", cost: "10"},
			wantCode: expense.CodeDescriptionRequired,
		},
		{
			name:     "WhitespaceDescription",
			args:     args{description: "   ", date: "2024-01-03", cost: "10"},
			wantCode: expense.CodeDescriptionRequired,
		},
		{
			name:     "NegativeCost",
			args:     args{description: "Coffee", date: "2024-01-03", cost: "-5"},
			wantCode: expense.CodeInvalidCost,
		},
		{
			name:     "UnparseableCost",
			args:     args{description: "Coffee", date: "2024-01-03", cost: "ten"},
			wantCode: expense.CodeInvalidCost,
		},
		{
			name: "OpaqueDateAccepted",
			args: args{description: "Coffee", date: "not-a-date", cost: "1"},
			want: expense.Draft{Description: "Coffee", Date: "not-a-date", Cost: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expense.ValidateDraft(tt.args.description, tt.args.date, tt.args.cost)

			if tt.wantCode != "" {
				var verr *expense.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantCode, verr.Code)
				assert.NotEmpty(t, verr.Message)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationError_IsError(t *testing.T) {
	_, err := expense.ValidateDraft("", "2024-01-01", "1")

	var verr *expense.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "Description is required", err.Error())
}

func TestTotal(t *testing.T) {
	assert.Equal(t, int64(0), expense.Total(nil))
	assert.Equal(t, int64(0), expense.Total([]*expense.Expense{}))

	items := []*expense.Expense{
		{Cost: 1250},
		{Cost: 750},
	}
	assert.Equal(t, int64(2000), expense.Total(items))
}
