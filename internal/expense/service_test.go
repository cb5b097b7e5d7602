package expense_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mdineen/outgo/internal/expense"
)

func TestService_Create(t *testing.T) {
	accountID := uuid.New()

	type testCase struct {
		name     string
		draft    expense.Draft
		setup    func(m *expense.MockRepository)
		wantErr  bool
		wantCode expense.ValidationCode
	}

	tests := []testCase{
		{
			name:  "Success",
			draft: expense.Draft{Description: "Groceries", Date: "2024-02-10", Cost: 4599},
			setup: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), accountID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, e *expense.Expense) error {
						e.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:     "EmptyDescriptionNeverReachesStore",
			draft:    expense.Draft{Description: "", Date: "2024-02-10", Cost: 100},
			wantErr:  true,
			wantCode: expense.CodeDescriptionRequired,
		},
		{
			name:     "NegativeCostNeverReachesStore",
			draft:    expense.Draft{Description: "Groceries", Date: "2024-02-10", Cost: -1},
			wantErr:  true,
			wantCode: expense.CodeInvalidCost,
		},
		{
			name:  "RepoError",
			draft: expense.Draft{Description: "Groceries", Date: "2024-02-10", Cost: 4599},
			setup: func(m *expense.MockRepository) {
				m.EXPECT().
					CreateExpense(gomock.Any(), accountID, gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setup != nil {
				tt.setup(repo)
			}

			svc := expense.NewService(repo)
			got, err := svc.Create(context.Background(), accountID, tt.draft)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantCode != "" {
					var verr *expense.ValidationError
					require.ErrorAs(t, err, &verr)
					assert.Equal(t, tt.wantCode, verr.Code)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.draft.Description, got.Description)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().
		ListExpenses(gomock.Any(), accountID).
		Return([]*expense.Expense{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := expense.NewService(repo)
	got, err := svc.List(context.Background(), accountID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_CreateBatch_StopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateExpense(gomock.Any(), accountID, gomock.Any()).
		Return(nil)
	repo.EXPECT().
		CreateExpense(gomock.Any(), accountID, gomock.Any()).
		Return(errors.New("db error"))

	svc := expense.NewService(repo)
	drafts := []expense.Draft{
		{Description: "One", Date: "2024-01-01", Cost: 100},
		{Description: "Two", Date: "2024-01-02", Cost: 200},
		{Description: "Three", Date: "2024-01-03", Cost: 300},
	}

	created, err := svc.CreateBatch(context.Background(), accountID, drafts)
	assert.Error(t, err)
	assert.Len(t, created, 1)
}

func TestService_SoftDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	id := uuid.New()
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().SoftDeleteExpense(gomock.Any(), accountID, id).Return(nil)

	svc := expense.NewService(repo)
	require.NoError(t, svc.SoftDelete(context.Background(), accountID, id))
}
