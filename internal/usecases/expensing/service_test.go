package expensing

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockExpenseRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExpenseRepository(ctrl)

	service := NewService(repo)
	service.generateID = func() (string, error) { return "exp123", nil }

	return service, repo
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name     string
		input    func() *domain.Expense
		setup    func(repo *mocks.MockExpenseRepository)
		validate func(t *testing.T, expense *domain.Expense, err error)
	}{
		{
			name: "grava despesa com id gerado",
			input: func() *domain.Expense {
				e := validRecurring()
				return &e
			},
			setup: func(repo *mocks.MockExpenseRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *domain.Expense) error {
						assert.Equal(t, "exp123", e.ID)
						return nil
					})
			},
			validate: func(t *testing.T, expense *domain.Expense, err error) {
				require.NoError(t, err)
				assert.Equal(t, "exp123", expense.ID)
			},
		},
		{
			name: "despesa inválida não chega ao banco",
			input: func() *domain.Expense {
				e := validRecurring()
				e.BillingDay = intPtr(40)
				return &e
			},
			setup: func(repo *mocks.MockExpenseRepository) {},
			validate: func(t *testing.T, expense *domain.Expense, err error) {
				assert.Nil(t, expense)
				assert.True(t, errors.Is(err, ErrInvalidBillingDay))
			},
		},
		{
			name: "erro do banco é propagado",
			input: func() *domain.Expense {
				e := validRecurring()
				return &e
			},
			setup: func(repo *mocks.MockExpenseRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("duplicate key"))
			},
			validate: func(t *testing.T, expense *domain.Expense, err error) {
				assert.Nil(t, expense)
				assert.ErrorContains(t, err, "duplicate key")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			expense, err := service.Create(context.Background(), tt.input())
			tt.validate(t, expense, err)
		})
	}
}

func TestService_Update(t *testing.T) {
	paidAt := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	t.Run("mantém a data do último pagamento", func(t *testing.T) {
		service, repo := newTestService(t)

		current := validRecurring()
		current.ID = "exp1"
		current.LastPaymentDate = &paidAt
		repo.EXPECT().GetByID(gomock.Any(), "exp1").Return(&current, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		input := validRecurring()
		input.ID = "exp1"
		input.Name = "Servidor dedicado"

		updated, err := service.Update(context.Background(), &input)

		require.NoError(t, err)
		assert.Equal(t, "Servidor dedicado", updated.Name)
		require.NotNil(t, updated.LastPaymentDate)
		assert.Equal(t, paidAt, *updated.LastPaymentDate)
	})

	t.Run("data de pagamento explícita substitui a gravada", func(t *testing.T) {
		service, repo := newTestService(t)

		current := validRecurring()
		current.ID = "exp1"
		current.LastPaymentDate = &paidAt
		repo.EXPECT().GetByID(gomock.Any(), "exp1").Return(&current, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		newPaidAt := paidAt.AddDate(0, 1, 0)
		input := validRecurring()
		input.ID = "exp1"
		input.LastPaymentDate = &newPaidAt

		updated, err := service.Update(context.Background(), &input)

		require.NoError(t, err)
		require.NotNil(t, updated.LastPaymentDate)
		assert.Equal(t, newPaidAt, *updated.LastPaymentDate)
	})

	t.Run("despesa inexistente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "exp1").Return(nil, nil)

		input := validRecurring()
		input.ID = "exp1"

		_, err := service.Update(context.Background(), &input)
		assert.True(t, errors.Is(err, ErrExpenseNotFound))
	})
}

func TestService_List(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().List(gomock.Any()).Return([]domain.Expense{{ID: "a"}, {ID: "b"}}, nil)

	expenses, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, expenses, 2)
}
