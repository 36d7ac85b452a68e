package billing

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

var testNow = at(2026, time.April, 10, 12)

func newTestService(t *testing.T) (*Service, *mocks.MockExpenseRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExpenseRepository(ctrl)

	return NewService(repo, clock.NewFixed(testNow)), repo
}

func TestService_StatusByID(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(repo *mocks.MockExpenseRepository)
		validate func(t *testing.T, result *ExpenseBilling, err error)
	}{
		{
			name: "retorna status e próximo vencimento",
			setup: func(repo *mocks.MockExpenseRepository) {
				expense := recurring(intPtr(15), nil)
				repo.EXPECT().GetByID(gomock.Any(), "ex1").Return(&expense, nil)
			},
			validate: func(t *testing.T, result *ExpenseBilling, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.BillingStatusUpcoming, result.Status.Status)
				assert.Equal(t, 5, *result.Status.DaysRemaining)
				require.NotNil(t, result.NextDue)
				assert.Equal(t, at(2026, time.April, 15, 0), result.NextDue.Date)
			},
		},
		{
			name: "despesa inexistente",
			setup: func(repo *mocks.MockExpenseRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "ex1").Return(nil, nil)
			},
			validate: func(t *testing.T, result *ExpenseBilling, err error) {
				assert.Nil(t, result)
				assert.True(t, errors.Is(err, ErrExpenseNotFound))
			},
		},
		{
			name: "despesa fixa não tem ciclo de cobrança",
			setup: func(repo *mocks.MockExpenseRepository) {
				expense := recurring(intPtr(15), nil)
				expense.Type = domain.ExpenseTypeFixed
				repo.EXPECT().GetByID(gomock.Any(), "ex1").Return(&expense, nil)
			},
			validate: func(t *testing.T, result *ExpenseBilling, err error) {
				assert.Nil(t, result)
				assert.True(t, errors.Is(err, ErrNotRecurring))
			},
		},
		{
			name: "erro do repositório é propagado",
			setup: func(repo *mocks.MockExpenseRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "ex1").Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, result *ExpenseBilling, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "conexão recusada")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			result, err := service.StatusByID(context.Background(), "ex1")
			tt.validate(t, result, err)
		})
	}
}

func TestService_MarkPaid(t *testing.T) {
	t.Run("despesa vencida passa a paga", func(t *testing.T) {
		service, repo := newTestService(t)

		expense := recurring(intPtr(5), nil)
		require.Equal(t, domain.BillingStatusExpired, GetBillingStatus(expense, testNow).Status)

		repo.EXPECT().GetByID(gomock.Any(), "ex1").Return(&expense, nil)
		repo.EXPECT().UpdateLastPaymentDate(gomock.Any(), "ex1", testNow).Return(nil)

		result, err := service.MarkPaid(context.Background(), "ex1")

		require.NoError(t, err)
		assert.Equal(t, domain.BillingStatusPaid, result.Status.Status)
		assert.Nil(t, result.Status.DaysRemaining)
		require.NotNil(t, result.Expense.LastPaymentDate)
		assert.Equal(t, testNow, *result.Expense.LastPaymentDate)
	})

	t.Run("falha ao gravar não altera o status", func(t *testing.T) {
		service, repo := newTestService(t)

		expense := recurring(intPtr(5), nil)
		repo.EXPECT().GetByID(gomock.Any(), "ex1").Return(&expense, nil)
		repo.EXPECT().UpdateLastPaymentDate(gomock.Any(), "ex1", testNow).Return(errors.New("timeout"))

		result, err := service.MarkPaid(context.Background(), "ex1")

		assert.Nil(t, result)
		require.Error(t, err)
	})

	t.Run("despesa fixa não pode ser paga", func(t *testing.T) {
		service, repo := newTestService(t)

		expense := recurring(nil, nil)
		expense.Type = domain.ExpenseTypeFixed
		repo.EXPECT().GetByID(gomock.Any(), "ex1").Return(&expense, nil)

		_, err := service.MarkPaid(context.Background(), "ex1")
		assert.True(t, errors.Is(err, ErrNotRecurring))
	})
}

func TestService_ListUpcoming(t *testing.T) {
	named := func(id, name string, billingDay *int, lastPayment *time.Time) domain.Expense {
		expense := recurring(billingDay, lastPayment)
		expense.ID = id
		expense.Name = name
		return expense
	}

	fixed := named("fixo", "Contador", intPtr(12), nil)
	fixed.Type = domain.ExpenseTypeFixed

	ended := named("encerrada", "Antigo", intPtr(12), nil)
	ended.EndDate = timePtr(at(2026, time.March, 1, 0))

	expenses := []domain.Expense{
		named("servidor", "Servidor", intPtr(15), nil),
		named("aluguel", "Aluguel", intPtr(5), nil),
		named("pago", "Internet", intPtr(12), timePtr(at(2026, time.March, 20, 9))),
		named("longe", "Seguro", intPtr(25), nil),
		fixed,
		ended,
		named("dominio", "Domínio", intPtr(15), nil),
		named("sem-dia", "Sem dia", nil, nil),
	}

	t.Run("filtra pela janela e ordena vencidas primeiro", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().List(gomock.Any()).Return(expenses, nil)

		upcoming, err := service.ListUpcoming(context.Background(), 7)

		require.NoError(t, err)
		ids := make([]string, 0, len(upcoming))
		for _, item := range upcoming {
			ids = append(ids, item.Expense.ID)
		}
		assert.Equal(t, []string{"aluguel", "dominio", "servidor"}, ids)
		assert.Equal(t, domain.BillingStatusExpired, upcoming[0].Status.Status)
		assert.Equal(t, 5, upcoming[1].NextDue.DaysUntil)
	})

	t.Run("janela maior inclui vencimentos distantes", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().List(gomock.Any()).Return(expenses, nil)

		upcoming, err := service.ListUpcoming(context.Background(), 30)

		require.NoError(t, err)
		require.Len(t, upcoming, 4)
		assert.Equal(t, "longe", upcoming[3].Expense.ID)
	})

	t.Run("janela negativa é rejeitada", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ListUpcoming(context.Background(), -1)
		assert.Error(t, err)
	})
}
