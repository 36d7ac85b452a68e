package billing

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

var (
	ErrExpenseNotFound = errors.New("despesa não encontrada")
	ErrNotRecurring    = errors.New("despesa não é recorrente")
)

// ExpenseBilling é a visão de cobrança de uma despesa em um instante
type ExpenseBilling struct {
	Expense domain.Expense       `json:"expense"`
	Status  domain.BillingStatus `json:"billing_status"`
	NextDue *domain.NextDue      `json:"next_due,omitempty"`
}

type Scheduler interface {
	StatusByID(ctx context.Context, id string) (*ExpenseBilling, error)
	MarkPaid(ctx context.Context, id string) (*ExpenseBilling, error)
	ListUpcoming(ctx context.Context, withinDays int) ([]domain.UpcomingPayment, error)
}

type Service struct {
	expenseRepo repository.ExpenseRepository
	clock       clock.Clock
}

func NewService(expenseRepo repository.ExpenseRepository, clk clock.Clock) *Service {
	return &Service{
		expenseRepo: expenseRepo,
		clock:       clk,
	}
}

func (s *Service) StatusByID(ctx context.Context, id string) (*ExpenseBilling, error) {
	expense, err := s.getRecurring(ctx, id)
	if err != nil {
		return nil, err
	}

	return evaluate(*expense, s.clock.Now()), nil
}

// MarkPaid registra o pagamento do ciclo atual (last_payment_date = agora)
func (s *Service) MarkPaid(ctx context.Context, id string) (*ExpenseBilling, error) {
	expense, err := s.getRecurring(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.expenseRepo.UpdateLastPaymentDate(ctx, id, now); err != nil {
		return nil, errors.Wrap(err, "erro ao registrar pagamento")
	}
	expense.LastPaymentDate = &now

	log.ForContext(ctx).WithFields(log.Fields{
		"expense_id": id,
		"paid_at":    now,
	}).Info("billing: pagamento registrado")

	return evaluate(*expense, now), nil
}

// ListUpcoming lista as despesas recorrentes vigentes com vencimento em até
// withinDays dias, mais as vencidas sem pagamento. Ordena vencidas primeiro e
// depois por dias até o vencimento.
func (s *Service) ListUpcoming(ctx context.Context, withinDays int) ([]domain.UpcomingPayment, error) {
	if withinDays < 0 {
		return nil, errors.Errorf("janela de dias inválida: %d", withinDays)
	}

	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar despesas")
	}

	now := s.clock.Now()
	today := calendar.StartOfDay(now)

	upcoming := make([]domain.UpcomingPayment, 0)
	for _, expense := range expenses {
		if !expense.IsRecurring() || expense.BillingDay == nil || !expense.ActiveBetween(today, now) {
			continue
		}

		status := GetBillingStatus(expense, now)
		if status.Status == domain.BillingStatusPaid {
			continue
		}

		nextDue := GetNextDueDate(expense, now)
		if status.Status != domain.BillingStatusExpired && nextDue.DaysUntil > withinDays {
			continue
		}

		upcoming = append(upcoming, domain.UpcomingPayment{
			Expense: expense,
			Status:  status,
			NextDue: *nextDue,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		iExpired := upcoming[i].Status.Status == domain.BillingStatusExpired
		jExpired := upcoming[j].Status.Status == domain.BillingStatusExpired
		if iExpired != jExpired {
			return iExpired
		}
		if upcoming[i].NextDue.DaysUntil != upcoming[j].NextDue.DaysUntil {
			return upcoming[i].NextDue.DaysUntil < upcoming[j].NextDue.DaysUntil
		}
		if upcoming[i].Expense.Name != upcoming[j].Expense.Name {
			return upcoming[i].Expense.Name < upcoming[j].Expense.Name
		}
		return upcoming[i].Expense.ID < upcoming[j].Expense.ID
	})

	return upcoming, nil
}

func (s *Service) getRecurring(ctx context.Context, id string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar despesa")
	}
	if expense == nil {
		return nil, errors.Wrapf(ErrExpenseNotFound, "id %s", id)
	}
	if !expense.IsRecurring() {
		return nil, errors.Wrapf(ErrNotRecurring, "id %s", id)
	}

	return expense, nil
}

func evaluate(expense domain.Expense, now time.Time) *ExpenseBilling {
	return &ExpenseBilling{
		Expense: expense,
		Status:  GetBillingStatus(expense, now),
		NextDue: GetNextDueDate(expense, now),
	}
}
