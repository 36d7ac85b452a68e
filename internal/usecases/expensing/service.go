package expensing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
	"github.com/vfg2006/finance-tracker-api/pkg/utils"
)

type Expenser interface {
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	Get(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
}

type Service struct {
	expenseRepo repository.ExpenseRepository
	generateID  func() (string, error)
}

func NewService(expenseRepo repository.ExpenseRepository) *Service {
	return &Service{
		expenseRepo: expenseRepo,
		generateID:  utils.GenerateID,
	}
}

func (s *Service) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	if err := Validate(expense); err != nil {
		return nil, err
	}

	id, err := s.generateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id da despesa")
	}
	expense.ID = id

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, errors.Wrap(err, "erro ao criar despesa")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"expense_id": expense.ID,
		"type":       expense.Type,
	}).Info("expensing: despesa criada")

	return expense, nil
}

// Update substitui os campos editáveis. A data do último pagamento é mantida
// a não ser que venha preenchida na requisição: PUT nunca limpa o marcador.
func (s *Service) Update(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	current, err := s.Get(ctx, expense.ID)
	if err != nil {
		return nil, err
	}

	if expense.LastPaymentDate == nil {
		expense.LastPaymentDate = current.LastPaymentDate
	}

	if err := Validate(expense); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar despesa")
	}

	return expense, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar despesa")
	}
	if expense == nil {
		return nil, errors.Wrapf(ErrExpenseNotFound, "id %s", id)
	}

	return expense, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar despesas")
	}

	return expenses, nil
}
