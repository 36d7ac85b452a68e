package selling

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
	"github.com/vfg2006/finance-tracker-api/pkg/utils"
)

var (
	ErrMissingRequiredField = errors.New("campo obrigatório ausente")
	ErrInvalidAmount        = errors.New("valor inválido")
	ErrSaleNotFound         = errors.New("venda recorrente não encontrada")
	ErrInvalidTransition    = errors.New("transição de status não permitida")
)

// CloseSaleRequest descreve um contrato fechado: taxa de entrada e/ou
// mensalidade. Valores zero não geram registro.
type CloseSaleRequest struct {
	ClientID         string          `json:"client_id"`
	OnboardingAmount decimal.Decimal `json:"onboarding_amount"`
	RecurringAmount  decimal.Decimal `json:"recurring_amount"`
}

type ClosedSale struct {
	Onboarding *domain.OnboardingEvent `json:"onboarding,omitempty"`
	Recurring  *domain.RecurringSale   `json:"recurring,omitempty"`
}

type Seller interface {
	CloseSale(ctx context.Context, req CloseSaleRequest) (*ClosedSale, error)
	TransitionStatus(ctx context.Context, saleID string, status domain.RecurringSaleStatus) (*domain.RecurringSale, error)
}

type Service struct {
	onboardingRepo    repository.OnboardingEventRepository
	recurringSaleRepo repository.RecurringSaleRepository
	clock             clock.Clock
	generateID        func() (string, error)
}

func NewService(
	onboardingRepo repository.OnboardingEventRepository,
	recurringSaleRepo repository.RecurringSaleRepository,
	clk clock.Clock,
) *Service {
	return &Service{
		onboardingRepo:    onboardingRepo,
		recurringSaleRepo: recurringSaleRepo,
		clock:             clk,
		generateID:        utils.GenerateID,
	}
}

func (s *Service) CloseSale(ctx context.Context, req CloseSaleRequest) (*ClosedSale, error) {
	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.ClientID == "" {
		return nil, errors.Wrap(ErrMissingRequiredField, "client_id")
	}
	if req.OnboardingAmount.IsNegative() || req.RecurringAmount.IsNegative() {
		return nil, errors.Wrap(ErrInvalidAmount, "valores não podem ser negativos")
	}
	if req.OnboardingAmount.IsZero() && req.RecurringAmount.IsZero() {
		return nil, errors.Wrap(ErrInvalidAmount, "informe taxa de entrada ou mensalidade")
	}

	now := s.clock.Now()
	closed := &ClosedSale{}

	if req.OnboardingAmount.IsPositive() {
		id, err := s.generateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id do onboarding")
		}

		event := &domain.OnboardingEvent{
			ID:         id,
			ClientID:   req.ClientID,
			Amount:     req.OnboardingAmount,
			OccurredAt: now,
		}
		if err := s.onboardingRepo.Create(ctx, event); err != nil {
			return nil, errors.Wrap(err, "erro ao registrar onboarding")
		}
		closed.Onboarding = event
	}

	if req.RecurringAmount.IsPositive() {
		id, err := s.generateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id da assinatura")
		}

		sale := &domain.RecurringSale{
			ID:              id,
			ClientID:        req.ClientID,
			RecurringAmount: req.RecurringAmount,
			Status:          domain.RecurringSaleStatusActive,
			CreatedAt:       now,
		}
		if err := s.recurringSaleRepo.Create(ctx, sale); err != nil {
			// o onboarding já gravado continua valendo como receita do mês
			return nil, errors.Wrap(err, "erro ao registrar assinatura")
		}
		closed.Recurring = sale
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_id":         req.ClientID,
		"onboarding_amount": req.OnboardingAmount.String(),
		"recurring_amount":  req.RecurringAmount.String(),
	}).Info("selling: venda registrada")

	return closed, nil
}

// TransitionStatus encerra uma assinatura ativa. Só existem as transições
// active -> cancelled e active -> completed.
func (s *Service) TransitionStatus(ctx context.Context, saleID string, status domain.RecurringSaleStatus) (*domain.RecurringSale, error) {
	if status != domain.RecurringSaleStatusCancelled && status != domain.RecurringSaleStatusCompleted {
		return nil, errors.Wrapf(ErrInvalidTransition, "destino %q", status)
	}

	sale, err := s.recurringSaleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar assinatura")
	}
	if sale == nil {
		return nil, errors.Wrapf(ErrSaleNotFound, "id %s", saleID)
	}
	if sale.Status != domain.RecurringSaleStatusActive {
		return nil, errors.Wrapf(ErrInvalidTransition, "%s -> %s", sale.Status, status)
	}

	now := s.clock.Now()
	if err := s.recurringSaleRepo.UpdateStatus(ctx, saleID, status, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrInvalidTransition, "assinatura %s alterada por outra requisição", saleID)
		}
		return nil, errors.Wrap(err, "erro ao atualizar assinatura")
	}

	sale.Status = status
	sale.CancelledAt = &now

	return sale, nil
}
