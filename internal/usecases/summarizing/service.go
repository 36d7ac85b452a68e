package summarizing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Nomes das coleções de origem, usados em logs e em SourceError
const (
	SourceOnboardingEvents = "onboarding_events"
	SourceRecurringSales   = "recurring_sales"
	SourceCommunityMetrics = "community_metrics"
	SourceExpenses         = "expenses"
)

type Aggregator interface {
	// MonthlySummary calcula o mês a partir das coleções. Falha se despesas
	// ou onboarding estiverem indisponíveis.
	MonthlySummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error)
	// FetchRange carrega uma única vez os registros de [start, end]
	FetchRange(ctx context.Context, start, end time.Time) (*SourceData, error)
}

type Service struct {
	onboardingRepo      repository.OnboardingEventRepository
	recurringSaleRepo   repository.RecurringSaleRepository
	communityMetricRepo repository.CommunityMetricRepository
	expenseRepo         repository.ExpenseRepository
}

func NewService(
	onboardingRepo repository.OnboardingEventRepository,
	recurringSaleRepo repository.RecurringSaleRepository,
	communityMetricRepo repository.CommunityMetricRepository,
	expenseRepo repository.ExpenseRepository,
) *Service {
	return &Service{
		onboardingRepo:      onboardingRepo,
		recurringSaleRepo:   recurringSaleRepo,
		communityMetricRepo: communityMetricRepo,
		expenseRepo:         expenseRepo,
	}
}

func (s *Service) MonthlySummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error) {
	if month.IsZero() {
		return nil, errors.Wrap(ErrInvalidDateRange, "mês não informado")
	}

	data, err := s.FetchRange(ctx, calendar.MonthStart(month), calendar.MonthEnd(month))
	if err != nil {
		return nil, err
	}

	summary := Summarize(month, *data)
	return &summary, nil
}

// FetchRange consulta as quatro coleções em paralelo. Erros em despesas ou
// onboarding cancelam as demais consultas; assinaturas e métricas da
// comunidade são opcionais e contribuem com lista vazia quando falham.
func (s *Service) FetchRange(ctx context.Context, start, end time.Time) (*SourceData, error) {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, errors.Wrapf(ErrInvalidDateRange, "início %s, fim %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	data := &SourceData{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		events, err := s.onboardingRepo.ListBetween(groupCtx, start, end)
		if err != nil {
			return &SourceError{Source: SourceOnboardingEvents, Err: err}
		}
		data.OnboardingEvents = events
		return nil
	})

	group.Go(func() error {
		expenses, err := s.expenseRepo.ListActiveBetween(groupCtx, start, end)
		if err != nil {
			return &SourceError{Source: SourceExpenses, Err: err}
		}
		data.Expenses = expenses
		return nil
	})

	group.Go(func() error {
		sales, err := s.recurringSaleRepo.ListActiveCreatedUntil(groupCtx, end)
		if err != nil {
			logOptionalSourceFailure(ctx, SourceRecurringSales, start, end, err)
			return nil
		}
		data.RecurringSales = sales
		return nil
	})

	group.Go(func() error {
		metrics, err := s.communityMetricRepo.ListBetween(groupCtx, start, end)
		if err != nil {
			logOptionalSourceFailure(ctx, SourceCommunityMetrics, start, end, err)
			return nil
		}
		data.CommunityMetrics = metrics
		return nil
	})

	if err := group.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"start": start.Format(time.DateOnly),
			"end":   end.Format(time.DateOnly),
		}).Error("summarizing: fonte obrigatória indisponível")
		return nil, err
	}

	return data, nil
}

func logOptionalSourceFailure(ctx context.Context, source string, start, end time.Time, err error) {
	log.ForContext(ctx).WithError(err).WithFields(log.Fields{
		"source": source,
		"start":  start.Format(time.DateOnly),
		"end":    end.Format(time.DateOnly),
	}).Warn("summarizing: fonte opcional indisponível, contribuindo com zero")
}
