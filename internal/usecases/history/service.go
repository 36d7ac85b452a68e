package history

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

type Historian interface {
	GetMonthlySummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error)
	GetHistory(ctx context.Context, n int, now time.Time) ([]domain.MonthlySummary, error)
	GetHistoryBulk(ctx context.Context, n int, now time.Time) ([]domain.MonthlySummary, error)
	GetRange(ctx context.Context, from, to time.Time) ([]domain.MonthlySummary, error)
	SnapshotMonth(ctx context.Context, month time.Time, force bool) (*domain.MonthlySnapshot, bool, error)
}

type Service struct {
	provider     SummaryProvider
	aggregator   summarizing.Aggregator
	snapshotRepo repository.MonthlySnapshotRepository
	epochYear    int
	maxMonths    int
}

func NewService(
	provider SummaryProvider,
	aggregator summarizing.Aggregator,
	snapshotRepo repository.MonthlySnapshotRepository,
	cfg config.History,
) *Service {
	return &Service{
		provider:     provider,
		aggregator:   aggregator,
		snapshotRepo: snapshotRepo,
		epochYear:    cfg.EpochYear,
		maxMonths:    cfg.MaxMonths,
	}
}

// GetMonthlySummary é a visão autoritativa de um mês: sempre recalcula e
// propaga erro de fonte obrigatória
func (s *Service) GetMonthlySummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error) {
	return s.aggregator.MonthlySummary(ctx, month)
}

// GetHistory consulta mês a mês, do mais recente para o mais antigo. Um mês
// que falha vira uma entrada marcada como Failed, sem interromper a série.
func (s *Service) GetHistory(ctx context.Context, n int, now time.Time) ([]domain.MonthlySummary, error) {
	months, err := s.trailingMonths(n, now)
	if err != nil {
		return nil, err
	}

	series := make([]domain.MonthlySummary, 0, len(months))
	for _, month := range months {
		summary, err := s.provider.MonthSummary(ctx, month)
		if err == nil && summary == nil {
			err = errors.New("nenhum resumo disponível")
		}
		if err != nil {
			log.ForContext(ctx).WithError(err).WithField("period", calendar.FormatPeriod(month)).
				Error("history: erro ao calcular mês do histórico")
			series = append(series, failedMonth(month, err))
			continue
		}

		series = append(series, *summary)
	}

	return series, nil
}

// GetHistoryBulk produz o mesmo resultado de GetHistory buscando as
// coleções uma única vez para toda a janela
func (s *Service) GetHistoryBulk(ctx context.Context, n int, now time.Time) ([]domain.MonthlySummary, error) {
	months, err := s.trailingMonths(n, now)
	if err != nil {
		return nil, err
	}

	return s.bulk(ctx, months), nil
}

// GetRange retorna a série em lote para [from, to], do mais recente para o mais antigo
func (s *Service) GetRange(ctx context.Context, from, to time.Time) ([]domain.MonthlySummary, error) {
	if from.IsZero() || to.IsZero() {
		return nil, errors.Wrap(summarizing.ErrInvalidDateRange, "início e fim são obrigatórios")
	}
	if calendar.MonthStart(from).After(calendar.MonthStart(to)) {
		return nil, errors.Wrapf(summarizing.ErrInvalidDateRange, "início %s depois do fim %s",
			calendar.FormatPeriod(from), calendar.FormatPeriod(to))
	}

	months := s.afterEpoch(calendar.MonthsBetween(from, to))
	if s.maxMonths > 0 && len(months) > s.maxMonths {
		return nil, errors.Wrapf(summarizing.ErrInvalidDateRange, "máximo de %d meses por consulta", s.maxMonths)
	}

	return s.bulk(ctx, months), nil
}

// SnapshotMonth calcula o mês e grava o snapshot. Sem force, um snapshot
// existente é mantido e o retorno indica que nada foi gravado.
func (s *Service) SnapshotMonth(ctx context.Context, month time.Time, force bool) (*domain.MonthlySnapshot, bool, error) {
	summary, err := s.aggregator.MonthlySummary(ctx, month)
	if err != nil {
		return nil, false, err
	}

	snapshot := summary.Snapshot()

	if force {
		if err := s.snapshotRepo.SaveOrUpdate(ctx, snapshot); err != nil {
			return nil, false, errors.Wrap(err, "erro ao gravar snapshot mensal")
		}
		return snapshot, true, nil
	}

	created, err := s.snapshotRepo.CreateIfAbsent(ctx, snapshot)
	if err != nil {
		return nil, false, errors.Wrap(err, "erro ao gravar snapshot mensal")
	}

	return snapshot, created, nil
}

func (s *Service) bulk(ctx context.Context, months []time.Time) []domain.MonthlySummary {
	summaries, err := s.provider.RangeSummaries(ctx, months)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("months", len(months)).
			Error("history: erro ao calcular histórico em lote")
	}

	if err == nil {
		err = errors.New("nenhum resumo disponível")
	}

	series := make([]domain.MonthlySummary, 0, len(months))
	for i, month := range months {
		if i < len(summaries) && summaries[i] != nil {
			series = append(series, *summaries[i])
			continue
		}
		series = append(series, failedMonth(month, err))
	}

	return series
}

func (s *Service) trailingMonths(n int, now time.Time) ([]time.Time, error) {
	if n <= 0 {
		return nil, errors.Wrapf(summarizing.ErrInvalidDateRange, "quantidade de meses inválida: %d", n)
	}
	if now.IsZero() {
		return nil, errors.Wrap(summarizing.ErrInvalidDateRange, "data de referência não informada")
	}
	if s.maxMonths > 0 && n > s.maxMonths {
		n = s.maxMonths
	}

	return s.afterEpoch(calendar.TrailingMonths(now, n)), nil
}

// Meses anteriores ao ano de lançamento não são exibidos
func (s *Service) afterEpoch(months []time.Time) []time.Time {
	filtered := make([]time.Time, 0, len(months))
	for _, month := range months {
		if month.Year() >= s.epochYear {
			filtered = append(filtered, month)
		}
	}
	return filtered
}

func failedMonth(month time.Time, err error) domain.MonthlySummary {
	start := calendar.MonthStart(month)
	return domain.MonthlySummary{
		Month:              start,
		Period:             calendar.FormatPeriod(start),
		ExpensesByCategory: []domain.CategoryBreakdown{},
		Failed:             true,
		Error:              err.Error(),
	}
}
